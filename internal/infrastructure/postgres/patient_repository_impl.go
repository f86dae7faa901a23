package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
)

type PatientRepository struct {
	pool *pgxpool.Pool
}

func NewPatientRepository(pool *pgxpool.Pool) *PatientRepository {
	return &PatientRepository{pool: pool}
}

const patientColumns = `id, name, age, gender, contact,
	COALESCE(account_id::text, ''), created_by, created_at, updated_at`

func scanPatient(row pgx.Row) (*entity.Patient, error) {
	p := &entity.Patient{}
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Contact,
		&p.AccountID, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PatientRepository) Create(ctx context.Context, p *entity.Patient) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO patients (name, age, gender, contact, account_id, created_by)
		VALUES ($1, $2, $3, $4, nullif($5, '')::uuid, $6)
		RETURNING id, created_at, updated_at
	`, p.Name, p.Age, p.Gender, p.Contact, p.AccountID, p.CreatedBy)

	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PatientRepository) GetByID(ctx context.Context, id string) (*entity.Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx, `
		SELECT `+patientColumns+` FROM patients WHERE id = $1
	`, id))
}

func (r *PatientRepository) List(ctx context.Context) ([]entity.Patient, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+patientColumns+` FROM patients ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Patient{}
	for rows.Next() {
		p := entity.Patient{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Contact,
			&p.AccountID, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PatientRepository) FindByAccountID(ctx context.Context, accountID string) (*entity.Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx, `
		SELECT `+patientColumns+` FROM patients WHERE account_id = $1
		ORDER BY created_at ASC LIMIT 1
	`, accountID))
}

func (r *PatientRepository) FindByContactOrName(ctx context.Context, contact, name string) (*entity.Patient, error) {
	// Contact match wins over name match; both are exact equality, the
	// fallback stays best effort.
	return scanPatient(r.pool.QueryRow(ctx, `
		SELECT `+patientColumns+` FROM patients
		WHERE contact = $1 OR name = $2
		ORDER BY (contact = $1) DESC, created_at ASC
		LIMIT 1
	`, contact, name))
}

func (r *PatientRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM patients`).Scan(&n)
	return n, err
}

func (r *PatientRepository) MonthlyCounts(ctx context.Context, since time.Time) ([]repository.MonthCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT date_trunc('month', created_at) AS month, count(*)
		FROM patients
		WHERE created_at >= $1
		GROUP BY 1
		ORDER BY 1
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMonthCounts(rows)
}

func collectMonthCounts(rows pgx.Rows) ([]repository.MonthCount, error) {
	out := []repository.MonthCount{}
	for rows.Next() {
		mc := repository.MonthCount{}
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return nil, err
		}
		out = append(out, mc)
	}
	return out, rows.Err()
}

var _ repository.PatientRepository = (*PatientRepository)(nil)
