package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
)

type PrescriptionRepository struct {
	pool *pgxpool.Pool
}

func NewPrescriptionRepository(pool *pgxpool.Pool) *PrescriptionRepository {
	return &PrescriptionRepository{pool: pool}
}

const prescriptionJoin = `
	SELECT r.id, r.patient_id, r.doctor_id, r.medicines, COALESCE(r.instructions, ''),
	       COALESCE(r.pdf_url, ''), r.created_at, r.updated_at, p.name, d.name
	FROM prescriptions r
	JOIN patients p ON p.id = r.patient_id
	JOIN accounts d ON d.id = r.doctor_id`

func collectPrescriptions(rows pgx.Rows) ([]entity.Prescription, error) {
	out := []entity.Prescription{}
	for rows.Next() {
		pr := entity.Prescription{}
		var meds []byte
		if err := rows.Scan(&pr.ID, &pr.PatientID, &pr.DoctorID, &meds, &pr.Instructions,
			&pr.PDFURL, &pr.CreatedAt, &pr.UpdatedAt, &pr.PatientName, &pr.DoctorName); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(meds, &pr.Medicines); err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	return out, rows.Err()
}

func (r *PrescriptionRepository) Create(ctx context.Context, p *entity.Prescription) error {
	meds, err := json.Marshal(p.Medicines)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO prescriptions (patient_id, doctor_id, medicines, instructions)
		VALUES ($1, $2, $3, nullif($4, ''))
		RETURNING id, created_at, updated_at
	`, p.PatientID, p.DoctorID, meds, p.Instructions)

	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PrescriptionRepository) AttachPDF(ctx context.Context, id, url string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE prescriptions SET pdf_url = $1, updated_at = now() WHERE id = $2
	`, url, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PrescriptionRepository) List(ctx context.Context, scope repository.RecordScope) ([]entity.Prescription, error) {
	args := []any{}
	where := scopeClause(scope, "r.doctor_id", "r.patient_id", &args)
	rows, err := r.pool.Query(ctx, prescriptionJoin+` WHERE `+where+` ORDER BY r.created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPrescriptions(rows)
}

func (r *PrescriptionRepository) ListByPatient(ctx context.Context, patientID string) ([]entity.Prescription, error) {
	rows, err := r.pool.Query(ctx, prescriptionJoin+` WHERE r.patient_id = $1 ORDER BY r.created_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPrescriptions(rows)
}

func (r *PrescriptionRepository) ListRecent(ctx context.Context, scope repository.RecordScope, limit int) ([]entity.Prescription, error) {
	args := []any{}
	where := scopeClause(scope, "r.doctor_id", "r.patient_id", &args)
	args = append(args, limit)
	q := fmt.Sprintf(prescriptionJoin+` WHERE %s ORDER BY r.created_at DESC LIMIT $%d`, where, len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPrescriptions(rows)
}

func (r *PrescriptionRepository) CountByDoctor(ctx context.Context, doctorID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM prescriptions WHERE doctor_id = $1
	`, doctorID).Scan(&n)
	return n, err
}

func (r *PrescriptionRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM prescriptions`).Scan(&n)
	return n, err
}

var _ repository.PrescriptionRepository = (*PrescriptionRepository)(nil)
