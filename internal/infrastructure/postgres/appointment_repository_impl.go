package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
)

type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

const appointmentJoin = `
	SELECT a.id, a.patient_id, a.doctor_id, a.scheduled_at, a.status, a.notes,
	       a.created_at, a.updated_at, p.name, d.name
	FROM appointments a
	JOIN patients p ON p.id = a.patient_id
	JOIN accounts d ON d.id = a.doctor_id`

func collectAppointments(rows pgx.Rows) ([]entity.Appointment, error) {
	out := []entity.Appointment{}
	for rows.Next() {
		a := entity.Appointment{}
		if err := rows.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.ScheduledAt, &a.Status, &a.Notes,
			&a.CreatedAt, &a.UpdatedAt, &a.PatientName, &a.DoctorName); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AppointmentRepository) Create(ctx context.Context, a *entity.Appointment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (patient_id, doctor_id, scheduled_at, status, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, a.PatientID, a.DoctorID, a.ScheduledAt, a.Status, a.Notes)

	return row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*entity.Appointment, error) {
	a := &entity.Appointment{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, patient_id, doctor_id, scheduled_at, status, notes, created_at, updated_at
		FROM appointments WHERE id = $1
	`, id).Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.ScheduledAt, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id string, status entity.AppointmentStatus) (*entity.Appointment, error) {
	a := &entity.Appointment{}
	err := r.pool.QueryRow(ctx, `
		UPDATE appointments SET status = $1, updated_at = now()
		WHERE id = $2
		RETURNING id, patient_id, doctor_id, scheduled_at, status, notes, created_at, updated_at
	`, status, id).Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.ScheduledAt, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AppointmentRepository) List(ctx context.Context, scope repository.RecordScope) ([]entity.Appointment, error) {
	args := []any{}
	where := scopeClause(scope, "a.doctor_id", "a.patient_id", &args)
	rows, err := r.pool.Query(ctx, appointmentJoin+` WHERE `+where+` ORDER BY a.scheduled_at ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *AppointmentRepository) ListByPatient(ctx context.Context, patientID string) ([]entity.Appointment, error) {
	rows, err := r.pool.Query(ctx, appointmentJoin+` WHERE a.patient_id = $1 ORDER BY a.scheduled_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *AppointmentRepository) ListRecent(ctx context.Context, scope repository.RecordScope, limit int) ([]entity.Appointment, error) {
	args := []any{}
	where := scopeClause(scope, "a.doctor_id", "a.patient_id", &args)
	args = append(args, limit)
	q := fmt.Sprintf(appointmentJoin+` WHERE %s ORDER BY a.created_at DESC LIMIT $%d`, where, len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *AppointmentRepository) Count(ctx context.Context, f repository.AppointmentFilter) (int64, error) {
	q := `SELECT count(*) FROM appointments WHERE TRUE`
	args := []any{}
	if f.DoctorID != "" {
		args = append(args, f.DoctorID)
		q += fmt.Sprintf(" AND doctor_id = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		q += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if !f.From.IsZero() {
		args = append(args, f.From)
		q += fmt.Sprintf(" AND scheduled_at >= $%d", len(args))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		q += fmt.Sprintf(" AND scheduled_at < $%d", len(args))
	}

	var n int64
	err := r.pool.QueryRow(ctx, q, args...).Scan(&n)
	return n, err
}

func (r *AppointmentRepository) CountByStatus(ctx context.Context) (map[entity.AppointmentStatus]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, count(*) FROM appointments GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[entity.AppointmentStatus]int64{}
	for rows.Next() {
		var s entity.AppointmentStatus
		var n int64
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		out[s] = n
	}
	return out, rows.Err()
}

func (r *AppointmentRepository) MonthlyCounts(ctx context.Context, since time.Time) ([]repository.MonthCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT date_trunc('month', created_at) AS month, count(*)
		FROM appointments
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

var _ repository.AppointmentRepository = (*AppointmentRepository)(nil)
