package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
)

type DiagnosisRepository struct {
	pool *pgxpool.Pool
}

func NewDiagnosisRepository(pool *pgxpool.Pool) *DiagnosisRepository {
	return &DiagnosisRepository{pool: pool}
}

const diagnosisJoin = `
	SELECT g.id, g.patient_id, g.doctor_id, g.symptoms, g.ai_response, g.risk_level,
	       g.created_at, p.name, d.name
	FROM diagnosis_logs g
	JOIN patients p ON p.id = g.patient_id
	JOIN accounts d ON d.id = g.doctor_id`

func collectDiagnoses(rows pgx.Rows) ([]entity.DiagnosisLog, error) {
	out := []entity.DiagnosisLog{}
	for rows.Next() {
		d := entity.DiagnosisLog{}
		if err := rows.Scan(&d.ID, &d.PatientID, &d.DoctorID, &d.Symptoms, &d.AIResponse,
			&d.RiskLevel, &d.CreatedAt, &d.PatientName, &d.DoctorName); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DiagnosisRepository) Create(ctx context.Context, d *entity.DiagnosisLog) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO diagnosis_logs (patient_id, doctor_id, symptoms, ai_response, risk_level)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, d.PatientID, d.DoctorID, d.Symptoms, d.AIResponse, d.RiskLevel)

	return row.Scan(&d.ID, &d.CreatedAt)
}

func (r *DiagnosisRepository) List(ctx context.Context, scope repository.RecordScope) ([]entity.DiagnosisLog, error) {
	args := []any{}
	where := scopeClause(scope, "g.doctor_id", "g.patient_id", &args)
	rows, err := r.pool.Query(ctx, diagnosisJoin+` WHERE `+where+` ORDER BY g.created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDiagnoses(rows)
}

func (r *DiagnosisRepository) ListByPatient(ctx context.Context, patientID string) ([]entity.DiagnosisLog, error) {
	rows, err := r.pool.Query(ctx, diagnosisJoin+` WHERE g.patient_id = $1 ORDER BY g.created_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDiagnoses(rows)
}

func (r *DiagnosisRepository) ListRecent(ctx context.Context, scope repository.RecordScope, limit int) ([]entity.DiagnosisLog, error) {
	args := []any{}
	where := scopeClause(scope, "g.doctor_id", "g.patient_id", &args)
	args = append(args, limit)
	q := fmt.Sprintf(diagnosisJoin+` WHERE %s ORDER BY g.created_at DESC LIMIT $%d`, where, len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDiagnoses(rows)
}

func (r *DiagnosisRepository) CountByDoctor(ctx context.Context, doctorID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM diagnosis_logs WHERE doctor_id = $1
	`, doctorID).Scan(&n)
	return n, err
}

func (r *DiagnosisRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM diagnosis_logs`).Scan(&n)
	return n, err
}

func (r *DiagnosisRepository) CountByRisk(ctx context.Context, scope repository.RecordScope) (map[entity.RiskLevel]int64, error) {
	args := []any{}
	where := scopeClause(scope, "doctor_id", "patient_id", &args)
	rows, err := r.pool.Query(ctx, `
		SELECT risk_level, count(*) FROM diagnosis_logs WHERE `+where+` GROUP BY risk_level
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[entity.RiskLevel]int64{}
	for rows.Next() {
		var lvl entity.RiskLevel
		var n int64
		if err := rows.Scan(&lvl, &n); err != nil {
			return nil, err
		}
		out[lvl] = n
	}
	return out, rows.Err()
}

var _ repository.DiagnosisRepository = (*DiagnosisRepository)(nil)
