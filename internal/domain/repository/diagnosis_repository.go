package repository

import (
	"context"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
)

// DiagnosisRepository defines persistence operations for AI triage logs.
type DiagnosisRepository interface {
	Create(ctx context.Context, d *entity.DiagnosisLog) error
	List(ctx context.Context, scope RecordScope) ([]entity.DiagnosisLog, error)
	ListByPatient(ctx context.Context, patientID string) ([]entity.DiagnosisLog, error)
	ListRecent(ctx context.Context, scope RecordScope, limit int) ([]entity.DiagnosisLog, error)
	CountByDoctor(ctx context.Context, doctorID string) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountByRisk(ctx context.Context, scope RecordScope) (map[entity.RiskLevel]int64, error)
}
