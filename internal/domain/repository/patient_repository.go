package repository

import (
	"context"
	"time"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
)

// MonthCount is one bucket of a monthly trend aggregation.
type MonthCount struct {
	Month time.Time `json:"month"`
	Count int64     `json:"count"`
}

// PatientRepository defines persistence operations for patient records.
type PatientRepository interface {
	Create(ctx context.Context, p *entity.Patient) error
	GetByID(ctx context.Context, id string) (*entity.Patient, error)
	List(ctx context.Context) ([]entity.Patient, error)
	// FindByAccountID resolves the patient record linked to a login.
	FindByAccountID(ctx context.Context, accountID string) (*entity.Patient, error)
	// FindByContactOrName is the best-effort fallback when no link
	// exists: exact match on contact first, then display name.
	FindByContactOrName(ctx context.Context, contact, name string) (*entity.Patient, error)
	Count(ctx context.Context) (int64, error)
	MonthlyCounts(ctx context.Context, since time.Time) ([]MonthCount, error)
}
