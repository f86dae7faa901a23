package repository

import (
	"context"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
)

// PrescriptionRepository defines persistence operations for prescriptions.
type PrescriptionRepository interface {
	Create(ctx context.Context, p *entity.Prescription) error
	// AttachPDF records the rendered document URL. Separate from Create;
	// a failure in between leaves the prescription without a pdf_url.
	AttachPDF(ctx context.Context, id, url string) error
	List(ctx context.Context, scope RecordScope) ([]entity.Prescription, error)
	ListByPatient(ctx context.Context, patientID string) ([]entity.Prescription, error)
	ListRecent(ctx context.Context, scope RecordScope, limit int) ([]entity.Prescription, error)
	CountByDoctor(ctx context.Context, doctorID string) (int64, error)
	Count(ctx context.Context) (int64, error)
}
