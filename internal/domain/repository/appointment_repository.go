package repository

import (
	"context"
	"time"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
)

// AppointmentFilter narrows count queries. Zero values mean "all".
type AppointmentFilter struct {
	DoctorID string
	Status   entity.AppointmentStatus
	From     time.Time
	To       time.Time
}

// AppointmentRepository defines persistence operations for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, a *entity.Appointment) error
	GetByID(ctx context.Context, id string) (*entity.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status entity.AppointmentStatus) (*entity.Appointment, error)
	// List returns appointments visible in the given scope, joined with
	// patient and doctor names, soonest first.
	List(ctx context.Context, scope RecordScope) ([]entity.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]entity.Appointment, error)
	ListRecent(ctx context.Context, scope RecordScope, limit int) ([]entity.Appointment, error)
	Count(ctx context.Context, f AppointmentFilter) (int64, error)
	CountByStatus(ctx context.Context) (map[entity.AppointmentStatus]int64, error)
	MonthlyCounts(ctx context.Context, since time.Time) ([]MonthCount, error)
}
