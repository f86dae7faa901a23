package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
	"github.com/clinichq/clinic-manager/pkg/helpers"
	"github.com/clinichq/clinic-manager/pkg/mailer"
)

// AppointmentService books and tracks appointments.
type AppointmentService struct {
	Appointments repository.AppointmentRepository
	Patients     repository.PatientRepository
	Accounts     repository.AccountRepository
	Logger       *logrus.Logger
	Pub          *helpers.RabbitPublisher
}

// CreateAppointmentInput carries validated fields from the HTTP layer.
type CreateAppointmentInput struct {
	PatientID   string
	DoctorID    string
	ScheduledAt time.Time
	Notes       string
}

func (s *AppointmentService) Create(ctx context.Context, in CreateAppointmentInput) (*entity.Appointment, error) {
	patient, err := s.Patients.GetByID(ctx, in.PatientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	doctor, err := s.Accounts.GetByID(ctx, in.DoctorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if doctor.Role != entity.RoleDoctor {
		return nil, ErrAccountNotFound
	}

	a := &entity.Appointment{
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		Status:      entity.AppointmentPending,
		ScheduledAt: in.ScheduledAt,
		Notes:       in.Notes,
		PatientName: patient.Name,
		DoctorName:  doctor.Name,
	}
	if err := s.Appointments.Create(ctx, a); err != nil {
		return nil, err
	}

	s.notifyBooked(ctx, patient, doctor, a)
	return a, nil
}

// List returns the appointments the caller may see, per the account's
// record scope.
func (s *AppointmentService) List(ctx context.Context, account *entity.Account) ([]entity.Appointment, error) {
	scope, err := ScopeForAccount(ctx, s.Patients, account)
	if err != nil {
		return nil, err
	}
	return s.Appointments.List(ctx, scope)
}

func (s *AppointmentService) UpdateStatus(ctx context.Context, id string, status entity.AppointmentStatus) (*entity.Appointment, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	a, err := s.Appointments.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return a, nil
}

// bookingRecipient picks the email address for the confirmation. The
// linked account's email wins; the free-form contact field is used only
// when it looks like an address (it is often a phone number).
func (s *AppointmentService) bookingRecipient(ctx context.Context, patient *entity.Patient) string {
	if patient.AccountID != "" {
		if acct, err := s.Accounts.GetByID(ctx, patient.AccountID); err == nil && acct.Email != "" {
			return acct.Email
		}
	}
	if strings.Contains(patient.Contact, "@") {
		return patient.Contact
	}
	return ""
}

func (s *AppointmentService) notifyBooked(ctx context.Context, patient *entity.Patient, doctor *entity.Account, a *entity.Appointment) {
	if s.Pub == nil {
		return
	}
	to := s.bookingRecipient(ctx, patient)
	if to == "" {
		return
	}
	job := &mailer.EmailJob{
		To:       to,
		Template: mailer.TemplateAppointmentBooked,
		Data: map[string]any{
			"Name":        patient.Name,
			"DoctorName":  doctor.Name,
			"ScheduledAt": a.ScheduledAt.Format("Mon, 02 Jan 2006 15:04"),
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("appointment_id", a.ID).Warn("booking notification publish failed")
	}
}
