package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
)

// PatientService manages clinic patient records and their history
// timelines.
type PatientService struct {
	Patients      repository.PatientRepository
	Appointments  repository.AppointmentRepository
	Prescriptions repository.PrescriptionRepository
	Diagnoses     repository.DiagnosisRepository
	Logger        *logrus.Logger
}

// CreatePatientInput carries validated fields from the HTTP layer.
type CreatePatientInput struct {
	Name      string
	Age       int
	Gender    string
	Contact   string
	AccountID string
}

func (s *PatientService) Create(ctx context.Context, actorID string, in CreatePatientInput) (*entity.Patient, error) {
	p := &entity.Patient{
		Name:      in.Name,
		Age:       in.Age,
		Gender:    in.Gender,
		Contact:   in.Contact,
		AccountID: in.AccountID,
		CreatedBy: actorID,
	}
	if err := s.Patients.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PatientService) List(ctx context.Context) ([]entity.Patient, error) {
	return s.Patients.List(ctx)
}

// Timeline is a patient's full clinical history.
type Timeline struct {
	Patient       *entity.Patient       `json:"patient"`
	Appointments  []entity.Appointment  `json:"appointments"`
	Prescriptions []entity.Prescription `json:"prescriptions"`
	Diagnoses     []entity.DiagnosisLog `json:"diagnoses"`
}

func (s *PatientService) timeline(ctx context.Context, p *entity.Patient) (*Timeline, error) {
	t := &Timeline{Patient: p}
	var err error
	if t.Appointments, err = s.Appointments.ListByPatient(ctx, p.ID); err != nil {
		return nil, err
	}
	if t.Prescriptions, err = s.Prescriptions.ListByPatient(ctx, p.ID); err != nil {
		return nil, err
	}
	if t.Diagnoses, err = s.Diagnoses.ListByPatient(ctx, p.ID); err != nil {
		return nil, err
	}
	return t, nil
}

// TimelineByID returns the history for a specific patient record.
func (s *PatientService) TimelineByID(ctx context.Context, patientID string) (*Timeline, error) {
	p, err := s.Patients.GetByID(ctx, patientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return s.timeline(ctx, p)
}

// MyTimeline resolves the caller's own patient record and returns its
// history. A caller with no matching record gets an empty timeline, not
// an error; registration without a clinic visit is a normal state.
func (s *PatientService) MyTimeline(ctx context.Context, account *entity.Account) (*Timeline, error) {
	p, err := ResolvePatient(ctx, s.Patients, account)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return &Timeline{
			Appointments:  []entity.Appointment{},
			Prescriptions: []entity.Prescription{},
			Diagnoses:     []entity.DiagnosisLog{},
		}, nil
	}
	return s.timeline(ctx, p)
}
