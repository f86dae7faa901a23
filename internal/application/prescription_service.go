package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/sirupsen/logrus"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
	"github.com/clinichq/clinic-manager/pkg/docgen"
	"github.com/clinichq/clinic-manager/pkg/helpers"
)

// PrescriptionService issues prescriptions and renders their PDF
// documents.
type PrescriptionService struct {
	Prescriptions repository.PrescriptionRepository
	Patients      repository.PatientRepository
	GCS           *storage.Client
	Bucket        string
	ClinicName    string
	Logger        *logrus.Logger
}

// CreatePrescriptionInput carries validated fields from the HTTP layer.
type CreatePrescriptionInput struct {
	PatientID    string
	Medicines    []entity.Medicine
	Instructions string
}

// Create stores the prescription, then renders and uploads its PDF. The
// PDF step is best effort; a failure leaves the prescription valid but
// without a pdf_url.
func (s *PrescriptionService) Create(ctx context.Context, doctor *entity.Account, in CreatePrescriptionInput) (*entity.Prescription, error) {
	patient, err := s.Patients.GetByID(ctx, in.PatientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	p := &entity.Prescription{
		PatientID:    patient.ID,
		DoctorID:     doctor.ID,
		Medicines:    in.Medicines,
		Instructions: in.Instructions,
		PatientName:  patient.Name,
		DoctorName:   doctor.Name,
	}
	if err := s.Prescriptions.Create(ctx, p); err != nil {
		return nil, err
	}

	s.attachPDF(ctx, p, patient, doctor)
	return p, nil
}

func (s *PrescriptionService) attachPDF(ctx context.Context, p *entity.Prescription, patient *entity.Patient, doctor *entity.Account) {
	if s.GCS == nil || s.Bucket == "" {
		return
	}

	pdf, err := docgen.PrescriptionPDF(s.ClinicName, p, patient, doctor)
	if err != nil {
		s.warn(err, p.ID, "prescription pdf render failed")
		return
	}

	object := fmt.Sprintf("prescriptions/%s.pdf", p.ID)
	url, err := helpers.UploadDocument(ctx, s.GCS, s.Bucket, object, "application/pdf", bytes.NewReader(pdf))
	if err != nil {
		s.warn(err, p.ID, "prescription pdf upload failed")
		return
	}

	if err := s.Prescriptions.AttachPDF(ctx, p.ID, url); err != nil {
		s.warn(err, p.ID, "prescription pdf attach failed")
		return
	}
	p.PDFURL = url
}

func (s *PrescriptionService) warn(err error, id, msg string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("prescription_id", id).Warn(msg)
	}
}

// List returns the prescriptions the caller may see, per the account's
// record scope.
func (s *PrescriptionService) List(ctx context.Context, account *entity.Account) ([]entity.Prescription, error) {
	scope, err := ScopeForAccount(ctx, s.Patients, account)
	if err != nil {
		return nil, err
	}
	return s.Prescriptions.List(ctx, scope)
}
