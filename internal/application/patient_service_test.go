package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
)

func newPatientService(patients *MockPatientRepository, appts *MockAppointmentRepository, rx *MockPrescriptionRepository, dx *MockDiagnosisRepository) *PatientService {
	return &PatientService{Patients: patients, Appointments: appts, Prescriptions: rx, Diagnoses: dx}
}

func TestTimelineByIDUnknownPatient(t *testing.T) {
	patients := new(MockPatientRepository)
	patients.On("GetByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

	svc := newPatientService(patients, new(MockAppointmentRepository), new(MockPrescriptionRepository), new(MockDiagnosisRepository))
	_, err := svc.TimelineByID(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestTimelineByIDCollectsHistory(t *testing.T) {
	patients := new(MockPatientRepository)
	appts := new(MockAppointmentRepository)
	rx := new(MockPrescriptionRepository)
	dx := new(MockDiagnosisRepository)

	patients.On("GetByID", mock.Anything, "p-1").Return(&entity.Patient{ID: "p-1", Name: "Budi"}, nil)
	appts.On("ListByPatient", mock.Anything, "p-1").Return([]entity.Appointment{{ID: "apt-1"}}, nil)
	rx.On("ListByPatient", mock.Anything, "p-1").Return([]entity.Prescription{{ID: "rx-1"}}, nil)
	dx.On("ListByPatient", mock.Anything, "p-1").Return([]entity.DiagnosisLog{}, nil)

	svc := newPatientService(patients, appts, rx, dx)
	timeline, err := svc.TimelineByID(context.Background(), "p-1")

	require.NoError(t, err)
	assert.Equal(t, "p-1", timeline.Patient.ID)
	assert.Len(t, timeline.Appointments, 1)
	assert.Len(t, timeline.Prescriptions, 1)
	assert.Empty(t, timeline.Diagnoses)
}

func TestMyTimelineWithNoLinkedRecordIsEmpty(t *testing.T) {
	a := activeAccount(targetID, entity.RolePatient)
	patients := new(MockPatientRepository)
	patients.On("FindByAccountID", mock.Anything, a.ID).Return(nil, repository.ErrNotFound)
	patients.On("FindByContactOrName", mock.Anything, a.Email, a.Name).Return(nil, repository.ErrNotFound)

	svc := newPatientService(patients, new(MockAppointmentRepository), new(MockPrescriptionRepository), new(MockDiagnosisRepository))
	timeline, err := svc.MyTimeline(context.Background(), a)

	require.NoError(t, err)
	assert.Nil(t, timeline.Patient)
	assert.Empty(t, timeline.Appointments)
	assert.Empty(t, timeline.Prescriptions)
	assert.Empty(t, timeline.Diagnoses)
}

func TestMyTimelineResolvesByContact(t *testing.T) {
	a := activeAccount(targetID, entity.RolePatient)
	patients := new(MockPatientRepository)
	appts := new(MockAppointmentRepository)
	rx := new(MockPrescriptionRepository)
	dx := new(MockDiagnosisRepository)

	patients.On("FindByAccountID", mock.Anything, a.ID).Return(nil, repository.ErrNotFound)
	patients.On("FindByContactOrName", mock.Anything, a.Email, a.Name).Return(&entity.Patient{ID: "p-9"}, nil)
	appts.On("ListByPatient", mock.Anything, "p-9").Return([]entity.Appointment{}, nil)
	rx.On("ListByPatient", mock.Anything, "p-9").Return([]entity.Prescription{}, nil)
	dx.On("ListByPatient", mock.Anything, "p-9").Return([]entity.DiagnosisLog{}, nil)

	svc := newPatientService(patients, appts, rx, dx)
	timeline, err := svc.MyTimeline(context.Background(), a)

	require.NoError(t, err)
	require.NotNil(t, timeline.Patient)
	assert.Equal(t, "p-9", timeline.Patient.ID)
}
