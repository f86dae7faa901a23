package application

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, a *entity.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) Update(ctx context.Context, a *entity.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAccountRepository) List(ctx context.Context, f repository.AccountFilter) ([]entity.Account, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Account), args.Error(1)
}

func (m *MockAccountRepository) ListDoctors(ctx context.Context) ([]entity.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Account), args.Error(1)
}

func (m *MockAccountRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) CountByRole(ctx context.Context) (map[entity.Role]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entity.Role]int64), args.Error(1)
}

// MockPatientRepository is a mock implementation of PatientRepository.
type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) Create(ctx context.Context, p *entity.Patient) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPatientRepository) GetByID(ctx context.Context, id string) (*entity.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Patient), args.Error(1)
}

func (m *MockPatientRepository) List(ctx context.Context) ([]entity.Patient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Patient), args.Error(1)
}

func (m *MockPatientRepository) FindByAccountID(ctx context.Context, accountID string) (*entity.Patient, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Patient), args.Error(1)
}

func (m *MockPatientRepository) FindByContactOrName(ctx context.Context, contact, name string) (*entity.Patient, error) {
	args := m.Called(ctx, contact, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Patient), args.Error(1)
}

func (m *MockPatientRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPatientRepository) MonthlyCounts(ctx context.Context, since time.Time) ([]repository.MonthCount, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.MonthCount), args.Error(1)
}

// MockAppointmentRepository is a mock implementation of AppointmentRepository.
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, a *entity.Appointment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, id string) (*entity.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) UpdateStatus(ctx context.Context, id string, status entity.AppointmentStatus) (*entity.Appointment, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) List(ctx context.Context, scope repository.RecordScope) ([]entity.Appointment, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ListByPatient(ctx context.Context, patientID string) ([]entity.Appointment, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ListRecent(ctx context.Context, scope repository.RecordScope, limit int) ([]entity.Appointment, error) {
	args := m.Called(ctx, scope, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Count(ctx context.Context, f repository.AppointmentFilter) (int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAppointmentRepository) CountByStatus(ctx context.Context) (map[entity.AppointmentStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entity.AppointmentStatus]int64), args.Error(1)
}

func (m *MockAppointmentRepository) MonthlyCounts(ctx context.Context, since time.Time) ([]repository.MonthCount, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.MonthCount), args.Error(1)
}

// MockPrescriptionRepository is a mock implementation of PrescriptionRepository.
type MockPrescriptionRepository struct {
	mock.Mock
}

func (m *MockPrescriptionRepository) Create(ctx context.Context, p *entity.Prescription) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPrescriptionRepository) AttachPDF(ctx context.Context, id, url string) error {
	args := m.Called(ctx, id, url)
	return args.Error(0)
}

func (m *MockPrescriptionRepository) List(ctx context.Context, scope repository.RecordScope) ([]entity.Prescription, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Prescription), args.Error(1)
}

func (m *MockPrescriptionRepository) ListByPatient(ctx context.Context, patientID string) ([]entity.Prescription, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Prescription), args.Error(1)
}

func (m *MockPrescriptionRepository) ListRecent(ctx context.Context, scope repository.RecordScope, limit int) ([]entity.Prescription, error) {
	args := m.Called(ctx, scope, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Prescription), args.Error(1)
}

func (m *MockPrescriptionRepository) CountByDoctor(ctx context.Context, doctorID string) (int64, error) {
	args := m.Called(ctx, doctorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPrescriptionRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockDiagnosisRepository is a mock implementation of DiagnosisRepository.
type MockDiagnosisRepository struct {
	mock.Mock
}

func (m *MockDiagnosisRepository) Create(ctx context.Context, d *entity.DiagnosisLog) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDiagnosisRepository) List(ctx context.Context, scope repository.RecordScope) ([]entity.DiagnosisLog, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.DiagnosisLog), args.Error(1)
}

func (m *MockDiagnosisRepository) ListByPatient(ctx context.Context, patientID string) ([]entity.DiagnosisLog, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.DiagnosisLog), args.Error(1)
}

func (m *MockDiagnosisRepository) ListRecent(ctx context.Context, scope repository.RecordScope, limit int) ([]entity.DiagnosisLog, error) {
	args := m.Called(ctx, scope, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.DiagnosisLog), args.Error(1)
}

func (m *MockDiagnosisRepository) CountByDoctor(ctx context.Context, doctorID string) (int64, error) {
	args := m.Called(ctx, doctorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDiagnosisRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDiagnosisRepository) CountByRisk(ctx context.Context, scope repository.RecordScope) (map[entity.RiskLevel]int64, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entity.RiskLevel]int64), args.Error(1)
}

var (
	_ repository.AccountRepository      = (*MockAccountRepository)(nil)
	_ repository.PatientRepository     = (*MockPatientRepository)(nil)
	_ repository.AppointmentRepository = (*MockAppointmentRepository)(nil)
	_ repository.PrescriptionRepository = (*MockPrescriptionRepository)(nil)
	_ repository.DiagnosisRepository   = (*MockDiagnosisRepository)(nil)
)
