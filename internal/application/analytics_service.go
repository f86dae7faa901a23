package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
)

// Flat per-appointment consultation fee used for the simulated revenue
// figure. Billing integration is out of scope; the dashboard still
// wants a number.
const consultationFee = 50

// AnalyticsService builds role-scoped overview figures. Unlike the
// admin dashboard, these respect the caller's record scope.
type AnalyticsService struct {
	Patients      repository.PatientRepository
	Appointments  repository.AppointmentRepository
	Prescriptions repository.PrescriptionRepository
	Diagnoses     repository.DiagnosisRepository
	Logger        *logrus.Logger
}

// Overview is the role-scoped analytics payload.
type Overview struct {
	TotalAppointments    int64                              `json:"total_appointments"`
	TotalPrescriptions   int64                              `json:"total_prescriptions"`
	TotalDiagnoses       int64                              `json:"total_diagnoses"`
	TotalPatients        int64                              `json:"total_patients,omitempty"`
	AppointmentsByStatus map[entity.AppointmentStatus]int64 `json:"appointments_by_status,omitempty"`
	DiagnosesByRisk      map[entity.RiskLevel]int64         `json:"diagnoses_by_risk"`
	SimulatedRevenue     int64                              `json:"simulated_revenue"`
}

// Overview computes figures visible to the caller. Admin and front desk
// see clinic-wide numbers; a doctor sees only their own workload.
func (s *AnalyticsService) Overview(ctx context.Context, account *entity.Account) (*Overview, error) {
	out := &Overview{}

	switch account.Role {
	case entity.RoleAdmin, entity.RoleFrontDesk:
		var err error
		if out.TotalAppointments, err = s.Appointments.Count(ctx, repository.AppointmentFilter{}); err != nil {
			return nil, err
		}
		if out.TotalPrescriptions, err = s.Prescriptions.Count(ctx); err != nil {
			return nil, err
		}
		if out.TotalDiagnoses, err = s.Diagnoses.Count(ctx); err != nil {
			return nil, err
		}
		if out.TotalPatients, err = s.Patients.Count(ctx); err != nil {
			return nil, err
		}
		if out.AppointmentsByStatus, err = s.Appointments.CountByStatus(ctx); err != nil {
			return nil, err
		}
		if out.DiagnosesByRisk, err = s.Diagnoses.CountByRisk(ctx, repository.ScopeAll()); err != nil {
			return nil, err
		}
	case entity.RoleDoctor:
		var err error
		if out.TotalAppointments, err = s.Appointments.Count(ctx, repository.AppointmentFilter{DoctorID: account.ID}); err != nil {
			return nil, err
		}
		if out.TotalPrescriptions, err = s.Prescriptions.CountByDoctor(ctx, account.ID); err != nil {
			return nil, err
		}
		if out.TotalDiagnoses, err = s.Diagnoses.CountByDoctor(ctx, account.ID); err != nil {
			return nil, err
		}
		if out.DiagnosesByRisk, err = s.Diagnoses.CountByRisk(ctx, repository.ScopeDoctor(account.ID)); err != nil {
			return nil, err
		}
	default:
		scope, err := ScopeForAccount(ctx, s.Patients, account)
		if err != nil {
			return nil, err
		}
		if scope.Empty {
			return out, nil
		}
		appts, err := s.Appointments.ListByPatient(ctx, scope.PatientID)
		if err != nil {
			return nil, err
		}
		rx, err := s.Prescriptions.ListByPatient(ctx, scope.PatientID)
		if err != nil {
			return nil, err
		}
		dx, err := s.Diagnoses.ListByPatient(ctx, scope.PatientID)
		if err != nil {
			return nil, err
		}
		out.TotalAppointments = int64(len(appts))
		out.TotalPrescriptions = int64(len(rx))
		out.TotalDiagnoses = int64(len(dx))
		if out.DiagnosesByRisk, err = s.Diagnoses.CountByRisk(ctx, scope); err != nil {
			return nil, err
		}
	}

	out.SimulatedRevenue = out.TotalAppointments * consultationFee
	return out, nil
}
