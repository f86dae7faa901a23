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

func TestScopeForAdminAndFrontDeskIsUnrestricted(t *testing.T) {
	patients := new(MockPatientRepository)
	for _, role := range []entity.Role{entity.RoleAdmin, entity.RoleFrontDesk} {
		scope, err := ScopeForAccount(context.Background(), patients, activeAccount(adminID, role))
		require.NoError(t, err)
		assert.True(t, scope.All)
	}
	patients.AssertNotCalled(t, "FindByAccountID", mock.Anything, mock.Anything)
}

func TestScopeForDoctorFiltersByDoctorID(t *testing.T) {
	scope, err := ScopeForAccount(context.Background(), new(MockPatientRepository), activeAccount(targetID, entity.RoleDoctor))
	require.NoError(t, err)
	assert.Equal(t, targetID, scope.DoctorID)
	assert.False(t, scope.All)
}

func TestScopeForPatientUsesAccountLink(t *testing.T) {
	patients := new(MockPatientRepository)
	patients.On("FindByAccountID", mock.Anything, targetID).Return(&entity.Patient{ID: "p-1"}, nil)

	scope, err := ScopeForAccount(context.Background(), patients, activeAccount(targetID, entity.RolePatient))
	require.NoError(t, err)
	assert.Equal(t, "p-1", scope.PatientID)
	patients.AssertNotCalled(t, "FindByContactOrName", mock.Anything, mock.Anything, mock.Anything)
}

func TestScopeForPatientFallsBackToContactOrName(t *testing.T) {
	a := activeAccount(targetID, entity.RolePatient)
	patients := new(MockPatientRepository)
	patients.On("FindByAccountID", mock.Anything, targetID).Return(nil, repository.ErrNotFound)
	patients.On("FindByContactOrName", mock.Anything, a.Email, a.Name).Return(&entity.Patient{ID: "p-2"}, nil)

	scope, err := ScopeForAccount(context.Background(), patients, a)
	require.NoError(t, err)
	assert.Equal(t, "p-2", scope.PatientID)
}

func TestScopeForPatientWithNoRecordIsEmptyNotError(t *testing.T) {
	a := activeAccount(targetID, entity.RolePatient)
	patients := new(MockPatientRepository)
	patients.On("FindByAccountID", mock.Anything, targetID).Return(nil, repository.ErrNotFound)
	patients.On("FindByContactOrName", mock.Anything, a.Email, a.Name).Return(nil, repository.ErrNotFound)

	scope, err := ScopeForAccount(context.Background(), patients, a)
	require.NoError(t, err)
	assert.True(t, scope.Empty)
	assert.Empty(t, scope.PatientID)
}

func TestAppointmentListAppliesScope(t *testing.T) {
	patients := new(MockPatientRepository)
	appts := new(MockAppointmentRepository)
	doctor := activeAccount(targetID, entity.RoleDoctor)

	appts.On("List", mock.Anything, repository.ScopeDoctor(targetID)).Return([]entity.Appointment{{ID: "apt-1"}}, nil)

	svc := &AppointmentService{Appointments: appts, Patients: patients}
	out, err := svc.List(context.Background(), doctor)

	require.NoError(t, err)
	require.Len(t, out, 1)
	appts.AssertExpectations(t)
}
