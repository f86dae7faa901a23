package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountDisabled    = errors.New("account has been blocked or deleted")
	ErrAccountSuspended   = errors.New("account has been suspended")

	// Account lifecycle guard violations.
	ErrSelfModification   = errors.New("cannot modify your own account")
	ErrAdminRoleImmutable = errors.New("cannot change Admin user role")
	ErrInvalidStatus      = errors.New("invalid status; must be active, blocked, or suspended")
	ErrInvalidRole        = errors.New("invalid role; can only change to Doctor, Receptionist, or Patient")

	ErrPatientNotFound     = errors.New("patient not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSymptomsRequired    = errors.New("symptoms are required")
)
