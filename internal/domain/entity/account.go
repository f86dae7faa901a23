package entity

import "time"

// Role is the closed set of access roles. Wire values are kept
// compatible with existing clients ("Receptionist" is the front desk).
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleDoctor    Role = "Doctor"
	RoleFrontDesk Role = "Receptionist"
	RolePatient   Role = "Patient"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleFrontDesk, RolePatient:
		return true
	}
	return false
}

// Assignable reports whether r may be the target of a role change.
// No account can be promoted to Admin through the role-change path.
func (r Role) Assignable() bool {
	switch r {
	case RoleDoctor, RoleFrontDesk, RolePatient:
		return true
	}
	return false
}

// Status is the account lifecycle state. Deletion is a status, never a
// physical removal.
type Status string

const (
	StatusActive    Status = "active"
	StatusBlocked   Status = "blocked"
	StatusSuspended Status = "suspended"
	StatusDeleted   Status = "deleted"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusBlocked, StatusSuspended, StatusDeleted:
		return true
	}
	return false
}

// Transitionable reports whether s is a valid target for the admin
// status-change operation. Deletion goes through the delete operation.
func (s Status) Transitionable() bool {
	switch s {
	case StatusActive, StatusBlocked, StatusSuspended:
		return true
	}
	return false
}

// Account is the aggregate root for identity.
// Password holds a bcrypt hash; handlers must strip it before rendering.
type Account struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Password        string     `json:"-"`
	Role            Role       `json:"role"`
	Status          Status     `json:"status"`
	StatusChangedAt *time.Time `json:"status_changed_at,omitempty"`
	StatusChangedBy string     `json:"status_changed_by,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Disabled reports whether the account must be rejected at the gate.
func (a *Account) Disabled() bool {
	return a.Status == StatusBlocked || a.Status == StatusDeleted
}

// Stripped returns a copy safe to attach to a request context or render.
func (a *Account) Stripped() *Account {
	cp := *a
	cp.Password = ""
	return &cp
}
