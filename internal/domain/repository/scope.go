package repository

// RecordScope is the role-derived filter applied to every domain
// listing query. Exactly one of the branches is meaningful:
// All, a doctor restriction, a patient restriction, or Empty
// (caller resolves to no records at all, which is not an error).
type RecordScope struct {
	All       bool
	DoctorID  string
	PatientID string
	Empty     bool
}

// ScopeAll is the unrestricted scope used by Admin and FrontDesk.
func ScopeAll() RecordScope { return RecordScope{All: true} }

// ScopeDoctor restricts to records assigned to the given doctor.
func ScopeDoctor(doctorID string) RecordScope { return RecordScope{DoctorID: doctorID} }

// ScopePatient restricts to records belonging to the given patient.
func ScopePatient(patientID string) RecordScope { return RecordScope{PatientID: patientID} }

// ScopeNone matches nothing.
func ScopeNone() RecordScope { return RecordScope{Empty: true} }
