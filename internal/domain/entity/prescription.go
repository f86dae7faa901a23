package entity

import "time"

// Medicine is one prescribed item. Stored as JSONB inside the
// prescription row.
type Medicine struct {
	Name string `json:"name"`
	Dose string `json:"dose"`
}

// Prescription is issued by a doctor for a patient. PDFURL is attached
// after the document is rendered and uploaded; the two writes are not
// atomic, so a prescription without a PDFURL is a retriable state.
type Prescription struct {
	ID           string     `json:"id"`
	PatientID    string     `json:"patient_id"`
	DoctorID     string     `json:"doctor_id"`
	Medicines    []Medicine `json:"medicines"`
	Instructions string     `json:"instructions,omitempty"`
	PDFURL       string     `json:"pdf_url,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	PatientName string `json:"patient_name,omitempty"`
	DoctorName  string `json:"doctor_name,omitempty"`
}
