package entity

import "time"

// RiskLevel is the heuristic triage classification. It is advisory
// only; extraction from free-form AI text may misclassify.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
	RiskUnknown  RiskLevel = "Unknown"
)

// DiagnosisLog records one AI triage run against a patient.
type DiagnosisLog struct {
	ID         string    `json:"id"`
	PatientID  string    `json:"patient_id"`
	DoctorID   string    `json:"doctor_id"`
	Symptoms   []string  `json:"symptoms"`
	AIResponse string    `json:"ai_response"`
	RiskLevel  RiskLevel `json:"risk_level"`
	CreatedAt  time.Time `json:"created_at"`

	PatientName string `json:"patient_name,omitempty"`
	DoctorName  string `json:"doctor_name,omitempty"`
}
