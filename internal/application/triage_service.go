package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
	"github.com/clinichq/clinic-manager/pkg/triage"
)

const (
	aiStatusSuccess  = "Success"
	aiStatusFallback = "Fallback (AI Unavailable)"
)

// TriageService runs AI-assisted symptom analysis and records the
// results against patients.
type TriageService struct {
	Diagnoses repository.DiagnosisRepository
	Patients  repository.PatientRepository
	AI        *triage.Client
	Logger    *logrus.Logger
}

// DiagnoseOutput is the triage result handed back to the doctor.
type DiagnoseOutput struct {
	Analysis  string               `json:"analysis"`
	RiskLevel entity.RiskLevel     `json:"risk_level"`
	AIStatus  string               `json:"ai_status"`
	Log       *entity.DiagnosisLog `json:"log,omitempty"`
}

// Diagnose classifies the symptom list. When a patient ID is supplied
// the run is persisted as a diagnosis log; ad hoc runs are not stored.
func (s *TriageService) Diagnose(ctx context.Context, doctor *entity.Account, patientID string, symptoms []string) (*DiagnoseOutput, error) {
	symptoms = trimSymptoms(symptoms)
	if len(symptoms) == 0 {
		return nil, ErrSymptomsRequired
	}

	var patient *entity.Patient
	if patientID != "" {
		p, err := s.Patients.GetByID(ctx, patientID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrPatientNotFound
			}
			return nil, err
		}
		patient = p
	}

	res := s.AI.Classify(ctx, symptoms)
	out := &DiagnoseOutput{
		Analysis:  res.Narrative,
		RiskLevel: res.RiskLevel,
		AIStatus:  aiStatusSuccess,
	}
	if !res.Succeeded {
		out.AIStatus = aiStatusFallback
	}

	if patient != nil {
		log := &entity.DiagnosisLog{
			PatientID:   patient.ID,
			DoctorID:    doctor.ID,
			Symptoms:    symptoms,
			AIResponse:  res.Narrative,
			RiskLevel:   res.RiskLevel,
			PatientName: patient.Name,
			DoctorName:  doctor.Name,
		}
		if err := s.Diagnoses.Create(ctx, log); err != nil {
			return nil, err
		}
		out.Log = log
	}
	return out, nil
}

// HealthAdvice answers a free-form health question without touching any
// patient record.
func (s *TriageService) HealthAdvice(ctx context.Context, question string) (string, string) {
	res := s.AI.Ask(ctx, "You are a friendly health assistant. Give short, practical, non-diagnostic advice for this question: "+question)
	if !res.Succeeded {
		return res.Narrative, aiStatusFallback
	}
	return res.Narrative, aiStatusSuccess
}

// AnalyzeReport summarizes pasted report text for the caller.
func (s *TriageService) AnalyzeReport(ctx context.Context, reportText string) (string, string) {
	res := s.AI.Ask(ctx, "Analyze this medical report and summarize the key findings in plain language: "+reportText)
	if !res.Succeeded {
		return res.Narrative, aiStatusFallback
	}
	return res.Narrative, aiStatusSuccess
}

// Logs returns the diagnosis history the caller may see, per the
// account's record scope.
func (s *TriageService) Logs(ctx context.Context, account *entity.Account) ([]entity.DiagnosisLog, error) {
	scope, err := ScopeForAccount(ctx, s.Patients, account)
	if err != nil {
		return nil, err
	}
	return s.Diagnoses.List(ctx, scope)
}

func trimSymptoms(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
