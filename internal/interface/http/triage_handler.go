package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/clinichq/clinic-manager/internal/application"
	"github.com/clinichq/clinic-manager/internal/interface/middleware"
	"github.com/clinichq/clinic-manager/pkg/response"
	"github.com/clinichq/clinic-manager/pkg/validation"
)

type TriageHandler struct {
	Svc    *application.TriageService
	Logger *logrus.Logger
}

func NewTriageHandler(svc *application.TriageService, logger *logrus.Logger) *TriageHandler {
	return &TriageHandler{Svc: svc, Logger: logger}
}

type diagnoseRequest struct {
	PatientID string   `json:"patient_id" binding:"omitempty,uuid"`
	Symptoms  []string `json:"symptoms" binding:"required,min=1"`
}

type adviceRequest struct {
	Question string `json:"question" binding:"required"`
}

type analyzeReportRequest struct {
	ReportText string `json:"report_text" binding:"required"`
}

func (h *TriageHandler) Diagnose(c *gin.Context) {
	var req diagnoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	doctor := middleware.AccountFromCtx(c)
	out, err := h.Svc.Diagnose(c.Request.Context(), doctor, req.PatientID, req.Symptoms)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrSymptomsRequired):
			response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, application.ErrPatientNotFound):
			response.Error[any](c, http.StatusNotFound, err.Error(), nil)
		default:
			h.Logger.WithError(err).Error("diagnose failed")
			response.Error[any](c, http.StatusInternalServerError, "could not run diagnosis", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, out, "diagnosis complete", gin.H{"ai_status": out.AIStatus})
}

func (h *TriageHandler) HealthAdvice(c *gin.Context) {
	var req adviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	advice, aiStatus := h.Svc.HealthAdvice(c.Request.Context(), req.Question)
	response.Success[any](c, http.StatusOK, gin.H{"advice": advice}, "health advice", gin.H{"ai_status": aiStatus})
}

func (h *TriageHandler) AnalyzeReport(c *gin.Context) {
	var req analyzeReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	summary, aiStatus := h.Svc.AnalyzeReport(c.Request.Context(), req.ReportText)
	response.Success[any](c, http.StatusOK, gin.H{"summary": summary}, "report analysis", gin.H{"ai_status": aiStatus})
}

func (h *TriageHandler) Logs(c *gin.Context) {
	account := middleware.AccountFromCtx(c)
	logs, err := h.Svc.Logs(c.Request.Context(), account)
	if err != nil {
		h.Logger.WithError(err).Error("diagnosis logs failed")
		response.Error[any](c, http.StatusInternalServerError, "could not list diagnosis logs", nil)
		return
	}
	response.Success(c, http.StatusOK, logs, "diagnosis logs", gin.H{"count": len(logs)})
}
