package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/clinichq/clinic-manager/internal/application"
	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/internal/interface/middleware"
	"github.com/clinichq/clinic-manager/pkg/response"
	"github.com/clinichq/clinic-manager/pkg/validation"
)

type AppointmentHandler struct {
	Svc    *application.AppointmentService
	Logger *logrus.Logger
}

func NewAppointmentHandler(svc *application.AppointmentService, logger *logrus.Logger) *AppointmentHandler {
	return &AppointmentHandler{Svc: svc, Logger: logger}
}

type createAppointmentRequest struct {
	PatientID   string    `json:"patient_id" binding:"required,uuid"`
	DoctorID    string    `json:"doctor_id" binding:"required,uuid"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Notes       string    `json:"notes"`
}

type updateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed completed cancelled"`
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	a, err := h.Svc.Create(c.Request.Context(), application.CreateAppointmentInput{
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		ScheduledAt: req.ScheduledAt,
		Notes:       req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrPatientNotFound):
			response.Error[any](c, http.StatusNotFound, err.Error(), nil)
		case errors.Is(err, application.ErrAccountNotFound):
			response.Error[any](c, http.StatusNotFound, "doctor not found", nil)
		default:
			h.Logger.WithError(err).Error("appointment create failed")
			response.Error[any](c, http.StatusInternalServerError, "could not create appointment", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, a, "appointment created", nil)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	account := middleware.AccountFromCtx(c)
	appts, err := h.Svc.List(c.Request.Context(), account)
	if err != nil {
		h.Logger.WithError(err).Error("appointment list failed")
		response.Error[any](c, http.StatusInternalServerError, "could not list appointments", nil)
		return
	}
	response.Success(c, http.StatusOK, appts, "appointments", gin.H{"count": len(appts)})
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req updateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	a, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), entity.AppointmentStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, application.ErrAppointmentNotFound):
			response.Error[any](c, http.StatusNotFound, err.Error(), nil)
		case errors.Is(err, application.ErrInvalidStatus):
			response.Error[any](c, http.StatusBadRequest, "invalid appointment status", nil)
		default:
			h.Logger.WithError(err).Error("appointment status update failed")
			response.Error[any](c, http.StatusInternalServerError, "could not update appointment", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, a, "appointment updated", nil)
}
