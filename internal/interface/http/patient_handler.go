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

type PatientHandler struct {
	Svc    *application.PatientService
	Logger *logrus.Logger
}

func NewPatientHandler(svc *application.PatientService, logger *logrus.Logger) *PatientHandler {
	return &PatientHandler{Svc: svc, Logger: logger}
}

type createPatientRequest struct {
	Name      string `json:"name" binding:"required"`
	Age       int    `json:"age" binding:"required,gt=0"`
	Gender    string `json:"gender" binding:"required,oneof=Male Female Other"`
	Contact   string `json:"contact" binding:"required"`
	AccountID string `json:"account_id" binding:"omitempty,uuid"`
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req createPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	actor := middleware.AccountFromCtx(c)
	p, err := h.Svc.Create(c.Request.Context(), actor.ID, application.CreatePatientInput{
		Name:      req.Name,
		Age:       req.Age,
		Gender:    req.Gender,
		Contact:   req.Contact,
		AccountID: req.AccountID,
	})
	if err != nil {
		h.Logger.WithError(err).Error("patient create failed")
		response.Error[any](c, http.StatusInternalServerError, "could not create patient", nil)
		return
	}
	response.Success(c, http.StatusCreated, p, "patient created", nil)
}

func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("patient list failed")
		response.Error[any](c, http.StatusInternalServerError, "could not list patients", nil)
		return
	}
	response.Success(c, http.StatusOK, patients, "patients", gin.H{"count": len(patients)})
}

func (h *PatientHandler) Timeline(c *gin.Context) {
	t, err := h.Svc.TimelineByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, application.ErrPatientNotFound) {
			response.Error[any](c, http.StatusNotFound, err.Error(), nil)
			return
		}
		h.Logger.WithError(err).Error("patient timeline failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load timeline", nil)
		return
	}
	response.Success(c, http.StatusOK, t, "patient timeline", nil)
}

// MyTimeline serves the authenticated patient their own history.
func (h *PatientHandler) MyTimeline(c *gin.Context) {
	a := middleware.AccountFromCtx(c)
	t, err := h.Svc.MyTimeline(c.Request.Context(), a)
	if err != nil {
		h.Logger.WithError(err).Error("own timeline failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load timeline", nil)
		return
	}
	response.Success(c, http.StatusOK, t, "patient timeline", nil)
}
