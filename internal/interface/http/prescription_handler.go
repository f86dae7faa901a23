package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/clinichq/clinic-manager/internal/application"
	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/internal/interface/middleware"
	"github.com/clinichq/clinic-manager/pkg/response"
	"github.com/clinichq/clinic-manager/pkg/validation"
)

type PrescriptionHandler struct {
	Svc    *application.PrescriptionService
	Logger *logrus.Logger
}

func NewPrescriptionHandler(svc *application.PrescriptionService, logger *logrus.Logger) *PrescriptionHandler {
	return &PrescriptionHandler{Svc: svc, Logger: logger}
}

type medicineRequest struct {
	Name string `json:"name" binding:"required"`
	Dose string `json:"dose" binding:"required"`
}

type createPrescriptionRequest struct {
	PatientID    string            `json:"patient_id" binding:"required,uuid"`
	Medicines    []medicineRequest `json:"medicines" binding:"required,min=1,dive"`
	Instructions string            `json:"instructions"`
}

func (h *PrescriptionHandler) Create(c *gin.Context) {
	var req createPrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	meds := make([]entity.Medicine, len(req.Medicines))
	for i, m := range req.Medicines {
		meds[i] = entity.Medicine{Name: m.Name, Dose: m.Dose}
	}

	doctor := middleware.AccountFromCtx(c)
	p, err := h.Svc.Create(c.Request.Context(), doctor, application.CreatePrescriptionInput{
		PatientID:    req.PatientID,
		Medicines:    meds,
		Instructions: req.Instructions,
	})
	if err != nil {
		if errors.Is(err, application.ErrPatientNotFound) {
			response.Error[any](c, http.StatusNotFound, err.Error(), nil)
			return
		}
		h.Logger.WithError(err).Error("prescription create failed")
		response.Error[any](c, http.StatusInternalServerError, "could not create prescription", nil)
		return
	}
	response.Success(c, http.StatusCreated, p, "prescription created", nil)
}

func (h *PrescriptionHandler) List(c *gin.Context) {
	account := middleware.AccountFromCtx(c)
	out, err := h.Svc.List(c.Request.Context(), account)
	if err != nil {
		h.Logger.WithError(err).Error("prescription list failed")
		response.Error[any](c, http.StatusInternalServerError, "could not list prescriptions", nil)
		return
	}
	response.Success(c, http.StatusOK, out, "prescriptions", gin.H{"count": len(out)})
}
