package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/clinichq/clinic-manager/internal/application"
	"github.com/clinichq/clinic-manager/internal/interface/middleware"
	"github.com/clinichq/clinic-manager/pkg/response"
)

type AnalyticsHandler struct {
	Svc    *application.AnalyticsService
	Logger *logrus.Logger
}

func NewAnalyticsHandler(svc *application.AnalyticsService, logger *logrus.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{Svc: svc, Logger: logger}
}

func (h *AnalyticsHandler) Overview(c *gin.Context) {
	account := middleware.AccountFromCtx(c)
	out, err := h.Svc.Overview(c.Request.Context(), account)
	if err != nil {
		h.Logger.WithError(err).Error("analytics overview failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load analytics", nil)
		return
	}
	response.Success(c, http.StatusOK, out, "analytics overview", nil)
}
