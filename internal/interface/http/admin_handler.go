package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/clinichq/clinic-manager/internal/application"
	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
	"github.com/clinichq/clinic-manager/internal/interface/middleware"
	"github.com/clinichq/clinic-manager/pkg/response"
	"github.com/clinichq/clinic-manager/pkg/validation"
)

type AdminHandler struct {
	Svc    *application.AdminService
	Auth   *application.AuthService
	Logger *logrus.Logger
}

func NewAdminHandler(svc *application.AdminService, auth *application.AuthService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Auth: auth, Logger: logger}
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active blocked suspended"`
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=Doctor Receptionist Patient"`
}

// lifecycleStatus maps the lifecycle guard errors onto HTTP codes.
func lifecycleStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, application.ErrAccountNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, application.ErrSelfModification),
		errors.Is(err, application.ErrAdminRoleImmutable),
		errors.Is(err, application.ErrInvalidStatus),
		errors.Is(err, application.ErrInvalidRole):
		return http.StatusBadRequest, true
	}
	return 0, false
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	f := repository.AccountFilter{
		Role:   entity.Role(c.Query("role")),
		Status: entity.Status(c.Query("status")),
		Search: c.Query("search"),
	}
	accounts, err := h.Svc.ListAccounts(c.Request.Context(), f)
	if err != nil {
		h.Logger.WithError(err).Error("list accounts failed")
		response.Error[any](c, http.StatusInternalServerError, "could not list accounts", nil)
		return
	}
	response.Success(c, http.StatusOK, accounts, "accounts", gin.H{"count": len(accounts)})
}

func (h *AdminHandler) SearchUsers(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	hits, err := h.Auth.SearchAccounts(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("account search failed")
		response.Error[any](c, http.StatusInternalServerError, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}

func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	actor := middleware.AccountFromCtx(c)
	a, err := h.Svc.UpdateStatus(c.Request.Context(), actor.ID, c.Param("id"), entity.Status(req.Status))
	if err != nil {
		if code, ok := lifecycleStatus(err); ok {
			response.Error[any](c, code, err.Error(), nil)
			return
		}
		h.Logger.WithError(err).Error("status update failed")
		response.Error[any](c, http.StatusInternalServerError, "could not update status", nil)
		return
	}
	response.Success(c, http.StatusOK, a, "status updated", nil)
}

func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	actor := middleware.AccountFromCtx(c)
	a, err := h.Svc.UpdateRole(c.Request.Context(), actor.ID, c.Param("id"), entity.Role(req.Role))
	if err != nil {
		if code, ok := lifecycleStatus(err); ok {
			response.Error[any](c, code, err.Error(), nil)
			return
		}
		h.Logger.WithError(err).Error("role update failed")
		response.Error[any](c, http.StatusInternalServerError, "could not update role", nil)
		return
	}
	response.Success(c, http.StatusOK, a, "role updated", nil)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actor := middleware.AccountFromCtx(c)
	if err := h.Svc.SoftDelete(c.Request.Context(), actor.ID, c.Param("id")); err != nil {
		if code, ok := lifecycleStatus(err); ok {
			response.Error[any](c, code, err.Error(), nil)
			return
		}
		h.Logger.WithError(err).Error("account delete failed")
		response.Error[any](c, http.StatusInternalServerError, "could not delete account", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "account deleted", nil)
}

func (h *AdminHandler) DoctorActivities(c *gin.Context) {
	out, err := h.Svc.DoctorActivities(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("doctor activities failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load doctor activities", nil)
		return
	}
	response.Success(c, http.StatusOK, out, "doctor activities", gin.H{"count": len(out)})
}

func (h *AdminHandler) Analytics(c *gin.Context) {
	out, err := h.Svc.Analytics(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("analytics failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load analytics", nil)
		return
	}
	response.Success(c, http.StatusOK, out, "dashboard analytics", nil)
}

func (h *AdminHandler) ActivityLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	out, err := h.Svc.ActivityLogs(c.Request.Context(), limit)
	if err != nil {
		h.Logger.WithError(err).Error("activity logs failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load activity logs", nil)
		return
	}
	response.Success(c, http.StatusOK, out, "activity logs", gin.H{"count": len(out)})
}
