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

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"omitempty,oneof=Doctor Receptionist Patient"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	a, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password, entity.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmailTaken):
			response.Error[any](c, http.StatusConflict, err.Error(), nil)
		case errors.Is(err, application.ErrInvalidRole):
			response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		default:
			h.Logger.WithError(err).Error("register failed")
			response.Error[any](c, http.StatusInternalServerError, "could not register account", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, a, "account registered", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrAccountDisabled):
			response.Error[any](c, http.StatusForbidden, "your account has been blocked or deleted. contact the administrator", nil)
		case errors.Is(err, application.ErrAccountSuspended):
			response.Error[any](c, http.StatusForbidden, "your account is suspended. contact the administrator", nil)
		default:
			response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"account":       res,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}, "login successful", gin.H{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	pair, _, err := h.Svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}, "token refreshed", gin.H{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	a := middleware.AccountFromCtx(c)
	if a == nil {
		response.Error[any](c, http.StatusUnauthorized, "not authorized, no token", nil)
		return
	}
	if err := h.Svc.Logout(c.Request.Context(), a.ID); err != nil {
		h.Logger.WithError(err).Warn("logout session revoke failed")
	}
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	a := middleware.AccountFromCtx(c)
	if a == nil {
		response.Error[any](c, http.StatusUnauthorized, "not authorized, no token", nil)
		return
	}
	response.Success(c, http.StatusOK, a, "profile", nil)
}
