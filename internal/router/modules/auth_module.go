package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinichq/clinic-manager/internal/container"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
	handlers "github.com/clinichq/clinic-manager/internal/interface/http"
	"github.com/clinichq/clinic-manager/internal/interface/middleware"
)

// AuthModule wires registration, login, and session routes.
// Public: POST /api/auth/register, POST /api/auth/login, POST /api/auth/refresh
// Protected: POST /api/auth/logout, GET /api/auth/me
type AuthModule struct {
	Handler  *handlers.AuthHandler
	Accounts repository.AccountRepository
}

func NewAuthModule(h *handlers.AuthHandler, accounts repository.AccountRepository) *AuthModule {
	return &AuthModule{Handler: h, Accounts: accounts}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	auth := rg.Group("/auth")
	auth.POST("/register", registerLimiter, m.Handler.Register)
	auth.POST("/login", loginLimiter, m.Handler.Login)
	auth.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	protected := auth.Group("/")
	protected.Use(middleware.RequireAuth(container.GetJWT(), m.Accounts))
	{
		protected.POST("/logout", m.Handler.Logout)
		protected.GET("/me", m.Handler.Me)
	}
}
