package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinichq/clinic-manager/internal/container"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
	handlers "github.com/clinichq/clinic-manager/internal/interface/http"
	"github.com/clinichq/clinic-manager/internal/interface/middleware"
)

// AnalyticsModule wires the role-scoped overview endpoint.
type AnalyticsModule struct {
	Handler  *handlers.AnalyticsHandler
	Accounts repository.AccountRepository
}

func NewAnalyticsModule(h *handlers.AnalyticsHandler, accounts repository.AccountRepository) *AnalyticsModule {
	return &AnalyticsModule{Handler: h, Accounts: accounts}
}

func (m *AnalyticsModule) Register(rg *gin.RouterGroup) {
	analytics := rg.Group("/analytics")
	analytics.Use(
		middleware.RequireAuth(container.GetJWT(), m.Accounts),
		middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByAccount(), nil),
	)
	{
		analytics.GET("", m.Handler.Overview)
	}
}
