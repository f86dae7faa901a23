package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinichq/clinic-manager/internal/container"
	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
	handlers "github.com/clinichq/clinic-manager/internal/interface/http"
	"github.com/clinichq/clinic-manager/internal/interface/middleware"
)

// TriageModule wires the AI-assisted routes. Diagnosis is doctor-only,
// report analysis is for doctors and patients, and health advice is open
// to any authenticated account. Upstream calls are slow, so the limits
// here are tighter.
type TriageModule struct {
	Handler  *handlers.TriageHandler
	Accounts repository.AccountRepository
}

func NewTriageModule(h *handlers.TriageHandler, accounts repository.AccountRepository) *TriageModule {
	return &TriageModule{Handler: h, Accounts: accounts}
}

func (m *TriageModule) Register(rg *gin.RouterGroup) {
	aiLimiter := middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByAccount(), nil)

	ai := rg.Group("/ai")
	ai.Use(middleware.RequireAuth(container.GetJWT(), m.Accounts))
	{
		ai.POST("/diagnose", middleware.DoctorOnly(), aiLimiter, m.Handler.Diagnose)
		ai.GET("/logs", m.Handler.Logs)
		ai.POST("/health-advice", aiLimiter, m.Handler.HealthAdvice)
		ai.POST("/analyze-report",
			middleware.RequireRoles(entity.RoleDoctor, entity.RolePatient),
			aiLimiter, m.Handler.AnalyzeReport)
	}
}
