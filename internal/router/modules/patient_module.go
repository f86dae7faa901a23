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

// PatientModule wires patient record routes.
// Staff manage records under /api/patients; a patient reads their own
// history at /api/patients/me/timeline.
type PatientModule struct {
	Handler  *handlers.PatientHandler
	Accounts repository.AccountRepository
}

func NewPatientModule(h *handlers.PatientHandler, accounts repository.AccountRepository) *PatientModule {
	return &PatientModule{Handler: h, Accounts: accounts}
}

func (m *PatientModule) Register(rg *gin.RouterGroup) {
	patients := rg.Group("/patients")
	patients.Use(
		middleware.RequireAuth(container.GetJWT(), m.Accounts),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByAccount(), nil),
	)
	staff := middleware.RequireRoles(entity.RoleAdmin, entity.RoleFrontDesk, entity.RoleDoctor)
	{
		patients.POST("", staff, m.Handler.Create)
		patients.GET("", staff, m.Handler.List)
		patients.GET("/me/timeline", m.Handler.MyTimeline)
		patients.GET("/:id/timeline",
			middleware.RequireRoles(entity.RoleAdmin, entity.RoleDoctor),
			m.Handler.Timeline)
	}
}
