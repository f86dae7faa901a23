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

// AppointmentModule wires booking routes. Listing is open to every
// authenticated role; results are scoped inside the service.
type AppointmentModule struct {
	Handler  *handlers.AppointmentHandler
	Accounts repository.AccountRepository
}

func NewAppointmentModule(h *handlers.AppointmentHandler, accounts repository.AccountRepository) *AppointmentModule {
	return &AppointmentModule{Handler: h, Accounts: accounts}
}

func (m *AppointmentModule) Register(rg *gin.RouterGroup) {
	appts := rg.Group("/appointments")
	appts.Use(
		middleware.RequireAuth(container.GetJWT(), m.Accounts),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByAccount(), nil),
	)
	{
		appts.POST("",
			middleware.RequireRoles(entity.RoleAdmin, entity.RoleFrontDesk, entity.RoleDoctor),
			m.Handler.Create)
		appts.GET("", m.Handler.List)
		appts.PUT("/:id/status",
			middleware.RequireRoles(entity.RoleAdmin, entity.RoleFrontDesk, entity.RoleDoctor),
			m.Handler.UpdateStatus)
	}
}
