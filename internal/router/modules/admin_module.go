package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinichq/clinic-manager/internal/container"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
	handlers "github.com/clinichq/clinic-manager/internal/interface/http"
	"github.com/clinichq/clinic-manager/internal/interface/middleware"
)

// AdminModule wires the administrator-only surface.
// All routes: /api/admin/*, Admin role required.
type AdminModule struct {
	Handler  *handlers.AdminHandler
	Accounts repository.AccountRepository
}

func NewAdminModule(h *handlers.AdminHandler, accounts repository.AccountRepository) *AdminModule {
	return &AdminModule{Handler: h, Accounts: accounts}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(
		middleware.RequireAuth(container.GetJWT(), m.Accounts),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByAccount(), nil),
	)

	// Account lifecycle is the administrator's alone.
	users := admin.Group("/users")
	users.Use(middleware.AdminOnly())
	{
		users.GET("", m.Handler.ListUsers)
		users.GET("/search", m.Handler.SearchUsers)
		users.PUT("/:id/status", m.Handler.UpdateUserStatus)
		users.PUT("/:id/role", m.Handler.UpdateUserRole)
		users.DELETE("/:id", m.Handler.DeleteUser)
	}

	// Reporting is shared with the front desk.
	reports := admin.Group("")
	reports.Use(middleware.AdminOrFrontDesk())
	{
		reports.GET("/doctor-activities", m.Handler.DoctorActivities)
		reports.GET("/analytics", m.Handler.Analytics)
		reports.GET("/activity-logs", m.Handler.ActivityLogs)
	}
}
