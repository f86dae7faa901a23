package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinichq/clinic-manager/internal/container"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
	handlers "github.com/clinichq/clinic-manager/internal/interface/http"
	"github.com/clinichq/clinic-manager/internal/interface/middleware"
)

// PrescriptionModule wires prescription routes. Only doctors issue
// prescriptions; listing is scoped per role inside the service.
type PrescriptionModule struct {
	Handler  *handlers.PrescriptionHandler
	Accounts repository.AccountRepository
}

func NewPrescriptionModule(h *handlers.PrescriptionHandler, accounts repository.AccountRepository) *PrescriptionModule {
	return &PrescriptionModule{Handler: h, Accounts: accounts}
}

func (m *PrescriptionModule) Register(rg *gin.RouterGroup) {
	rx := rg.Group("/prescriptions")
	rx.Use(
		middleware.RequireAuth(container.GetJWT(), m.Accounts),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByAccount(), nil),
	)
	{
		rx.POST("", middleware.DoctorOnly(), m.Handler.Create)
		rx.GET("", m.Handler.List)
	}
}
