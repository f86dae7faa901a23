package router

import (
	"github.com/clinichq/clinic-manager/internal/application"
	"github.com/clinichq/clinic-manager/internal/container"
	pginfra "github.com/clinichq/clinic-manager/internal/infrastructure/postgres"
	handlers "github.com/clinichq/clinic-manager/internal/interface/http"
	"github.com/clinichq/clinic-manager/internal/router/modules"
)

// InitModules constructs repositories, services, and handlers from the
// container singletons and registers every feature module.
// Call once during startup.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	cfg := container.GetConfig()
	logger := container.GetLogger()

	accounts := pginfra.NewAccountRepository(pool)
	patients := pginfra.NewPatientRepository(pool)
	appointments := pginfra.NewAppointmentRepository(pool)
	prescriptions := pginfra.NewPrescriptionRepository(pool)
	diagnoses := pginfra.NewDiagnosisRepository(pool)

	authSvc := application.NewAuthService(
		accounts,
		container.GetJWT(),
		container.GetRedis(),
		logger,
		container.GetES(),
		cfg.ESAccountsIndex,
		container.GetRabbitPub(),
	)

	adminSvc := &application.AdminService{
		Accounts:        accounts,
		Patients:        patients,
		Appointments:    appointments,
		Prescriptions:   prescriptions,
		Diagnoses:       diagnoses,
		Redis:           container.GetRedis(),
		Logger:          logger,
		ES:              container.GetES(),
		ESAccountsIndex: cfg.ESAccountsIndex,
		Pub:             container.GetRabbitPub(),
	}

	patientSvc := &application.PatientService{
		Patients:      patients,
		Appointments:  appointments,
		Prescriptions: prescriptions,
		Diagnoses:     diagnoses,
		Logger:        logger,
	}

	appointmentSvc := &application.AppointmentService{
		Appointments: appointments,
		Patients:     patients,
		Accounts:     accounts,
		Logger:       logger,
		Pub:          container.GetRabbitPub(),
	}

	prescriptionSvc := &application.PrescriptionService{
		Prescriptions: prescriptions,
		Patients:      patients,
		GCS:           container.GetGCS(),
		Bucket:        cfg.GCSBucket,
		ClinicName:    cfg.ClinicName,
		Logger:        logger,
	}

	triageSvc := &application.TriageService{
		Diagnoses: diagnoses,
		Patients:  patients,
		AI:        container.GetAI(),
		Logger:    logger,
	}

	analyticsSvc := &application.AnalyticsService{
		Patients:      patients,
		Appointments:  appointments,
		Prescriptions: prescriptions,
		Diagnoses:     diagnoses,
		Logger:        logger,
	}

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), accounts))
	r.Add(modules.NewAdminModule(handlers.NewAdminHandler(adminSvc, authSvc, logger), accounts))
	r.Add(modules.NewPatientModule(handlers.NewPatientHandler(patientSvc, logger), accounts))
	r.Add(modules.NewAppointmentModule(handlers.NewAppointmentHandler(appointmentSvc, logger), accounts))
	r.Add(modules.NewPrescriptionModule(handlers.NewPrescriptionHandler(prescriptionSvc, logger), accounts))
	r.Add(modules.NewTriageModule(handlers.NewTriageHandler(triageSvc, logger), accounts))
	r.Add(modules.NewAnalyticsModule(handlers.NewAnalyticsHandler(analyticsSvc, logger), accounts))
	r.Add(modules.NewDebugModule())
}
