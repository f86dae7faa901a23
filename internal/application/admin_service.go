package application

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
	"github.com/clinichq/clinic-manager/pkg/helpers"
	"github.com/clinichq/clinic-manager/pkg/mailer"
)

const analyticsCacheKey = "admin:analytics"
const analyticsCacheTTL = time.Minute

// AdminService implements the account lifecycle state machine and the
// administrative reporting endpoints.
type AdminService struct {
	Accounts        repository.AccountRepository
	Patients        repository.PatientRepository
	Appointments    repository.AppointmentRepository
	Prescriptions   repository.PrescriptionRepository
	Diagnoses       repository.DiagnosisRepository
	Redis           *redis.Client
	Logger          *logrus.Logger
	ES              *elasticsearch.Client
	ESAccountsIndex string
	Pub             *helpers.RabbitPublisher
}

func (s *AdminService) ListAccounts(ctx context.Context, f repository.AccountFilter) ([]entity.Account, error) {
	accounts, err := s.Accounts.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		accounts[i].Password = ""
	}
	return accounts, nil
}

// target loads the account under modification and enforces the guards
// shared by every status- and role-changing operation: the target must
// exist and must not be the acting account.
func (s *AdminService) target(ctx context.Context, actorID, targetID string) (*entity.Account, error) {
	a, err := s.Accounts.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if a.ID == actorID {
		return nil, ErrSelfModification
	}
	return a, nil
}

func (s *AdminService) stamp(a *entity.Account, actorID string) {
	now := time.Now()
	a.StatusChangedAt = &now
	a.StatusChangedBy = actorID
}

// UpdateStatus moves the target account between active, blocked, and
// suspended. Deletion goes through SoftDelete.
func (s *AdminService) UpdateStatus(ctx context.Context, actorID, targetID string, status entity.Status) (*entity.Account, error) {
	if !status.Transitionable() {
		return nil, ErrInvalidStatus
	}
	a, err := s.target(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}

	a.Status = status
	s.stamp(a, actorID)
	if err := s.Accounts.Update(ctx, a); err != nil {
		return nil, err
	}

	_ = indexAccountDoc(ctx, s.ES, s.ESAccountsIndex, s.Logger, a)
	s.notifyStatus(ctx, a)
	return a.Stripped(), nil
}

// UpdateRole changes the target's role. Admin accounts are immutable in
// role and no account can be promoted to Admin through this path.
func (s *AdminService) UpdateRole(ctx context.Context, actorID, targetID string, role entity.Role) (*entity.Account, error) {
	if !role.Assignable() {
		return nil, ErrInvalidRole
	}
	a, err := s.target(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if a.Role == entity.RoleAdmin {
		return nil, ErrAdminRoleImmutable
	}

	a.Role = role
	s.stamp(a, actorID)
	if err := s.Accounts.Update(ctx, a); err != nil {
		return nil, err
	}

	_ = indexAccountDoc(ctx, s.ES, s.ESAccountsIndex, s.Logger, a)
	return a.Stripped(), nil
}

// SoftDelete marks the target deleted. The row is never removed.
func (s *AdminService) SoftDelete(ctx context.Context, actorID, targetID string) error {
	a, err := s.target(ctx, actorID, targetID)
	if err != nil {
		return err
	}

	a.Status = entity.StatusDeleted
	s.stamp(a, actorID)
	if err := s.Accounts.Update(ctx, a); err != nil {
		return err
	}

	_ = indexAccountDoc(ctx, s.ES, s.ESAccountsIndex, s.Logger, a)
	return nil
}

func (s *AdminService) notifyStatus(ctx context.Context, a *entity.Account) {
	if s.Pub == nil {
		return
	}
	job := &mailer.EmailJob{
		To:       a.Email,
		Template: mailer.TemplateAccountStatusChanged,
		Data:     map[string]any{"Name": a.Name, "Status": string(a.Status)},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("account_id", a.ID).Warn("status notification publish failed")
	}
}

// DoctorActivity is the admin dashboard row for one doctor.
type DoctorActivity struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Email              string           `json:"email"`
	Status             entity.Status    `json:"status"`
	TotalAppointments  int64            `json:"total_appointments"`
	TotalPrescriptions int64            `json:"total_prescriptions"`
	TotalDiagnoses     int64            `json:"total_diagnoses"`
	TodayAppointments  int64            `json:"today_appointments"`
	CompletedToday     int64            `json:"completed_today"`
	RecentActivity     []ActivityRecord `json:"recent_activity"`
	CreatedAt          time.Time        `json:"created_at"`
}

// ActivityRecord is one row of the merged activity feed.
type ActivityRecord struct {
	Type    string         `json:"type"`
	Action  string         `json:"action"`
	Patient string         `json:"patient"`
	Doctor  string         `json:"doctor"`
	Date    time.Time      `json:"date"`
	Details map[string]any `json:"details,omitempty"`
}

// DoctorActivities aggregates per-doctor workload stats.
func (s *AdminService) DoctorActivities(ctx context.Context) ([]DoctorActivity, error) {
	doctors, err := s.Accounts.ListDoctors(ctx)
	if err != nil {
		return nil, err
	}

	today := time.Now().Truncate(24 * time.Hour)
	tomorrow := today.Add(24 * time.Hour)

	out := make([]DoctorActivity, 0, len(doctors))
	for _, d := range doctors {
		scope := repository.ScopeDoctor(d.ID)

		appts, err := s.Appointments.Count(ctx, repository.AppointmentFilter{DoctorID: d.ID})
		if err != nil {
			return nil, err
		}
		rx, err := s.Prescriptions.CountByDoctor(ctx, d.ID)
		if err != nil {
			return nil, err
		}
		dx, err := s.Diagnoses.CountByDoctor(ctx, d.ID)
		if err != nil {
			return nil, err
		}
		todayAppts, err := s.Appointments.Count(ctx, repository.AppointmentFilter{DoctorID: d.ID, From: today, To: tomorrow})
		if err != nil {
			return nil, err
		}
		completedToday, err := s.Appointments.Count(ctx, repository.AppointmentFilter{
			DoctorID: d.ID, Status: entity.AppointmentCompleted, From: today, To: tomorrow,
		})
		if err != nil {
			return nil, err
		}
		recent, err := s.Appointments.ListRecent(ctx, scope, 5)
		if err != nil {
			return nil, err
		}

		activity := make([]ActivityRecord, 0, len(recent))
		for _, apt := range recent {
			activity = append(activity, ActivityRecord{
				Type:    "appointment",
				Action:  "Appointment " + string(apt.Status),
				Patient: apt.PatientName,
				Doctor:  d.Name,
				Date:    apt.ScheduledAt,
			})
		}

		out = append(out, DoctorActivity{
			ID:                 d.ID,
			Name:               d.Name,
			Email:              d.Email,
			Status:             d.Status,
			TotalAppointments:  appts,
			TotalPrescriptions: rx,
			TotalDiagnoses:     dx,
			TodayAppointments:  todayAppts,
			CompletedToday:     completedToday,
			RecentActivity:     activity,
			CreatedAt:          d.CreatedAt,
		})
	}
	return out, nil
}

// DashboardAnalytics is the admin overview payload.
type DashboardAnalytics struct {
	Totals struct {
		Users         int64 `json:"users"`
		Patients      int64 `json:"patients"`
		Appointments  int64 `json:"appointments"`
		Prescriptions int64 `json:"prescriptions"`
		Diagnoses     int64 `json:"diagnoses"`
	} `json:"totals"`
	UsersByRole          map[entity.Role]int64              `json:"users_by_role"`
	AppointmentsByStatus map[entity.AppointmentStatus]int64 `json:"appointments_by_status"`
	DiagnosesByRisk      map[entity.RiskLevel]int64         `json:"diagnoses_by_risk"`
	MonthlyTrends        struct {
		Appointments []repository.MonthCount `json:"appointments"`
		Patients     []repository.MonthCount `json:"patients"`
	} `json:"monthly_trends"`
}

// Analytics builds the dashboard aggregates, cached in Redis briefly to
// keep the dashboard cheap to poll.
func (s *AdminService) Analytics(ctx context.Context) (*DashboardAnalytics, error) {
	if s.Redis != nil {
		var cached DashboardAnalytics
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, analyticsCacheKey, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	out := &DashboardAnalytics{}
	var err error
	if out.Totals.Users, err = s.Accounts.CountActive(ctx); err != nil {
		return nil, err
	}
	if out.Totals.Patients, err = s.Patients.Count(ctx); err != nil {
		return nil, err
	}
	all := repository.AppointmentFilter{}
	if out.Totals.Appointments, err = s.Appointments.Count(ctx, all); err != nil {
		return nil, err
	}
	if out.Totals.Prescriptions, err = s.Prescriptions.Count(ctx); err != nil {
		return nil, err
	}
	if out.Totals.Diagnoses, err = s.Diagnoses.Count(ctx); err != nil {
		return nil, err
	}
	if out.UsersByRole, err = s.Accounts.CountByRole(ctx); err != nil {
		return nil, err
	}
	if out.AppointmentsByStatus, err = s.Appointments.CountByStatus(ctx); err != nil {
		return nil, err
	}
	if out.DiagnosesByRisk, err = s.Diagnoses.CountByRisk(ctx, repository.ScopeAll()); err != nil {
		return nil, err
	}

	sixMonthsAgo := time.Now().AddDate(0, -6, 0)
	if out.MonthlyTrends.Appointments, err = s.Appointments.MonthlyCounts(ctx, sixMonthsAgo); err != nil {
		return nil, err
	}
	if out.MonthlyTrends.Patients, err = s.Patients.MonthlyCounts(ctx, sixMonthsAgo); err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, analyticsCacheKey, out, analyticsCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("analytics cache write failed")
		}
	}
	return out, nil
}

// ActivityLogs merges recent appointments, prescriptions, and diagnoses
// into one feed, newest first.
func (s *AdminService) ActivityLogs(ctx context.Context, limit int) ([]ActivityRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	scope := repository.ScopeAll()

	appts, err := s.Appointments.ListRecent(ctx, scope, limit)
	if err != nil {
		return nil, err
	}
	rx, err := s.Prescriptions.ListRecent(ctx, scope, limit)
	if err != nil {
		return nil, err
	}
	dx, err := s.Diagnoses.ListRecent(ctx, scope, limit)
	if err != nil {
		return nil, err
	}

	feed := make([]ActivityRecord, 0, len(appts)+len(rx)+len(dx))
	for _, a := range appts {
		feed = append(feed, ActivityRecord{
			Type:    "appointment",
			Action:  "Appointment " + string(a.Status),
			Patient: a.PatientName,
			Doctor:  a.DoctorName,
			Date:    a.CreatedAt,
			Details: map[string]any{"status": a.Status, "scheduled_at": a.ScheduledAt},
		})
	}
	for _, p := range rx {
		feed = append(feed, ActivityRecord{
			Type:    "prescription",
			Action:  "Prescription created",
			Patient: p.PatientName,
			Doctor:  p.DoctorName,
			Date:    p.CreatedAt,
			Details: map[string]any{"medicines": len(p.Medicines)},
		})
	}
	for _, d := range dx {
		feed = append(feed, ActivityRecord{
			Type:    "diagnosis",
			Action:  "AI Diagnosis - " + string(d.RiskLevel) + " risk",
			Patient: d.PatientName,
			Doctor:  d.DoctorName,
			Date:    d.CreatedAt,
			Details: map[string]any{"risk_level": d.RiskLevel, "symptoms": d.Symptoms},
		})
	}

	sort.Slice(feed, func(i, j int) bool { return feed[i].Date.After(feed[j].Date) })
	if len(feed) > limit {
		feed = feed[:limit]
	}
	return feed, nil
}
