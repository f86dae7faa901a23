package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinichq/clinic-manager/internal/application"
	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
)

// stubPatients records creates; everything else is empty.
type stubPatients struct {
	created []*entity.Patient
}

func (s *stubPatients) Create(_ context.Context, p *entity.Patient) error {
	p.ID = "p-1"
	s.created = append(s.created, p)
	return nil
}

func (s *stubPatients) GetByID(context.Context, string) (*entity.Patient, error) {
	return nil, repository.ErrNotFound
}
func (s *stubPatients) List(context.Context) ([]entity.Patient, error) { return nil, nil }
func (s *stubPatients) FindByAccountID(context.Context, string) (*entity.Patient, error) {
	return nil, repository.ErrNotFound
}
func (s *stubPatients) FindByContactOrName(context.Context, string, string) (*entity.Patient, error) {
	return nil, repository.ErrNotFound
}
func (s *stubPatients) Count(context.Context) (int64, error) { return 0, nil }
func (s *stubPatients) MonthlyCounts(context.Context, time.Time) ([]repository.MonthCount, error) {
	return nil, nil
}

var _ repository.PatientRepository = (*stubPatients)(nil)

func asAccount(a *entity.Account) gin.HandlerFunc {
	return func(c *gin.Context) { c.Set("account", a) }
}

func patientRouter(repo repository.PatientRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPatientHandler(&application.PatientService{Patients: repo}, logrus.New())
	r := gin.New()
	staff := &entity.Account{ID: "staff-1", Role: entity.RoleFrontDesk, Status: entity.StatusActive}
	r.POST("/patients", asAccount(staff), h.Create)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Gender values are stored verbatim and the schema only accepts the
// capitalized vocabulary, so the binding must accept exactly that.
func TestCreatePatientAcceptsCapitalizedGender(t *testing.T) {
	repo := &stubPatients{}
	r := patientRouter(repo)

	w := postJSON(r, "/patients", `{"name":"Budi Hartono","age":42,"gender":"Male","contact":"budi@example.com"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "Male", repo.created[0].Gender)
	assert.Equal(t, "staff-1", repo.created[0].CreatedBy)
}

func TestCreatePatientRejectsLowercaseGender(t *testing.T) {
	repo := &stubPatients{}
	r := patientRouter(repo)

	w := postJSON(r, "/patients", `{"name":"Budi Hartono","age":42,"gender":"male","contact":"budi@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.created)
}
