package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/clinichq/clinic-manager/internal/application"
	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/pkg/triage"
)

func triageRouter(t *testing.T, upstreamText string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"` + upstreamText + `"}]}}]}`))
	}))
	t.Cleanup(srv.Close)

	svc := &application.TriageService{
		AI:     triage.NewClient(srv.URL, "test-model", "test-key", time.Second, nil),
		Logger: logrus.New(),
	}
	h := NewTriageHandler(svc, logrus.New())
	r := gin.New()
	doctor := &entity.Account{ID: "doc-1", Role: entity.RoleDoctor, Status: entity.StatusActive}
	r.POST("/ai/diagnose", asAccount(doctor), h.Diagnose)
	return r
}

func TestDiagnoseRespondsCreated(t *testing.T) {
	r := triageRouter(t, "Possible viral infection. Risk Level: Low.")

	w := postJSON(r, "/ai/diagnose", `{"symptoms":["fever","cough"]}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"Success"`)
}

func TestDiagnoseInvalidPayloadIsBadRequest(t *testing.T) {
	r := triageRouter(t, "Risk Level: Low")

	w := postJSON(r, "/ai/diagnose", `{"symptoms":[]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
