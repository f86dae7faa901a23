package triage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
)

func upstream(t *testing.T, text string, delay time.Duration, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if delay > 0 {
			time.Sleep(delay)
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
			},
		})
	}))
}

func TestClassifySuccess(t *testing.T) {
	srv := upstream(t, "Possible conditions: flu.\nRisk Level: Moderate\nTests: CBC", 0, http.StatusOK)
	defer srv.Close()

	c := NewClient(srv.URL, "gemini-1.5-flash", "test-key", 2*time.Second, nil)
	res := c.Classify(context.Background(), []string{"fever", "cough"})

	require.True(t, res.Succeeded)
	assert.Equal(t, entity.RiskModerate, res.RiskLevel)
	assert.Contains(t, res.Narrative, "Possible conditions")
}

func TestClassifyTimeoutFallsBack(t *testing.T) {
	srv := upstream(t, "Risk Level: High", 500*time.Millisecond, http.StatusOK)
	defer srv.Close()

	c := NewClient(srv.URL, "gemini-1.5-flash", "test-key", 50*time.Millisecond, nil)
	res := c.Classify(context.Background(), []string{"chest pain"})

	assert.False(t, res.Succeeded)
	assert.Equal(t, FallbackNarrative, res.Narrative)
	assert.Equal(t, entity.RiskUnknown, res.RiskLevel)
}

func TestClassifyUpstreamErrorFallsBack(t *testing.T) {
	srv := upstream(t, "", 0, http.StatusInternalServerError)
	defer srv.Close()

	c := NewClient(srv.URL, "gemini-1.5-flash", "test-key", time.Second, nil)
	res := c.Classify(context.Background(), []string{"headache"})

	assert.False(t, res.Succeeded)
	assert.Equal(t, FallbackNarrative, res.Narrative)
	assert.Equal(t, entity.RiskUnknown, res.RiskLevel)
}

func TestExtractRiskLevel(t *testing.T) {
	cases := []struct {
		text string
		want entity.RiskLevel
	}{
		{"Risk Level: High", entity.RiskHigh},
		{"blah\nrisk level:   moderate\nmore", entity.RiskModerate},
		{"Suggested Risk Level: Low.", entity.RiskLow},
		{"Risk Level: High first, Risk Level: Low later", entity.RiskHigh},
		{"no marker at all", entity.RiskUnknown},
		{"Risk: High", entity.RiskUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractRiskLevel(tc.text), tc.text)
	}
}
