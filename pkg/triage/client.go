package triage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
)

// FallbackNarrative is returned whenever the upstream call fails or
// times out. Callers render it as a normal (degraded) result, never as
// an error.
const FallbackNarrative = "AI Service is currently unavailable. Please proceed with manual diagnosis."

const defaultTimeout = 8 * time.Second

var riskPattern = regexp.MustCompile(`(?i)Risk Level:\s*(High|Moderate|Low)`)

// Result is the collapsed outcome of a classification call. Succeeded
// is false for the fallback path; RiskLevel is advisory only.
type Result struct {
	Succeeded bool
	Narrative string
	RiskLevel entity.RiskLevel
}

// Client wraps the Google generative language REST API with a bounded
// timeout and heuristic risk extraction.
type Client struct {
	Endpoint string
	Model    string
	APIKey   string
	Timeout  time.Duration
	HTTP     *http.Client
	Logger   *logrus.Logger
}

func NewClient(endpoint, model, apiKey string, timeout time.Duration, logger *logrus.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		Endpoint: strings.TrimRight(endpoint, "/"),
		Model:    model,
		APIKey:   apiKey,
		Timeout:  timeout,
		HTTP: &http.Client{
			Transport: &http.Transport{
				MaxIdleConnsPerHost:   10,
				ResponseHeaderTimeout: timeout,
				DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
			},
		},
		Logger: logger,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Classify sends the symptom list upstream and returns the narrative
// with a heuristic risk level. Any upstream failure or timeout yields
// the fixed fallback; Classify never returns an error.
func (c *Client) Classify(ctx context.Context, symptoms []string) Result {
	prompt := fmt.Sprintf(
		"You are a medical AI assistant helping a doctor. The patient presents with the following symptoms: %s. "+
			"Provide a short list of possible conditions, a suggested risk level (Low, Moderate, High), and recommended preliminary tests. "+
			"Format the response in plain text but cleanly structured. Risk Level should be clearly stated.",
		strings.Join(symptoms, ", "))

	text, err := c.generate(ctx, prompt)
	if err != nil {
		if c.Logger != nil {
			c.Logger.WithError(err).Warn("ai triage call failed, using fallback")
		}
		return Result{Succeeded: false, Narrative: FallbackNarrative, RiskLevel: entity.RiskUnknown}
	}
	return Result{Succeeded: true, Narrative: text, RiskLevel: ExtractRiskLevel(text)}
}

// Ask sends an arbitrary prompt upstream with the same timeout and
// fallback behavior as Classify.
func (c *Client) Ask(ctx context.Context, prompt string) Result {
	text, err := c.generate(ctx, prompt)
	if err != nil {
		if c.Logger != nil {
			c.Logger.WithError(err).Warn("ai call failed, using fallback")
		}
		return Result{Succeeded: false, Narrative: FallbackNarrative, RiskLevel: entity.RiskUnknown}
	}
	return Result{Succeeded: true, Narrative: text, RiskLevel: ExtractRiskLevel(text)}
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.Endpoint, c.Model, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d", res.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty candidates")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// ExtractRiskLevel scans free-form narrative text for the first
// "Risk Level:" marker. Best effort; no match yields Unknown.
func ExtractRiskLevel(text string) entity.RiskLevel {
	m := riskPattern.FindStringSubmatch(text)
	if m == nil {
		return entity.RiskUnknown
	}
	switch strings.ToLower(m[1]) {
	case "high":
		return entity.RiskHigh
	case "moderate":
		return entity.RiskModerate
	case "low":
		return entity.RiskLow
	}
	return entity.RiskUnknown
}
