// Package tracking pushes tuning runs to an experiment-tracking service over
// its HTTP API. Tracking is strictly best-effort: a missing key, an
// unreachable endpoint, or a rejected request degrades the client to a no-op
// with a warning, and the pipeline's own result artifacts stay authoritative.
package tracking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gianluca-kaufmann/pa3030/pkg/errors"
)

// Environment variables configuring the client.
const (
	EnvAPIKey  = "TRACKING_API_KEY"
	EnvEntity  = "TRACKING_ENTITY"
	EnvBaseURL = "TRACKING_BASE_URL"
)

// DefaultEntity is the workspace runs are filed under when TRACKING_ENTITY
// is unset.
const DefaultEntity = "gianluca-kaufmann"

const requestTimeout = 15 * time.Second

// Client sends run lifecycle events to the tracking service. The zero-value
// behavior of a nil *Client is a silent no-op, so callers never branch on
// whether tracking is configured.
type Client struct {
	baseURL string
	apiKey  string
	entity  string
	project string
	runID   string
	client  *http.Client
}

// FromEnv builds a client from TRACKING_* environment variables. When the
// API key is absent it returns nil (tracking disabled) after raising a
// warning, matching the offline behavior of the original pipeline.
func FromEnv(project string) *Client {
	key := os.Getenv(EnvAPIKey)
	if key == "" {
		errors.Warn(errors.NewTrackingWarning("init", EnvAPIKey+" not set"))
		return nil
	}
	base := os.Getenv(EnvBaseURL)
	if base == "" {
		base = "https://api.wandb.ai"
	}
	entity := os.Getenv(EnvEntity)
	if entity == "" {
		entity = DefaultEntity
	}
	return &Client{
		baseURL: base,
		apiKey:  key,
		entity:  entity,
		project: project,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

type runRequest struct {
	Entity  string         `json:"entity"`
	Project string         `json:"project"`
	Name    string         `json:"name"`
	Config  map[string]any `json:"config,omitempty"`
}

type runResponse struct {
	ID string `json:"id"`
}

type metricsRequest struct {
	RunID   string         `json:"run_id"`
	Step    int            `json:"step"`
	Metrics map[string]any `json:"metrics"`
}

type summaryRequest struct {
	RunID   string         `json:"run_id"`
	Summary map[string]any `json:"summary"`
}

// StartRun opens a run with the given display name and config payload. On
// failure the client degrades to a no-op for the rest of the process.
func (c *Client) StartRun(ctx context.Context, name string, config map[string]any) {
	if c == nil {
		return
	}
	var resp runResponse
	err := c.post(ctx, "/runs", runRequest{
		Entity:  c.entity,
		Project: c.project,
		Name:    name,
		Config:  config,
	}, &resp)
	if err != nil {
		errors.Warn(errors.NewTrackingWarning("start_run", err.Error()))
		c.apiKey = ""
		return
	}
	c.runID = resp.ID
}

// LogMetrics records per-step metrics (one step per tuning trial).
func (c *Client) LogMetrics(ctx context.Context, step int, metrics map[string]any) {
	if c == nil || c.runID == "" {
		return
	}
	err := c.post(ctx, "/runs/"+c.runID+"/metrics", metricsRequest{
		RunID:   c.runID,
		Step:    step,
		Metrics: metrics,
	}, nil)
	if err != nil {
		errors.Warn(errors.NewTrackingWarning("log_metrics", err.Error()))
	}
}

// LogSummary records final run-level values such as the best validation
// score and the winning parameters.
func (c *Client) LogSummary(ctx context.Context, summary map[string]any) {
	if c == nil || c.runID == "" {
		return
	}
	err := c.post(ctx, "/runs/"+c.runID+"/summary", summaryRequest{
		RunID:   c.runID,
		Summary: summary,
	}, nil)
	if err != nil {
		errors.Warn(errors.NewTrackingWarning("log_summary", err.Error()))
	}
}

// Finish marks the run as complete.
func (c *Client) Finish(ctx context.Context) {
	if c == nil || c.runID == "" {
		return
	}
	if err := c.post(ctx, "/runs/"+c.runID+"/finish", struct{}{}, nil); err != nil {
		errors.Warn(errors.NewTrackingWarning("finish", err.Error()))
	}
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	if c.apiKey == "" {
		return fmt.Errorf("tracking disabled after earlier failure")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("tracking request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("tracking service returned status %d", resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
