package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/repbase/workout-tracker/internal/workout/exercises"
	"github.com/repbase/workout-tracker/internal/workout/sessions"
	"github.com/repbase/workout-tracker/internal/workout/templates"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const userAgent = "WorkoutTrackerCLI/1.0"

type apiClient struct {
	baseURL    string
	httpClient *http.Client
}

func newApiClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *apiClient) Templates(ctx context.Context) ([]templates.Template, error) {
	var result []templates.Template
	if err := c.call(ctx, "GET", "/templates", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *apiClient) TemplateExercises(ctx context.Context, templateID int) ([]templates.TemplateExercise, error) {
	var result []templates.TemplateExercise
	if err := c.call(ctx, "GET", fmt.Sprintf("/templates/%d/exercises", templateID), nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *apiClient) CreateSession(ctx context.Context, req sessions.AddSessionRequest) (*sessions.Session, error) {
	var result sessions.Session
	if err := c.call(ctx, "POST", "/sessions", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *apiClient) Sessions(ctx context.Context) ([]sessions.Session, error) {
	var result []sessions.Session
	if err := c.call(ctx, "GET", "/sessions", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *apiClient) FinishSession(ctx context.Context, sessionID int, endTime time.Time) (*sessions.Session, error) {
	var result sessions.Session
	req := sessions.UpdateSessionRequest{EndTime: &endTime}
	if err := c.call(ctx, "PUT", fmt.Sprintf("/sessions/%d", sessionID), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *apiClient) CreateExercise(ctx context.Context, req exercises.AddExerciseRequest) (*exercises.Exercise, error) {
	var result exercises.Exercise
	if err := c.call(ctx, "POST", "/exercises", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *apiClient) SessionExercises(ctx context.Context, sessionID int) ([]exercises.Exercise, error) {
	var result []exercises.Exercise
	if err := c.call(ctx, "GET", fmt.Sprintf("/sessions/%d/exercises", sessionID), nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *apiClient) call(ctx context.Context, method, path string, reqBody, respDest any) error {
	var body io.Reader
	if reqBody != nil {
		reqJson, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(reqJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: [%d] %s", method, path, resp.StatusCode, bytes.TrimSpace(respBytes))
	}

	if respDest == nil {
		return nil
	}
	if err := json.Unmarshal(respBytes, respDest); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
