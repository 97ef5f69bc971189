// Package client is the HTTP implementation of the board's PipelineAPI,
// speaking to a freetrack server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"freetrack/internal/boardview"
	"freetrack/internal/pipeline"
)

type Client struct {
	BaseURL string
	Token   string // bearer access token
	http    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		http:    &http.Client{},
	}
}

var _ boardview.PipelineAPI = (*Client)(nil)

// FetchBoard returns the caller's board snapshot. The server scopes the
// board by the token's account; userID is carried for interface symmetry
// and ignored on the wire.
func (c *Client) FetchBoard(ctx context.Context, userID int) (*boardview.Snapshot, error) {
	var snap boardview.Snapshot
	if err := c.do(ctx, http.MethodGet, "/board", nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) RequestTransition(ctx context.Context, req pipeline.TransitionRequest) error {
	path := fmt.Sprintf("/projects/%d/transition", req.ProjectID)
	body := map[string]any{
		"from_stage": req.FromStage,
		"to_stage":   req.ToStage,
	}
	if req.Notes != "" {
		body["notes"] = req.Notes
	}
	return c.do(ctx, http.MethodPost, path, body, nil)
}

func (c *Client) SetStepStatus(ctx context.Context, action pipeline.StatusAction) error {
	var verb string
	switch action.(type) {
	case pipeline.MarkWaitingFeedback:
		verb = "waiting-feedback"
	case pipeline.MarkValidated:
		verb = "validate"
	case pipeline.MarkFailed:
		verb = "fail"
	case pipeline.MarkCanceled:
		verb = "cancel"
	default:
		return fmt.Errorf("unsupported status action %T", action)
	}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/steps/%d/%s", action.StepID(), verb), nil, nil)
}

func (c *Client) ScheduleStep(ctx context.Context, stepID int, at time.Time) error {
	path := fmt.Sprintf("/steps/%d/schedule", stepID)
	return c.do(ctx, http.MethodPost, path, map[string]any{"datetime": at}, nil)
}

type apiError struct {
	Message string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if b, readErr := io.ReadAll(resp.Body); readErr == nil {
			_ = json.Unmarshal(b, &apiErr)
		}
		if apiErr.Message != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Message)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
