// Package evalclient talks to the external automaton evaluation service.
//
// The service exposes two JSON-over-HTTP endpoints: process-automata, which
// runs a model against its test cases, and check-emptiness (NFA and SAFA).
// Any transport failure, non-2xx status, undecodable body or success=false
// reply is returned as a *primitives.NetworkError. There is no retry.
package evalclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/comalice/automatonx/internal/export"
	"github.com/comalice/automatonx/internal/primitives"
)

const (
	DefaultBaseURL       = "http://localhost:5000"
	DefaultEvaluatePath  = "/api/process-automata"
	DefaultEmptinessPath = "/api/check-emptiness"
)

// Client is the HTTP evaluation client. The zero Timeout means none.
type Client struct {
	BaseURL       string
	EvaluatePath  string
	EmptinessPath string
	Timeout       time.Duration

	httpClient *http.Client
}

// New creates a Client for baseURL with the default endpoint paths.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:       strings.TrimRight(baseURL, "/"),
		EvaluatePath:  DefaultEvaluatePath,
		EmptinessPath: DefaultEmptinessPath,
	}
}

// WithHTTPClient replaces the underlying *http.Client (tests, proxies).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

func (c *Client) client() *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}
	return &http.Client{Timeout: c.Timeout}
}

// Evaluate submits m and its test cases and returns one verdict per case.
func (c *Client) Evaluate(ctx context.Context, m *primitives.Model) ([]export.CaseResult, error) {
	req, err := export.NewEvaluateRequest(m)
	if err != nil {
		return nil, err
	}
	var resp export.EvaluateResponse
	if err := c.post(ctx, "evaluate", c.EvaluatePath, req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &primitives.NetworkError{Op: "evaluate", Message: failure(resp.Error)}
	}
	return resp.Results, nil
}

// CheckEmptiness reports whether the language of m is empty.
func (c *Client) CheckEmptiness(ctx context.Context, m *primitives.Model) (bool, error) {
	if m.Kind != primitives.NFA && m.Kind != primitives.SAFA {
		return false, &primitives.UnsupportedError{Kind: m.Kind, Op: "emptiness check"}
	}
	req, err := export.NewEmptinessRequest(m)
	if err != nil {
		return false, err
	}
	var resp export.EmptinessResponse
	if err := c.post(ctx, "check emptiness", c.EmptinessPath, req, &resp); err != nil {
		return false, err
	}
	if !resp.Success {
		return false, &primitives.NetworkError{Op: "check emptiness", Message: failure(resp.Error)}
	}
	empty, ok := resp.Empty()
	if !ok {
		return false, &primitives.NetworkError{Op: "check emptiness", Message: "response carries no result"}
	}
	return empty, nil
}

func (c *Client) post(ctx context.Context, op, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: marshal request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return &primitives.NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client().Do(req)
	if err != nil {
		return &primitives.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &primitives.NetworkError{Op: op, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &primitives.NetworkError{Op: op, Status: resp.StatusCode}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &primitives.NetworkError{Op: op, Status: resp.StatusCode, Message: "undecodable response", Err: err}
	}
	return nil
}

func failure(msg string) string {
	if msg == "" {
		return "service reported failure"
	}
	return msg
}
