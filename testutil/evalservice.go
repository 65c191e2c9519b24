// Package testutil provides a fake evaluation service for tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

const (
	EvaluatePath  = "/api/process-automata"
	EmptinessPath = "/api/check-emptiness"
)

// Request is one body received by the fake service.
type Request struct {
	Path         string            `json:"-"`
	AutomataType string            `json:"automata_type"`
	Config       json.RawMessage   `json:"config"`
	TestCases    []json.RawMessage `json:"test_cases"`
}

// EvalService is an httptest server speaking the evaluation service
// protocol. Accept decides each test case; nil accepts everything. Empty is
// the emptiness verdict. A non-empty Fail makes every call answer
// success=false with that message.
type EvalService struct {
	URL string

	mu        sync.Mutex
	accept    func(input json.RawMessage) bool
	empty     bool
	fail      string
	legacyKey bool
	requests  []Request
}

// NewEvalService starts a fake service that is closed with t.Cleanup.
func NewEvalService(t testing.TB) *EvalService {
	t.Helper()
	s := &EvalService{}
	srv := httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(srv.Close)
	s.URL = srv.URL
	return s
}

// Accept sets the per-case verdict function.
func (s *EvalService) Accept(fn func(input json.RawMessage) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accept = fn
}

// SetEmpty sets the emptiness verdict. legacy answers under "results".
func (s *EvalService) SetEmpty(empty, legacy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.empty = empty
	s.legacyKey = legacy
}

// Fail makes subsequent calls report failure with msg ("" restores success).
func (s *EvalService) Fail(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = msg
}

// Requests returns the bodies received so far.
func (s *EvalService) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *EvalService) serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req.Path = r.URL.Path

	s.mu.Lock()
	s.requests = append(s.requests, req)
	accept, empty, fail, legacy := s.accept, s.empty, s.fail, s.legacyKey
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if fail != "" {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": fail})
		return
	}

	switch r.URL.Path {
	case EvaluatePath:
		results := make([]map[string]any, 0, len(req.TestCases))
		for _, tc := range req.TestCases {
			results = append(results, map[string]any{
				"input":    tc,
				"accepted": accept == nil || accept(tc),
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "results": results})
	case EmptinessPath:
		key := "result"
		if legacy {
			key = "results"
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, key: empty})
	default:
		http.NotFound(w, r)
	}
}
