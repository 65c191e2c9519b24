package export

import (
	"encoding/json"

	"github.com/comalice/automatonx/internal/primitives"
)

// EvaluateRequest is the body of the process-automata call.
type EvaluateRequest struct {
	AutomataType primitives.Kind `json:"automata_type"`
	Config       any             `json:"config"`
	TestCases    []any           `json:"test_cases"`
}

// EmptinessRequest is the body of the check-emptiness call.
type EmptinessRequest struct {
	AutomataType primitives.Kind `json:"automata_type"`
	Config       any             `json:"config"`
}

// CaseResult is the verdict for one submitted test case. Input echoes the
// case as the service returned it.
type CaseResult struct {
	Input    json.RawMessage `json:"input"`
	Accepted bool            `json:"accepted"`
}

// EvaluateResponse is the process-automata reply.
type EvaluateResponse struct {
	Success bool         `json:"success"`
	Results []CaseResult `json:"results"`
	Error   string       `json:"error,omitempty"`
}

// EmptinessResponse is the check-emptiness reply. Some service builds send
// the verdict under "results" instead of "result"; Empty resolves either.
type EmptinessResponse struct {
	Success bool   `json:"success"`
	Result  *bool  `json:"result,omitempty"`
	Results *bool  `json:"results,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Empty returns the verdict and whether one was present.
func (r EmptinessResponse) Empty() (bool, bool) {
	switch {
	case r.Result != nil:
		return *r.Result, true
	case r.Results != nil:
		return *r.Results, true
	}
	return false, false
}

// NewEvaluateRequest builds the full evaluate body for m.
func NewEvaluateRequest(m *primitives.Model) (EvaluateRequest, error) {
	cfg, err := Config(m)
	if err != nil {
		return EvaluateRequest{}, err
	}
	return EvaluateRequest{AutomataType: m.Kind, Config: cfg, TestCases: TestCases(m)}, nil
}

// NewEmptinessRequest builds the emptiness body for m.
func NewEmptinessRequest(m *primitives.Model) (EmptinessRequest, error) {
	cfg, err := Config(m)
	if err != nil {
		return EmptinessRequest{}, err
	}
	return EmptinessRequest{AutomataType: m.Kind, Config: cfg}, nil
}
