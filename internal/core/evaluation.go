package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/comalice/automatonx/internal/export"
	"github.com/comalice/automatonx/internal/primitives"
)

// EvaluationResult is the outcome of one Evaluate call. Version is the model
// version the request was built from; compare with Editor.Version to tell
// whether the model changed while the request was in flight.
type EvaluationResult struct {
	Version   string
	Cases     []export.CaseResult
	Err       error
	Completed time.Time
}

// EmptinessResult is the outcome of one CheckEmptiness call.
type EmptinessResult struct {
	Version   string
	Empty     bool
	Err       error
	Completed time.Time
}

// Evaluate submits a snapshot of the model and its test cases to the
// evaluation service. The call returns at once; the result arrives on the
// channel and is also stored for LastEvaluation. The model stays editable
// while the request is outstanding. Stored test cases must all be valid.
func (e *Editor) Evaluate(ctx context.Context) (<-chan EvaluationResult, error) {
	snap, gen, err := e.prepareRequest(true)
	if err != nil {
		return nil, err
	}
	version := primitives.ComputeVersion(snap)
	ch := make(chan EvaluationResult, 1)
	go func() {
		defer close(ch)
		start := time.Now()
		cases, err := e.evaluator.Evaluate(ctx, snap)
		res := EvaluationResult{Version: version, Cases: cases, Err: err, Completed: time.Now()}
		e.logger.Info("evaluation finished",
			slog.String("version", version),
			slog.Int("cases", len(cases)),
			slog.Duration("elapsed", time.Since(start)),
			slog.Any("error", err))

		e.mu.Lock()
		if e.generation == gen {
			e.evaluation = &res
		}
		e.mu.Unlock()
		ch <- res
	}()
	return ch, nil
}

// CheckEmptiness asks the service whether the language of a snapshot of the
// model is empty. Only kinds with the Emptiness capability support it.
func (e *Editor) CheckEmptiness(ctx context.Context) (<-chan EmptinessResult, error) {
	if !e.variant.Capabilities().Emptiness {
		return nil, e.fail(&primitives.UnsupportedError{Kind: e.variant.Kind(), Op: "emptiness check"})
	}
	snap, gen, err := e.prepareRequest(false)
	if err != nil {
		return nil, err
	}
	version := primitives.ComputeVersion(snap)
	ch := make(chan EmptinessResult, 1)
	go func() {
		defer close(ch)
		empty, err := e.evaluator.CheckEmptiness(ctx, snap)
		res := EmptinessResult{Version: version, Empty: empty, Err: err, Completed: time.Now()}
		e.logger.Info("emptiness check finished",
			slog.String("version", version),
			slog.Bool("empty", empty),
			slog.Any("error", err))

		e.mu.Lock()
		if e.generation == gen {
			e.emptiness = &res
		}
		e.mu.Unlock()
		ch <- res
	}()
	return ch, nil
}

// prepareRequest snapshots the model for a service call. Evaluation also
// requires every stored test case to be valid.
func (e *Editor) prepareRequest(withTests bool) (*primitives.Model, uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.evaluator == nil {
		e.lastErr = ErrNoEvaluator.Error()
		return nil, 0, ErrNoEvaluator
	}
	if withTests {
		if issues := checkTestCases(e.model); len(issues) > 0 {
			err := fmt.Errorf("please fix all invalid test cases before testing (%s): %w", issues[0], primitives.ErrMalformedTestCase)
			e.lastErr = err.Error()
			return nil, 0, err
		}
	}
	e.lastErr = ""
	return e.model.Clone(), e.generation, nil
}

// LastEvaluation returns the most recent evaluation result, if any.
func (e *Editor) LastEvaluation() (EvaluationResult, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.evaluation == nil {
		return EvaluationResult{}, false
	}
	return *e.evaluation, true
}

// LastEmptiness returns the most recent emptiness result, if any.
func (e *Editor) LastEmptiness() (EmptinessResult, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.emptiness == nil {
		return EmptinessResult{}, false
	}
	return *e.emptiness, true
}
