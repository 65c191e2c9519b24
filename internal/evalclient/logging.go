package evalclient

import (
	"context"
	"log/slog"
	"time"

	"github.com/comalice/automatonx/internal/core"
	"github.com/comalice/automatonx/internal/export"
	"github.com/comalice/automatonx/internal/primitives"
)

// LoggingClient wraps a core.Evaluator and logs every call.
type LoggingClient struct {
	inner  core.Evaluator
	logger *slog.Logger
}

// NewLoggingClient creates a LoggingClient wrapping inner. A nil logger uses
// slog.Default.
func NewLoggingClient(inner core.Evaluator, logger *slog.Logger) *LoggingClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingClient{inner: inner, logger: logger.With(slog.String("component", "evalclient"))}
}

// Evaluate logs before and after delegating to the inner client.
func (c *LoggingClient) Evaluate(ctx context.Context, m *primitives.Model) ([]export.CaseResult, error) {
	c.logger.Debug("evaluate request", slog.String("model", export.Describe(m)))
	start := time.Now()
	cases, err := c.inner.Evaluate(ctx, m)
	c.done("evaluate", start, err, slog.Int("results", len(cases)))
	return cases, err
}

// CheckEmptiness logs before and after delegating to the inner client.
func (c *LoggingClient) CheckEmptiness(ctx context.Context, m *primitives.Model) (bool, error) {
	c.logger.Debug("emptiness request", slog.String("model", export.Describe(m)))
	start := time.Now()
	empty, err := c.inner.CheckEmptiness(ctx, m)
	c.done("check emptiness", start, err, slog.Bool("empty", empty))
	return empty, err
}

func (c *LoggingClient) done(op string, start time.Time, err error, attr slog.Attr) {
	if err != nil {
		c.logger.Warn(op+" failed", slog.Duration("elapsed", time.Since(start)), slog.Any("error", err))
		return
	}
	c.logger.Info(op+" completed", slog.Duration("elapsed", time.Since(start)), attr)
}
