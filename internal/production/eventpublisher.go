package production

import (
	"context"
	"log/slog"

	"github.com/comalice/automatonx/internal/core"
	"github.com/comalice/automatonx/internal/primitives"
)

// PublishedEvent bundles an event with its project metadata for publishing.
type PublishedEvent struct {
	Event    primitives.Event
	Metadata core.ChangeMetadata
}

// ChannelPublisher forwards events to a Go channel.
// Non-blocking publish with drop on backpressure.
type ChannelPublisher struct {
	ch chan<- PublishedEvent
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- PublishedEvent) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

func (p *ChannelPublisher) Publish(ctx context.Context, event primitives.Event, metadata core.ChangeMetadata) error {
	select {
	case p.ch <- PublishedEvent{Event: event, Metadata: metadata}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}

// LogPublisher writes every change event to a structured logger.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a LogPublisher. A nil logger uses slog.Default.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger.With(slog.String("component", "changes"))}
}

func (p *LogPublisher) Publish(ctx context.Context, event primitives.Event, metadata core.ChangeMetadata) error {
	p.logger.LogAttrs(ctx, slog.LevelDebug, event.Type,
		slog.String("project", metadata.ProjectID),
		slog.String("version", metadata.Version),
		slog.String("entity", string(event.Entity)),
		slog.String("label", event.Label),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
