package fsm

import (
	"context"
	"time"

	"github.com/amp-labs/amp-machines/logger"
)

// Logger provides logging hooks for machine dispatch.
type Logger interface {
	TransitionApplied(ctx context.Context, from, to, command string, duration time.Duration)
	TransitionRejected(ctx context.Context, state, command string)
}

// DefaultLogger implements Logger using the shared slog-based logger.
type DefaultLogger struct{}

// NewDefaultLogger creates a new default logger.
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{}
}

func (l *DefaultLogger) TransitionApplied(ctx context.Context, from, to, command string, duration time.Duration) {
	logger.Get(ctx).DebugContext(ctx, "Transition applied",
		"from", from,
		"to", to,
		"command", command,
		"duration_ms", duration.Milliseconds(),
	)
}

func (l *DefaultLogger) TransitionRejected(ctx context.Context, state, command string) {
	logger.Get(ctx).WarnContext(ctx, "Transition rejected",
		"state", state,
		"command", command,
	)
}

// nopLogger discards all dispatch events.
type nopLogger struct{}

func (nopLogger) TransitionApplied(context.Context, string, string, string, time.Duration) {}

func (nopLogger) TransitionRejected(context.Context, string, string) {}
