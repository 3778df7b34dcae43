package fsm

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// startDispatchSpan creates a span for a single command dispatch.
// Uses the global tracer; the caller is responsible for calling span.End().
//
//nolint:spancheck // Span lifecycle managed by caller (factory pattern)
func startDispatchSpan(ctx context.Context, m *machineIdentity, state, command string) (context.Context, trace.Span) {
	tracer := otel.Tracer("fsm")
	ctx, span := tracer.Start(ctx, "fsm.dispatch")
	span.SetAttributes(
		attribute.String("machine", m.name),
		attribute.String("machine_id", m.id),
		attribute.String("state", state),
		attribute.String("command", command),
	)

	return ctx, span
}

// machineIdentity carries the span attributes shared by all dispatches of
// one machine instance.
type machineIdentity struct {
	name string
	id   string
}
