package fsm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTestTracer installs an in-memory exporter as the global tracer
// provider for the duration of a test.
func setupTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)

	oldProvider := otel.GetTracerProvider()

	otel.SetTracerProvider(tp)

	t.Cleanup(func() {
		otel.SetTracerProvider(oldProvider)
	})

	return exporter
}

// Note: Cannot use t.Parallel() because setupTestTracer modifies the global
// OTEL tracer provider.
//
//nolint:paralleltest // Test modifies global OTEL tracer provider
func TestDispatchSpan(t *testing.T) {
	exporter := setupTestTracer(t)

	machine := NewMachine(newDoorTable(t), doorData{}, WithLogger[doorData](nil))
	machine.Handle(context.Background(), pressCmd{})

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	span := spans[0]
	assert.Equal(t, "fsm.dispatch", span.Name)

	attrs := make(map[string]any)
	for _, attr := range span.Attributes {
		attrs[string(attr.Key)] = attr.Value.AsInterface()
	}

	assert.Equal(t, "door", attrs["machine"])
	assert.Equal(t, machine.ID(), attrs["machine_id"])
	assert.Equal(t, "Closed", attrs["state"])
	assert.Equal(t, "Press", attrs["command"])
}

//nolint:paralleltest // Test modifies global OTEL tracer provider
func TestDispatchSpan_OnePerDispatch(t *testing.T) {
	exporter := setupTestTracer(t)

	machine := NewMachine(newDoorTable(t), doorData{}, WithLogger[doorData](nil))

	machine.Handle(context.Background(), pressCmd{})
	machine.Handle(context.Background(), tripCmd{})
	machine.Handle(context.Background(), pressCmd{})

	assert.Len(t, exporter.GetSpans(), 3)
}
