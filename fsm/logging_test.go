package fsm

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/neilotoole/slogt"

	"github.com/amp-labs/amp-machines/logger"
)

// Note: Cannot use t.Parallel() because the test replaces the process-wide
// default logger.
//
//nolint:paralleltest // Test replaces the global default logger
func TestDefaultLogger_DispatchEvents(t *testing.T) {
	old := slog.Default()

	slog.SetDefault(slogt.New(t))
	t.Cleanup(func() {
		slog.SetDefault(old)
	})

	log := NewDefaultLogger()
	ctx := logger.WithMachineId(context.Background(), "machine-1")

	log.TransitionApplied(ctx, "Closed", "Open", "Press", time.Millisecond)
	log.TransitionRejected(ctx, "Open", "Lock")
}

//nolint:paralleltest // Test replaces the global default logger
func TestMachine_DispatchGoesThroughConfiguredLogger(t *testing.T) {
	old := slog.Default()

	slog.SetDefault(slogt.New(t))
	t.Cleanup(func() {
		slog.SetDefault(old)
	})

	machine := NewMachine(newDoorTable(t), doorData{})

	machine.Handle(context.Background(), pressCmd{})
	machine.Handle(context.Background(), lockCmd{})
}

func TestWithLogger_NilDisablesDispatchLogging(t *testing.T) {
	t.Parallel()

	machine := NewMachine(newDoorTable(t), doorData{}, WithLogger[doorData](nil))

	if _, ok := machine.logger.(nopLogger); !ok {
		t.Fatalf("expected nopLogger, got %T", machine.logger)
	}
}
