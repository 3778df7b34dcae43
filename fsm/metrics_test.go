package fsm

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Note: Cannot use t.Parallel() because these tests reset global Prometheus
// metric state.
//
//nolint:paralleltest // Test modifies global Prometheus metric state
func TestMetrics_AcceptedTransition(t *testing.T) {
	transitionsTotal.Reset()
	dispatchDuration.Reset()

	machine := NewMachine(newDoorTable(t), doorData{}, WithLogger[doorData](nil))
	machine.Handle(context.Background(), pressCmd{})

	accepted := testutil.ToFloat64(transitionsTotal.WithLabelValues("door", "Closed", "Open", "Press"))
	assert.InDelta(t, 1.0, accepted, 0)

	require.Equal(t, 1, testutil.CollectAndCount(dispatchDuration))
}

//nolint:paralleltest // Test modifies global Prometheus metric state
func TestMetrics_RejectedCommand(t *testing.T) {
	rejectionsTotal.Reset()

	machine := NewMachine(newDoorTable(t), doorData{}, WithLogger[doorData](nil))
	machine.Handle(context.Background(), tripCmd{})

	rejected := testutil.ToFloat64(rejectionsTotal.WithLabelValues("door", "Closed", "Trip"))
	assert.InDelta(t, 1.0, rejected, 0)
}

//nolint:paralleltest // Test modifies global Prometheus metric state
func TestMetrics_NilCommandLabel(t *testing.T) {
	rejectionsTotal.Reset()

	machine := NewMachine(newDoorTable(t), doorData{}, WithLogger[doorData](nil))
	machine.Handle(context.Background(), nil)

	rejected := testutil.ToFloat64(rejectionsTotal.WithLabelValues("door", "Closed", "unknown"))
	assert.InDelta(t, 1.0, rejected, 0)
}

func TestSanitizeCommand(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unknown", sanitizeCommand(""))
	assert.Equal(t, "Press", sanitizeCommand("Press"))
}
