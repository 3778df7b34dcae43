package shutdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Note: no t.Parallel() in this file, the package manages global state.

//nolint:paralleltest
func TestShutdownRunsHooksInOrder(t *testing.T) {
	var order []int

	BeforeShutdown(func() { order = append(order, 1) })
	BeforeShutdown(func() { order = append(order, 2) })

	Shutdown()

	assert.Equal(t, []int{1, 2}, order)
}

//nolint:paralleltest
func TestShutdownIsIdempotent(t *testing.T) {
	calls := 0

	BeforeShutdown(func() { calls++ })

	Shutdown()
	Shutdown()

	assert.Equal(t, 1, calls, "hooks must run at most once")
}
