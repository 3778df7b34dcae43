package channels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_UnbufferedChannel(t *testing.T) {
	t.Parallel()

	input, output, lenFunc := Create[int](0)

	assert.Equal(t, 0, lenFunc())

	go func() {
		input <- 42
	}()

	val := <-output
	assert.Equal(t, 42, val)
	assert.Equal(t, 0, lenFunc())
}

func TestCreate_BufferedChannel(t *testing.T) {
	t.Parallel()

	input, output, lenFunc := Create[string](3)

	input <- "a"
	input <- "b"

	assert.Equal(t, 2, lenFunc())

	assert.Equal(t, "a", <-output)
	assert.Equal(t, "b", <-output)
	assert.Equal(t, 0, lenFunc())
}

func TestCreate_UnboundedNeverBlocksSender(t *testing.T) {
	t.Parallel()

	input, output, _ := Create[int](Unbounded)

	// Far more values than any reasonable buffer; the sender must not block.
	const n = 10_000

	for i := range n {
		input <- i
	}

	close(input)

	for i := range n {
		require.Equal(t, i, <-output)
	}

	_, ok := <-output
	assert.False(t, ok, "output should close once drained")
}

func TestCreate_UnboundedDepth(t *testing.T) {
	t.Parallel()

	input, output, lenFunc := Create[int](Unbounded)

	for i := range 5 {
		input <- i
	}

	// The shuttle goroutine needs a moment to enqueue.
	assert.Eventually(t, func() bool {
		return lenFunc() >= 4
	}, time.Second, time.Millisecond)

	for i := range 5 {
		assert.Equal(t, i, <-output)
	}

	assert.Eventually(t, func() bool {
		return lenFunc() == 0
	}, time.Second, time.Millisecond)

	close(input)
}

func TestCreate_CloseDeliversQueuedValues(t *testing.T) {
	t.Parallel()

	input, output, _ := Create[int](Unbounded)

	input <- 1
	input <- 2
	close(input)

	assert.Equal(t, 1, <-output)
	assert.Equal(t, 2, <-output)

	_, ok := <-output
	assert.False(t, ok)
}

func TestInfiniteChan_Ordering(t *testing.T) {
	t.Parallel()

	input, output := InfiniteChan[string]()

	input <- "first"
	input <- "second"
	input <- "third"
	close(input)

	var got []string
	for v := range output {
		got = append(got, v)
	}

	assert.Equal(t, []string{"first", "second", "third"}, got)
}

func TestCloseChannelIgnorePanic(t *testing.T) {
	t.Parallel()

	ch := make(chan int)

	assert.NotPanics(t, func() {
		CloseChannelIgnorePanic(chan<- int(ch))
		CloseChannelIgnorePanic(chan<- int(ch)) // already closed
	})

	assert.NotPanics(t, func() {
		CloseChannelIgnorePanic[int](nil)
	})
}
