// Package channels provides the mailbox plumbing used by actors: ordered
// channels with configurable buffering (including an unbounded mode), depth
// reporting, and panic-safe close helpers.
package channels

import "go.uber.org/atomic"

// Unbounded is the depth value that selects an unbounded mailbox.
// Any negative depth behaves the same way.
const Unbounded = -1

// Create builds a channel pair with the given depth and returns the write
// end, the read end, and a function reporting how many values are currently
// queued. A depth of zero creates an unbuffered channel, a positive depth a
// buffered one, and a negative depth (see Unbounded) a channel that never
// blocks the sender.
//
// Closing the write end is always the way to signal "no more values": the
// read end delivers everything already queued and then closes.
func Create[T any](depth int) (chan<- T, <-chan T, func() int) {
	if depth >= 0 {
		ch := make(chan T, depth)

		return ch, ch, func() int { return len(ch) }
	}

	return infiniteChan[T]()
}

// InfiniteChan creates a channel with infinite buffering.
// The send-only end never blocks; the receive-only end delivers values in
// the order they were sent.
//
// Note: use with caution, as it can lead to high memory usage if the sender
// outpaces the receiver. Prefer Create with Unbounded if you also need to
// monitor the queue depth.
func InfiniteChan[A any]() (chan<- A, <-chan A) {
	in, out, _ := infiniteChan[A]()

	return in, out
}

// infiniteChan is the shared implementation behind Create(Unbounded) and
// InfiniteChan. A goroutine shuttles values from the input channel through
// an internal queue to the output channel, tracking the queue depth.
func infiniteChan[A any]() (chan<- A, <-chan A, func() int) {
	inputCh := make(chan A)
	outputCh := make(chan A)
	depth := atomic.NewInt64(0)

	go func() {
		// Local copy so disabling the receive case below never races with
		// the caller holding the returned write end.
		in := inputCh

		var queue []A

		// outCh disables the send case while the queue is empty by
		// returning a nil channel.
		outCh := func() chan A {
			if len(queue) == 0 {
				return nil
			}

			return outputCh
		}

		// head returns the next value to send, or the zero value when
		// the send case is disabled anyway.
		head := func() A {
			if len(queue) == 0 {
				var zero A

				return zero
			}

			return queue[0]
		}

		// Run until the input is closed and the queue is drained.
		for len(queue) > 0 || in != nil {
			select {
			case v, ok := <-in:
				if !ok {
					// Input closed, disable this case.
					in = nil
				} else {
					queue = append(queue, v)
					depth.Inc()
				}
			case outCh() <- head():
				queue = queue[1:]
				depth.Dec()
			}
		}

		close(outputCh)
	}()

	return inputCh, outputCh, func() int { return int(depth.Load()) }
}

// CloseChannelIgnorePanic closes a channel like normal.
// However, if the channel has already been closed,
// it will suppress the resulting panic.
func CloseChannelIgnorePanic[T any](ch chan<- T) {
	if ch == nil {
		return
	}

	defer func() {
		// Recover from panic if the channel is already closed
		_ = recover()
	}()

	close(ch)
}
