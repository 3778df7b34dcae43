// Package shutdown coordinates orderly process termination: components
// register hooks that must run before exit, and a signal handler (or an
// explicit Shutdown call) triggers them exactly once.
package shutdown

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var (
	mut     sync.Mutex     //nolint:gochecknoglobals
	hooks   []func()       //nolint:gochecknoglobals
	channel chan os.Signal //nolint:gochecknoglobals
)

// BeforeShutdown registers a function to be called before the shutdown
// process begins. The top-level context will still be alive at this point,
// so you can use it to clean up resources if needed. Hooks run in
// registration order.
func BeforeShutdown(h func()) {
	mut.Lock()
	defer mut.Unlock()

	hooks = append(hooks, h)
}

// Shutdown triggers the shutdown process. Usually the shutdown is kicked
// off by a signal handler, but this function can be used to trigger it
// programmatically. Without a handler set up, it runs the hooks directly.
func Shutdown() {
	mut.Lock()
	ch := channel
	mut.Unlock()

	if ch != nil {
		ch <- os.Interrupt

		return
	}

	cleanup()
}

// SetupHandler sets up a signal handler for SIGINT and SIGTERM and returns
// a context that will be canceled when a signal is received. You can use
// this context to clean up resources before the process exits.
func SetupHandler() context.Context {
	mut.Lock()
	channel = make(chan os.Signal, 1)
	ch := channel
	mut.Unlock()

	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		for c := range ch {
			slog.Warn("Received " + c.String() + ", shutting down...")
			close(ch)

			mut.Lock()
			channel = nil
			mut.Unlock()

			cleanup()
			cancel()
		}
	}()

	return ctx
}

// cleanup runs and clears the registered hooks.
func cleanup() {
	mut.Lock()
	defer mut.Unlock()

	for _, h := range hooks {
		h()
	}

	hooks = nil
}
