package fsm

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/amp-labs/amp-machines/actor"
	"github.com/amp-labs/amp-machines/logger"
	"github.com/amp-labs/amp-machines/shutdown"
)

// Controller runs a machine on its own worker goroutine and hands out a
// concurrency-safe handle to it. Commands are submitted into a FIFO mailbox
// and dispatched strictly in submission order; every fire-and-forget command
// yields exactly one response in the outbox, in the same order.
//
// Shutdown stops intake, drains already-queued commands, and joins the
// worker. A controller that is garbage collected without an explicit
// Shutdown stops its worker automatically, but relying on that forfeits the
// join error; call Shutdown.
type Controller[D any] struct {
	machine *Machine[D]
	ref     *actor.Ref[Command, Response]
	cleanup runtime.Cleanup
}

// controllerConfig holds start-time options.
type controllerConfig[D any] struct {
	name         string
	machineOpts  []MachineOption[D]
	joinOnSignal bool
}

// ControllerOption configures a Controller at start.
type ControllerOption[D any] func(*controllerConfig[D])

// WithName overrides the worker name used in logs and metrics. It defaults
// to the table name.
func WithName[D any](name string) ControllerOption[D] {
	return func(c *controllerConfig[D]) {
		c.name = name
	}
}

// WithMachineOptions forwards options to the underlying machine.
func WithMachineOptions[D any](opts ...MachineOption[D]) ControllerOption[D] {
	return func(c *controllerConfig[D]) {
		c.machineOpts = append(c.machineOpts, opts...)
	}
}

// WithShutdownHook registers the controller with the process shutdown
// sequence, so a SIGINT/SIGTERM (or an explicit shutdown.Shutdown call)
// drains queued commands and joins the worker before the process exits.
func WithShutdownHook[D any]() ControllerOption[D] {
	return func(c *controllerConfig[D]) {
		c.joinOnSignal = true
	}
}

// StartController creates a machine in the table's initial state with the
// given data and starts its worker. The worker runs until the context is
// canceled or Shutdown is called; either way it drains queued commands
// before exiting.
func StartController[D any](
	ctx context.Context,
	table *Table[D],
	data D,
	opts ...ControllerOption[D],
) *Controller[D] {
	cfg := controllerConfig[D]{
		name: table.Name(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	machine := NewMachine(table, data, cfg.machineOpts...)

	worker := actor.New(func(*actor.Ref[Command, Response]) actor.Processor[Command, Response] {
		return actor.ProcessorFunc[Command, Response](machine.Handle)
	})

	controller := &Controller[D]{
		machine: machine,
		ref:     worker.Run(ctx, cfg.name),
	}

	// A dropped controller must not leak its worker goroutine.
	controller.cleanup = runtime.AddCleanup(controller, stopWorker, controller.ref)

	if cfg.joinOnSignal {
		ref := controller.ref

		shutdown.BeforeShutdown(func() {
			ref.Stop()

			if err := ref.Wait(); err != nil {
				logger.Get(ctx).Error("machine worker failed during shutdown",
					"machine", ref.Name(), "error", err)
			}
		})
	}

	return controller
}

// stopWorker is the garbage-collection fallback for controllers dropped
// without Shutdown.
func stopWorker(ref *actor.Ref[Command, Response]) {
	ref.Stop()
}

// Name returns the worker name.
func (c *Controller[D]) Name() string {
	return c.ref.Name()
}

// MachineID returns the unique id of the underlying machine instance.
func (c *Controller[D]) MachineID() string {
	return c.machine.ID()
}

// Alive returns true while the controller still accepts commands.
func (c *Controller[D]) Alive() bool {
	return c.ref.Alive()
}

// Pending reports how many commands are queued but not yet dispatched.
func (c *Controller[D]) Pending() int {
	return c.ref.InboxDepth()
}

// Submit queues a command for dispatch. Its response will appear in the
// outbox in submission order. Submit never blocks on the worker; it fails
// with ErrMachineStopped once shutdown has begun.
func (c *Controller[D]) Submit(ctx context.Context, cmd Command) error {
	return mapWorkerErr(c.ref.Send(ctx, cmd))
}

// Do dispatches a command and blocks until its response is available or the
// context is canceled. The response is delivered directly and does not
// appear in the outbox; it still takes its FIFO turn behind previously
// submitted commands.
func (c *Controller[D]) Do(ctx context.Context, cmd Command) (Response, error) {
	rsp, err := c.ref.Call(ctx, cmd)
	if err != nil {
		return nil, mapWorkerErr(err)
	}

	return rsp, nil
}

// Poll drains and returns all responses currently queued in the outbox,
// preserving submission order. It never blocks and remains usable after
// shutdown until the outbox is exhausted.
func (c *Controller[D]) Poll() []Response {
	return c.ref.Poll()
}

// PollWait blocks until at least one response is available, then drains the
// outbox like Poll. It fails with ErrMachineStopped once the worker has
// exited and no responses remain.
func (c *Controller[D]) PollWait(ctx context.Context) ([]Response, error) {
	responses, err := c.ref.PollWait(ctx)
	if err != nil {
		return nil, mapWorkerErr(err)
	}

	return responses, nil
}

// Shutdown stops intake, waits for queued commands to be dispatched, and
// joins the worker. It returns nil for an orderly shutdown and a
// ErrWorkerFailed-wrapped cause if the worker died abnormally. Calling
// Shutdown more than once is safe; later calls just join again.
func (c *Controller[D]) Shutdown() error {
	c.cleanup.Stop()
	c.ref.Stop()

	return mapWorkerErr(c.ref.Wait())
}

// FinalState returns the state the machine ended in. It fails with
// ErrStillRunning until the worker has exited.
func (c *Controller[D]) FinalState() (string, error) {
	if c.ref.Phase() != actor.PhaseStopped {
		return "", ErrStillRunning
	}

	return c.machine.State(), nil
}

// FinalData returns a copy of the business data the machine ended with. It
// fails with ErrStillRunning until the worker has exited.
func (c *Controller[D]) FinalData() (D, error) {
	if c.ref.Phase() != actor.PhaseStopped {
		var zero D

		return zero, ErrStillRunning
	}

	return c.machine.Data(), nil
}

// mapWorkerErr translates actor lifecycle errors into the controller's
// error vocabulary.
func mapWorkerErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, actor.ErrActorPanic):
		return fmt.Errorf("%w: %w", ErrWorkerFailed, err)
	case errors.Is(err, actor.ErrDeadActor):
		return ErrMachineStopped
	default:
		return err
	}
}
