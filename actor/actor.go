// Package actor provides a single-goroutine mailbox worker. Each actor owns
// a FIFO inbox of requests and a FIFO outbox of responses: requests are
// processed strictly in submission order, and every fire-and-forget request
// yields exactly one response in the outbox, in the same order.
//
// The worker moves through three phases. While Running it waits (with a
// periodic housekeeping tick) for requests; after Stop it Drains whatever is
// already queued; once the inbox is exhausted it is Stopped and the
// goroutine exits. A panic in the processor is contained, terminates the
// worker, and is surfaced to whoever joins it via Wait.
package actor

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/atomic"

	"github.com/amp-labs/amp-machines/channels"
	"github.com/amp-labs/amp-machines/logger"
	"github.com/amp-labs/amp-machines/try"
)

const (
	// defaultHousekeepingInterval bounds how long the worker sleeps between
	// depth-gauge updates while the inbox is idle.
	defaultHousekeepingInterval = 10 * time.Second
	// replyReturnTimeout is the maximum time to wait when returning panic
	// errors to callers.
	replyReturnTimeout = 5 * time.Second
)

var (
	// ErrDeadActor is returned when attempting to submit to an actor whose
	// inbox has been closed.
	ErrDeadActor = errors.New("actor is dead")
	// ErrActorPanic is returned by Wait when the worker terminated because
	// its processor panicked.
	ErrActorPanic = errors.New("panic in actor")
)

// Phase describes where the worker is in its lifecycle.
type Phase int32

const (
	// PhaseRunning means the worker is accepting and processing requests.
	PhaseRunning Phase = iota
	// PhaseDraining means the inbox no longer accepts requests, but
	// already-queued requests are still being processed.
	PhaseDraining
	// PhaseStopped means the worker goroutine has exited. Responses still
	// queued in the outbox remain available via Poll.
	PhaseStopped
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseDraining:
		return "draining"
	case PhaseStopped:
		return "stopped"
	default:
		return fmt.Sprintf("phase(%d)", int32(p))
	}
}

// envConfig holds the env-driven tunables of the actor runtime.
type envConfig struct {
	HousekeepingInterval time.Duration `env:"ACTOR_HOUSEKEEPING_INTERVAL" envDefault:"10s"`
}

// housekeepingInterval reads the configured housekeeping interval once.
var housekeepingInterval = sync.OnceValue(func() time.Duration { //nolint:gochecknoglobals
	var cfg envConfig

	err := env.Parse(&cfg)
	if err != nil || cfg.HousekeepingInterval <= 0 {
		return defaultHousekeepingInterval
	}

	return cfg.HousekeepingInterval
})

// Actor is a concurrent entity that processes requests of type Request and
// produces responses of type Response. Actors are created with New and
// started with Run.
type Actor[Request, Response any] struct {
	factory func(ref *Ref[Request, Response]) Processor[Request, Response]
}

// New creates a new Actor with the given processor factory function.
// The factory is called when the actor is started via Run, receiving a
// reference to the actor which can be used to interact with it.
func New[Request, Response any](
	processorFactory func(ref *Ref[Request, Response]) Processor[Request, Response],
) *Actor[Request, Response] {
	return &Actor[Request, Response]{
		factory: processorFactory,
	}
}

// getPanicErr wraps a panic value into an error, preserving the original error if possible.
func getPanicErr(name string, err any) error {
	if e, ok := err.(error); ok {
		return fmt.Errorf("%w %s: %w", ErrActorPanic, name, e)
	}

	return fmt.Errorf("%w %s: %v", ErrActorPanic, name, err)
}

// informCallerOfPanic attempts to send a panic error to a message's reply
// channel if one exists. It uses a timeout to avoid blocking indefinitely if
// the caller has stopped listening.
func informCallerOfPanic[Request, Response any](
	ctx context.Context,
	name string,
	msg Message[Request, Response],
	err any,
) {
	if msg.ReplyChan == nil {
		return
	}

	timer := time.NewTimer(replyReturnTimeout)

	defer func() {
		// Ignore this panic, it means that the channel was closed,
		// which is perfectly understandable and valid. No need to
		// take further action.
		_ = recover()

		timer.Stop()
	}()

	rsp := try.Failure[Response](getPanicErr(name, err))

	select {
	case <-ctx.Done():
	case msg.ReplyChan <- rsp: // might panic
	case <-timer.C:
	}

	channels.CloseChannelIgnorePanic(msg.ReplyChan)
}

// runMessage executes the processor for one message and routes the response.
// A panic in the processor is recovered, reported to the caller if there is
// a reply channel, and returned as an error so the loop can terminate.
func (a *Actor[Request, Response]) runMessage(
	ctx context.Context,
	proc Processor[Request, Response],
	msg Message[Request, Response],
	ref *Ref[Request, Response],
) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			log := logger.Get(ctx)
			subsystem := logger.GetSubsystem(ctx)

			actorPanic.WithLabelValues(subsystem, ref.name).Inc()

			log.Error("actor terminated by panic",
				"actor", ref.name,
				"request", msg.Request,
				"error", rec,
				"stack", string(debug.Stack()))

			informCallerOfPanic(ctx, ref.name, msg, rec)

			err = getPanicErr(ref.name, rec)
		}
	}()

	rsp := proc.Process(ctx, msg.Request)

	if msg.ReplyChan != nil {
		// The caller asked for a direct reply; the outbox is bypassed.
		msg.ReplyChan <- try.Success(rsp)
		close(msg.ReplyChan)

		return nil
	}

	// The outbox is unbounded, so this never blocks. It panics only if the
	// consumer side has been torn down entirely, which the recover above
	// maps to orderly termination.
	ref.outboxWrite <- rsp

	return nil
}

// failPending closes the inbox and fails every queued message that expects a
// direct reply. It is called when the worker dies with queued work left.
func failPending[Request, Response any](ref *Ref[Request, Response], cause error) {
	channels.CloseChannelIgnorePanic(ref.inboxWrite)

	for msg := range ref.inboxRead {
		if msg.ReplyChan == nil {
			continue
		}

		select {
		case msg.ReplyChan <- try.Failure[Response](cause):
		default:
			// Caller gave up or handed us an unbuffered channel; the
			// close below still wakes it.
		}

		channels.CloseChannelIgnorePanic(msg.ReplyChan)
	}
}

// Run starts the actor and returns a reference that can be used to interact
// with it. The name parameter is used for logging and metrics. Both
// mailboxes are unbounded, so submissions and responses never block the
// worker. The actor runs until the context is canceled or Stop is called on
// the returned reference, and then drains its inbox before exiting.
func (a *Actor[Request, Response]) Run(ctx context.Context, name string) *Ref[Request, Response] {
	inW, inR, inDepth := channels.Create[Message[Request, Response]](channels.Unbounded)
	outW, outR, outDepth := channels.Create[Response](channels.Unbounded)

	ref := &Ref[Request, Response]{
		name:        name,
		inboxWrite:  inW,
		inboxRead:   inR,
		outboxWrite: outW,
		outboxRead:  outR,
		inboxDepth:  inDepth,
		outboxDepth: outDepth,
		phase:       atomic.NewInt32(int32(PhaseRunning)),
		inboxClosed: atomic.NewBool(false),
	}

	ref.wg.Add(1)

	proc := a.factory(ref)

	subsystem := logger.GetSubsystem(ctx)

	processedMessages.WithLabelValues(subsystem, name).Add(0)
	actorPanic.WithLabelValues(subsystem, name).Add(0)
	aliveActors.WithLabelValues(subsystem, name).Inc()

	go func() {
		ticker := time.NewTicker(housekeepingInterval())

		actorStarted.Inc()

		defer ref.wg.Done()
		defer ticker.Stop()
		defer func() {
			ref.phase.Store(int32(PhaseStopped))
			ref.inboxClosed.Store(true)

			// Reject any further submissions and let pollers observe
			// completion once the outbox is drained. Both may already
			// be closed; that is fine.
			channels.CloseChannelIgnorePanic(ref.inboxWrite)
			channels.CloseChannelIgnorePanic(ref.outboxWrite)

			aliveActors.WithLabelValues(subsystem, name).Dec()
			actorStopped.Inc()
		}()

		done := ctx.Done()

		for {
			select {
			case <-done:
				// The surrounding context is gone: stop accepting new
				// requests and drain whatever is already queued.
				ref.Stop()

				done = nil
			case <-ticker.C:
				inboxDepthGauge.WithLabelValues(subsystem, name).Set(float64(ref.inboxDepth()))
				outboxDepthGauge.WithLabelValues(subsystem, name).Set(float64(ref.outboxDepth()))
			case msg, ok := <-ref.inboxRead:
				if !ok {
					// Inbox closed and fully drained: terminal.
					return
				}

				start := time.Now()

				err := a.runMessage(ctx, proc, msg, ref)
				if err != nil {
					ref.joinErr = err

					failPending(ref, err)

					return
				}

				processedMessages.WithLabelValues(subsystem, name).Inc()
				processingTime.WithLabelValues(subsystem, name).Observe(time.Since(start).Seconds())
			}
		}
	}()

	return ref
}

// Ref is a reference to a running actor. It provides methods to submit
// requests, drain responses, and control the worker's lifecycle.
type Ref[Request, Response any] struct {
	wg          sync.WaitGroup
	name        string
	inboxWrite  chan<- Message[Request, Response]
	inboxRead   <-chan Message[Request, Response]
	outboxWrite chan<- Response
	outboxRead  <-chan Response
	inboxDepth  func() int
	outboxDepth func() int
	phase       *atomic.Int32
	inboxClosed *atomic.Bool
	// joinErr is written by the worker goroutine before it exits and read
	// after Wait; the WaitGroup provides the necessary ordering.
	joinErr error
}

// Name returns the actor's name.
func (r *Ref[Request, Response]) Name() string {
	return r.name
}

// Phase returns the worker's current lifecycle phase.
func (r *Ref[Request, Response]) Phase() Phase {
	return Phase(r.phase.Load())
}

// Alive returns true while the actor still accepts submissions.
func (r *Ref[Request, Response]) Alive() bool {
	return !r.inboxClosed.Load()
}

// InboxDepth reports how many requests are queued but not yet processed.
func (r *Ref[Request, Response]) InboxDepth() int {
	return r.inboxDepth()
}

// OutboxDepth reports how many responses are queued but not yet polled.
func (r *Ref[Request, Response]) OutboxDepth() int {
	return r.outboxDepth()
}

// Stop signals the actor to stop accepting new requests. Requests already
// queued are still processed (the Draining phase) before the worker exits.
// It is safe to call multiple times and from multiple goroutines.
func (r *Ref[Request, Response]) Stop() {
	if !r.inboxClosed.CompareAndSwap(false, true) {
		return
	}

	r.phase.CompareAndSwap(int32(PhaseRunning), int32(PhaseDraining))
	channels.CloseChannelIgnorePanic(r.inboxWrite)
}

// Wait blocks until the worker goroutine has exited. It returns nil for a
// normal exit, or the ErrActorPanic-wrapped cause if the worker died
// abnormally.
func (r *Ref[Request, Response]) Wait() error {
	r.wg.Wait()

	return r.joinErr
}

// submit sends a message to the actor's inbox, tracking submission metrics
// and respecting context cancellation.
func (r *Ref[Request, Response]) submit(ctx context.Context, msg Message[Request, Response]) (err error) {
	if r.inboxClosed.Load() {
		return ErrDeadActor
	}

	subsystem := logger.GetSubsystem(ctx)

	submitCount.WithLabelValues(subsystem, r.name).Inc()

	defer func() {
		// A concurrent Stop can close the inbox between the check above
		// and the send below; the resulting panic means the same thing.
		if rec := recover(); rec != nil {
			err = ErrDeadActor
		}
	}()

	begin := time.Now()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case r.inboxWrite <- msg: // might panic
	}

	submitTime.WithLabelValues(subsystem, r.name).Observe(time.Since(begin).Seconds())

	return nil
}

// Send submits a request whose response will be published to the outbox.
// It never blocks. It fails with ErrDeadActor once the actor has been
// stopped.
func (r *Ref[Request, Response]) Send(ctx context.Context, request Request) error {
	return r.submit(ctx, Message[Request, Response]{
		Request: request,
	})
}

// Call submits a request and blocks until its response is available or the
// context is canceled. The response is delivered directly and does not
// appear in the outbox.
func (r *Ref[Request, Response]) Call(ctx context.Context, request Request) (Response, error) { //nolint:ireturn
	var zero Response

	if r.inboxClosed.Load() {
		return zero, ErrDeadActor
	}

	replyChan := make(chan try.Try[Response], 1)

	err := r.submit(ctx, Message[Request, Response]{
		Request:   request,
		ReplyChan: replyChan,
	})
	if err != nil {
		return zero, err
	}

	start := time.Now()

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case val, ok := <-replyChan:
		if !ok {
			// The worker died before producing a reply.
			return zero, ErrDeadActor
		}

		receiveTime.WithLabelValues(logger.GetSubsystem(ctx), r.name).Observe(time.Since(start).Seconds())

		return val.Get()
	}
}

// Poll drains and returns all responses currently queued in the outbox,
// preserving submission order. It never blocks; an empty slice means no
// responses are ready yet (requests may still be in flight). Poll remains
// usable after the worker has stopped, until the outbox is exhausted.
func (r *Ref[Request, Response]) Poll() []Response {
	var responses []Response

	for {
		select {
		case rsp, ok := <-r.outboxRead:
			if !ok {
				return responses
			}

			responses = append(responses, rsp)
		default:
			return responses
		}
	}
}

// PollWait blocks until at least one response is available, then drains the
// outbox like Poll. It returns the context's error if it is canceled first,
// and ErrDeadActor if the worker has stopped and no responses remain.
func (r *Ref[Request, Response]) PollWait(ctx context.Context) ([]Response, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case rsp, ok := <-r.outboxRead:
		if !ok {
			return nil, ErrDeadActor
		}

		return append([]Response{rsp}, r.Poll()...), nil
	}
}
