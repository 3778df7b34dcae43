package actor

import "context"

// Processor turns a request into exactly one response. Implementations run
// on the actor's worker goroutine, one message at a time, so they may own
// mutable state without synchronization.
type Processor[Request, Response any] interface {
	Process(ctx context.Context, req Request) Response
}

// ProcessorFunc adapts a plain function to the Processor interface.
type ProcessorFunc[Request, Response any] func(ctx context.Context, req Request) Response

func (f ProcessorFunc[Request, Response]) Process(ctx context.Context, req Request) Response { //nolint:ireturn
	return f(ctx, req)
}
