package actor

import "github.com/amp-labs/amp-machines/try"

// Message represents a message sent to an actor.
// By default the response produced for a message is published to the actor's
// outbox, preserving submission order. If ReplyChan is set, the response is
// delivered there instead and never reaches the outbox.
type Message[Request, Response any] struct {
	// Request is the data to be processed by the actor.
	Request Request
	// ReplyChan, when non-nil, receives the response for this message
	// directly. The channel must be buffered (capacity >= 1) so a slow
	// caller can never stall the worker; it is closed after the reply
	// (or the failure) has been delivered.
	ReplyChan chan try.Try[Response]
}
