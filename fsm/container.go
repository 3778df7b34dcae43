package fsm

// Container pairs business data with the state tag that owns it. Data is
// only reachable through a container, and every dispatch consumes its input
// container and hands back a replacement, so at most one live container
// exists per machine at any time. A consumed container is spent; applying a
// command to it again is a programming error, not a rejected transition.
type Container[D any] struct {
	state string
	data  *D
	spent bool
}

// NewContainer creates a live container in the table's initial state owning
// a private copy of the given data.
func NewContainer[D any](t *Table[D], data D) *Container[D] {
	return &Container[D]{
		state: t.initial,
		data:  &data,
	}
}

// State returns the state tag currently owning the data.
func (c *Container[D]) State() string {
	return c.state
}

// Snapshot returns a copy of the business data. The container keeps
// exclusive ownership of the original.
func (c *Container[D]) Snapshot() D {
	return *c.data
}

// Spent reports whether this container has already been consumed by a
// dispatch.
func (c *Container[D]) Spent() bool {
	return c.spent
}

// Apply dispatches one command against the container under the given table.
// The input container is consumed either way; the returned container is the
// live successor. An accepted command runs its mutation and moves to the
// declared destination. Anything else, including a nil or unknown command,
// is a rejection: the successor keeps the same state, the data is untouched,
// and the response names the state and the offending command.
//
// The only error is ErrContainerSpent, for a container that was already
// consumed. Dispatch itself is total and never fails.
func Apply[D any](t *Table[D], c *Container[D], cmd Command) (*Container[D], Response, error) {
	if c.spent {
		return nil, nil, ErrContainerSpent
	}

	c.spent = true

	tr, ok := t.lookup(c.state, cmd)
	if !ok {
		next := &Container[D]{state: c.state, data: c.data}

		return next, InvalidTransition{
			CurrentState:     c.state,
			AttemptedCommand: commandString(cmd),
		}, nil
	}

	if tr.mutate != nil {
		tr.mutate(c.data, cmd)
	}

	next := &Container[D]{state: tr.to, data: c.data}

	return next, Status{State: tr.to}, nil
}
