package fsm

import "fmt"

// Response is the outcome of dispatching exactly one command. It is always
// one of two concrete types: Status (the transition was applied) or
// InvalidTransition (the command is not declared for the current state).
// The set is closed; external packages cannot add variants.
type Response interface {
	fmt.Stringer

	// OK reports whether the command was accepted.
	OK() bool

	sealedResponse()
}

// Status reports a successful transition and names the state the machine
// is now in.
type Status struct {
	State string
}

func (s Status) OK() bool {
	return true
}

func (s Status) String() string {
	return fmt.Sprintf("Status{state: %s}", s.State)
}

func (s Status) sealedResponse() {}

// InvalidTransition reports a rejected command. The machine's state and
// business data are unchanged; CurrentState names the state the machine was
// (and still is) in, and AttemptedCommand renders the offending command.
type InvalidTransition struct {
	CurrentState     string
	AttemptedCommand string
}

func (i InvalidTransition) OK() bool {
	return false
}

func (i InvalidTransition) String() string {
	return fmt.Sprintf("InvalidTransition{current_state: %s, attempted_command: %s}",
		i.CurrentState, i.AttemptedCommand)
}

func (i InvalidTransition) sealedResponse() {}
