package fsm

import "errors"

// Table construction errors. Build fails fast on a bad definition instead
// of letting an ambiguous or incomplete table reach a running machine.
var (
	// ErrTableNameRequired indicates that a table name is required.
	ErrTableNameRequired = errors.New("table name is required")
	// ErrInitialStateRequired indicates that an initial state is required.
	ErrInitialStateRequired = errors.New("initial state is required")
	// ErrInitialStateNotDeclared indicates that the initial state is not in the declared state set.
	ErrInitialStateNotDeclared = errors.New("initial state is not declared")
	// ErrNoStates indicates that at least one state is required.
	ErrNoStates = errors.New("at least one state is required")
	// ErrStateNameRequired indicates that a state name is required.
	ErrStateNameRequired = errors.New("state name is required")
	// ErrStateNameReserved indicates that a state was declared with the wildcard name.
	ErrStateNameReserved = errors.New("state name is reserved")
	// ErrDuplicateState indicates that a state was declared twice.
	ErrDuplicateState = errors.New("duplicate state")
	// ErrTransitionFromRequired indicates that a transition source state is required.
	ErrTransitionFromRequired = errors.New("transition source state is required")
	// ErrTransitionCommandRequired indicates that a transition command is required.
	ErrTransitionCommandRequired = errors.New("transition command is required")
	// ErrTransitionToRequired indicates that a transition destination state is required.
	ErrTransitionToRequired = errors.New("transition destination state is required")
	// ErrUnknownFromState indicates that a transition names an undeclared source state.
	ErrUnknownFromState = errors.New("transition source state is not declared")
	// ErrUnknownToState indicates that a transition names an undeclared destination state.
	ErrUnknownToState = errors.New("transition destination state is not declared")
	// ErrDuplicateTransition indicates that a state declares two entries for the same command.
	ErrDuplicateTransition = errors.New("duplicate transition for state and command")
)

// Definition / registry errors.
var (
	// ErrUnknownMutation indicates that a definition references a mutation
	// name that was never registered.
	ErrUnknownMutation = errors.New("unknown mutation")
	// ErrDuplicateMutation indicates that a mutation name was registered twice.
	ErrDuplicateMutation = errors.New("duplicate mutation")
	// ErrMutationNameRequired indicates that a mutation must be registered under a non-empty name.
	ErrMutationNameRequired = errors.New("mutation name is required")
)

// Runtime errors.
var (
	// ErrContainerSpent indicates that a state container was used after a
	// transition already consumed it. A container can be applied at most
	// once; the transition returns its replacement.
	ErrContainerSpent = errors.New("state container already consumed")
	// ErrMachineStopped is returned by Submit once the machine's worker
	// has terminated (or has been told to stop accepting commands).
	ErrMachineStopped = errors.New("machine is stopped")
	// ErrWorkerFailed is returned by Shutdown when the worker terminated
	// abnormally instead of exiting its loop.
	ErrWorkerFailed = errors.New("machine worker failed")
	// ErrStillRunning is returned by FinalState and FinalData while the
	// worker has not yet been shut down.
	ErrStillRunning = errors.New("machine is still running")
)
