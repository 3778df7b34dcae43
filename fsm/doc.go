// Package fsm is a generic finite-state-machine actor framework. A machine
// definition is a declarative transition table: for each state, the
// commands it accepts, the mutation each command applies to the business
// data, and the destination state. The table is compiled once (with
// build-time validation) into per-state dispatch maps.
//
// At runtime a Machine holds the single live state container for one
// machine instance and dispatches commands against it: a declared
// (state, command) pair mutates the data and re-tags the container, and
// anything else is rejected without touching either. Dispatch is total; it
// never panics and never produces an undeclared state.
//
// A Controller runs a Machine on a dedicated worker goroutine and gives
// callers an asynchronous interface: Submit enqueues commands, Poll drains
// responses in submission order, and Shutdown drains in-flight work and
// joins the worker. Concrete machines (a lathe, a mill) are thin
// declarations on top of this engine; see the fsmtest subpackage for two
// complete examples.
package fsm
