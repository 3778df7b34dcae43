package fsm

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"

	"github.com/amp-labs/amp-machines/logger"
)

// Machine is the runtime wrapper around a compiled table and the single live
// container for one machine instance. Dispatch is total: every command in
// every state yields a response, never an error and never a panic from the
// dispatch machinery itself. A mutation that panics is user code failing and
// propagates to the caller.
//
// A Machine is safe for concurrent use; dispatches are serialized.
type Machine[D any] struct {
	mutex     sync.Mutex
	table     *Table[D]
	container *Container[D]
	identity  machineIdentity
	logger    Logger
}

// MachineOption configures a Machine.
type MachineOption[D any] func(*Machine[D])

// WithLogger sets the dispatch logger. Passing nil disables dispatch logging.
func WithLogger[D any](log Logger) MachineOption[D] {
	return func(m *Machine[D]) {
		if log == nil {
			log = nopLogger{}
		}

		m.logger = log
	}
}

// NewMachine creates a machine instance in the table's initial state owning
// a private copy of the given data.
func NewMachine[D any](table *Table[D], data D, opts ...MachineOption[D]) *Machine[D] {
	machine := &Machine[D]{
		table:     table,
		container: NewContainer(table, data),
		identity: machineIdentity{
			name: table.Name(),
			id:   uuid.NewString(),
		},
		logger: NewDefaultLogger(),
	}

	for _, opt := range opts {
		opt(machine)
	}

	return machine
}

// Name returns the machine definition's name.
func (m *Machine[D]) Name() string {
	return m.identity.name
}

// ID returns the unique id of this machine instance.
func (m *Machine[D]) ID() string {
	return m.identity.id
}

// State returns the current state.
func (m *Machine[D]) State() string {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.container.State()
}

// Data returns a copy of the current business data.
func (m *Machine[D]) Data() D {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.container.Snapshot()
}

// Can reports whether the given command is accepted in the current state.
func (m *Machine[D]) Can(command string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	_, ok := m.table.states[m.container.State()][command]

	return ok
}

// Handle dispatches one command. An accepted command mutates the data, moves
// to the declared destination, and reports the new state. Anything else is
// rejected with the current state and the offending command; the machine is
// unchanged. Rejection is an answer, not an error.
func (m *Machine[D]) Handle(ctx context.Context, cmd Command) Response {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	ctx = logger.WithMachineId(ctx, m.identity.id)

	from := m.container.State()
	command := commandString(cmd)

	ctx, span := startDispatchSpan(ctx, &m.identity, from, command)
	defer span.End()

	start := time.Now()

	next, rsp, err := Apply(m.table, m.container, cmd)
	if err != nil {
		// Unreachable: the machine replaces its container on every dispatch.
		panic(err)
	}

	m.container = next
	elapsed := time.Since(start)

	if rsp.OK() {
		span.SetStatus(codes.Ok, "applied")
		m.logger.TransitionApplied(ctx, from, next.State(), command, elapsed)
		transitionsTotal.WithLabelValues(
			m.identity.name,
			from,
			next.State(),
			sanitizeCommand(commandName(cmd)),
		).Inc()
		dispatchDuration.WithLabelValues(m.identity.name, outcomeApplied).Observe(elapsed.Seconds())
	} else {
		span.SetStatus(codes.Ok, "rejected")
		m.logger.TransitionRejected(ctx, from, command)
		rejectionsTotal.WithLabelValues(
			m.identity.name,
			from,
			sanitizeCommand(commandName(cmd)),
		).Inc()
		dispatchDuration.WithLabelValues(m.identity.name, outcomeRejected).Observe(elapsed.Seconds())
	}

	return rsp
}
