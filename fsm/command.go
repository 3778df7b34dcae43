package fsm

import "fmt"

// Command is one of the closed set of inputs a machine definition declares.
// Implementations are expected to be immutable value types; any parameters
// they carry (a spin speed, a feed rate) are read by the table's mutations.
type Command interface {
	// CommandName returns the name under which the command appears in the
	// transition table, without parameters.
	CommandName() string
}

// commandString renders a command for rejection reports and logs. Commands
// that implement fmt.Stringer get their full rendering, parameters
// included (e.g. "Feed(200)"); anything else falls back to the bare name.
func commandString(cmd Command) string {
	if cmd == nil {
		return "<nil>"
	}

	if s, ok := cmd.(fmt.Stringer); ok {
		return s.String()
	}

	return cmd.CommandName()
}

// commandName is the nil-safe lookup key for a command.
func commandName(cmd Command) string {
	if cmd == nil {
		return ""
	}

	return cmd.CommandName()
}
