// Package fsmtest provides complete example machine definitions used across
// the test suites: a lathe and a mill. They double as reference material for
// declaring machines on top of the fsm package.
package fsmtest

import (
	"fmt"

	"github.com/amp-labs/amp-machines/fsm"
)

// Lathe states.
const (
	LatheOff      = "Off"
	LatheSpinning = "Spinning"
	LatheFeeding  = "Feeding"
	LatheNotaus   = "Notaus"
)

// Lathe command names as they appear in the transition table.
const (
	CmdStartSpinning = "StartSpinning"
	CmdStopSpinning  = "StopSpinning"
	CmdFeed          = "Feed"
	CmdStopFeed      = "StopFeed"
	CmdNotaus        = "Notaus"
	CmdAcknowledge   = "Acknowledge"
)

// LatheData is the lathe's business data: spindle speed and feed rate.
type LatheData struct {
	Revs uint32
	Feed uint32
}

// StartSpinning starts the spindle at the given speed. Shared by the lathe
// and the mill.
type StartSpinning struct {
	Revs uint32
}

func (StartSpinning) CommandName() string {
	return CmdStartSpinning
}

func (c StartSpinning) String() string {
	return fmt.Sprintf("StartSpinning(%d)", c.Revs)
}

// StopSpinning stops the spindle. Shared by the lathe and the mill.
type StopSpinning struct{}

func (StopSpinning) CommandName() string {
	return CmdStopSpinning
}

func (StopSpinning) String() string {
	return CmdStopSpinning
}

// Feed engages the lathe's feed at the given rate.
type Feed struct {
	Rate uint32
}

func (Feed) CommandName() string {
	return CmdFeed
}

func (c Feed) String() string {
	return fmt.Sprintf("Feed(%d)", c.Rate)
}

// StopFeed disengages the feed.
type StopFeed struct{}

func (StopFeed) CommandName() string {
	return CmdStopFeed
}

func (StopFeed) String() string {
	return CmdStopFeed
}

// Notaus is the emergency stop, valid from every state except Notaus itself.
type Notaus struct{}

func (Notaus) CommandName() string {
	return CmdNotaus
}

func (Notaus) String() string {
	return CmdNotaus
}

// Acknowledge clears an emergency stop and resets the business data.
type Acknowledge struct{}

func (Acknowledge) CommandName() string {
	return CmdAcknowledge
}

func (Acknowledge) String() string {
	return CmdAcknowledge
}

// NewLatheTable builds the lathe's transition table. The definition is
// static, so construction cannot fail.
func NewLatheTable() *fsm.Table[LatheData] {
	table, err := fsm.NewBuilder[LatheData]("lathe").
		WithInitialState(LatheOff).
		AddStates(LatheOff, LatheSpinning, LatheFeeding, LatheNotaus).
		Transition(LatheOff, CmdStartSpinning, LatheSpinning, latheStartSpinning).
		Transition(LatheSpinning, CmdFeed, LatheFeeding, latheFeed).
		Transition(LatheSpinning, CmdStopSpinning, LatheOff, latheReset).
		Transition(LatheFeeding, CmdStopFeed, LatheSpinning, latheStopFeed).
		Transition(fsm.AnyState, CmdNotaus, LatheNotaus, nil).
		Transition(LatheNotaus, CmdAcknowledge, LatheOff, latheReset).
		Build()
	if err != nil {
		panic(err)
	}

	return table
}

// NewLatheMutations builds a registry of the lathe's mutations under the
// names used by the YAML form of the definition.
func NewLatheMutations() *fsm.MutationRegistry[LatheData] {
	registry := fsm.NewMutationRegistry[LatheData]()

	for name, mutation := range map[string]fsm.Mutation[LatheData]{
		"start_spinning": latheStartSpinning,
		"feed":           latheFeed,
		"stop_feed":      latheStopFeed,
		"reset":          latheReset,
	} {
		err := registry.Register(name, mutation)
		if err != nil {
			panic(err)
		}
	}

	return registry
}

func latheStartSpinning(data *LatheData, cmd fsm.Command) {
	if c, ok := cmd.(StartSpinning); ok {
		data.Revs = c.Revs
	}
}

func latheFeed(data *LatheData, cmd fsm.Command) {
	if c, ok := cmd.(Feed); ok {
		data.Feed = c.Rate
	}
}

func latheStopFeed(data *LatheData, _ fsm.Command) {
	data.Feed = 0
}

func latheReset(data *LatheData, _ fsm.Command) {
	*data = LatheData{}
}
