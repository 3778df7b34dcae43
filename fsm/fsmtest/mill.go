package fsmtest

import (
	"fmt"

	"github.com/amp-labs/amp-machines/fsm"
)

// Mill states.
const (
	MillOff      = "Off"
	MillSpinning = "Spinning"
	MillMoving   = "Moving"
)

// Mill command names as they appear in the transition table. The spindle
// commands are shared with the lathe.
const (
	CmdMove       = "Move"
	CmdStopMoving = "StopMoving"
)

// MillData is the mill's business data: spindle speed and the current
// linear movement, which may be negative.
type MillData struct {
	Revs       uint32
	LinearMove int32
}

// Move starts a linear movement over the given distance.
type Move struct {
	Distance int32
}

func (Move) CommandName() string {
	return CmdMove
}

func (c Move) String() string {
	return fmt.Sprintf("Move(%d)", c.Distance)
}

// StopMoving stops the linear movement.
type StopMoving struct{}

func (StopMoving) CommandName() string {
	return CmdStopMoving
}

func (StopMoving) String() string {
	return CmdStopMoving
}

// NewMillTable builds the mill's transition table. The definition is
// static, so construction cannot fail.
func NewMillTable() *fsm.Table[MillData] {
	table, err := fsm.NewBuilder[MillData]("mill").
		WithInitialState(MillOff).
		AddStates(MillOff, MillSpinning, MillMoving).
		Transition(MillOff, CmdStartSpinning, MillSpinning, millStartSpinning).
		Transition(MillSpinning, CmdStopSpinning, MillOff, millStopSpinning).
		Transition(MillSpinning, CmdMove, MillMoving, millMove).
		Transition(MillMoving, CmdStopMoving, MillSpinning, millStopMoving).
		Build()
	if err != nil {
		panic(err)
	}

	return table
}

func millStartSpinning(data *MillData, cmd fsm.Command) {
	if c, ok := cmd.(StartSpinning); ok {
		data.Revs = c.Revs
	}
}

func millStopSpinning(data *MillData, _ fsm.Command) {
	data.Revs = 0
}

func millMove(data *MillData, cmd fsm.Command) {
	if c, ok := cmd.(Move); ok {
		data.LinearMove = c.Distance
	}
}

func millStopMoving(data *MillData, _ fsm.Command) {
	data.LinearMove = 0
}
