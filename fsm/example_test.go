package fsm_test

import (
	"context"
	"fmt"

	"github.com/amp-labs/amp-machines/fsm"
	"github.com/amp-labs/amp-machines/fsm/fsmtest"
)

// ExampleStartController demonstrates the asynchronous command/response
// interface end to end.
func ExampleStartController() {
	ctx := context.Background()

	controller := fsm.StartController(ctx, fsmtest.NewLatheTable(), fsmtest.LatheData{},
		fsm.WithMachineOptions(fsm.WithLogger[fsmtest.LatheData](nil)))

	for _, cmd := range []fsm.Command{
		fsmtest.StartSpinning{Revs: 1000},
		fsmtest.Feed{Rate: 500},
		fsmtest.StopFeed{},
	} {
		if err := controller.Submit(ctx, cmd); err != nil {
			fmt.Printf("Error: %v\n", err)

			return
		}
	}

	if err := controller.Shutdown(); err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	for _, rsp := range controller.Poll() {
		fmt.Println(rsp)
	}

	// Output:
	// Status{state: Spinning}
	// Status{state: Feeding}
	// Status{state: Spinning}
}

// ExampleNewBuilder demonstrates declaring and dispatching against a small
// machine definition.
func ExampleNewBuilder() {
	table, err := fsm.NewBuilder[struct{}]("turnstile").
		WithInitialState("Locked").
		AddStates("Locked", "Unlocked").
		Transition("Locked", "Coin", "Unlocked", nil).
		Transition("Unlocked", "Push", "Locked", nil).
		Build()
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	machine := fsm.NewMachine(table, struct{}{}, fsm.WithLogger[struct{}](nil))

	fmt.Println(machine.Handle(context.Background(), coin{}))
	fmt.Println(machine.Handle(context.Background(), coin{}))

	// Output:
	// Status{state: Unlocked}
	// InvalidTransition{current_state: Unlocked, attempted_command: Coin}
}

type coin struct{}

func (coin) CommandName() string { return "Coin" }
