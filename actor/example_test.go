package actor_test

import (
	"context"
	"fmt"

	"github.com/amp-labs/amp-machines/actor"
)

// ExampleNew demonstrates creating a basic actor.
func ExampleNew() {
	ctx := context.Background()

	// Create an actor that processes string requests and returns string responses
	myActor := actor.New(func(ref *actor.Ref[string, string]) actor.Processor[string, string] {
		return actor.ProcessorFunc[string, string](func(_ context.Context, msg string) string {
			return "Processed: " + msg
		})
	})

	// Start the actor (Run returns a Ref)
	ref := myActor.Run(ctx, "processor")
	defer ref.Stop()

	// Send a request and wait for its response
	result, err := ref.Call(ctx, "Hello")
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Println(result)
	// Output: Processed: Hello
}

// ExampleRef_Poll demonstrates fire-and-forget submission with ordered
// response retrieval.
func ExampleRef_Poll() {
	ctx := context.Background()

	// Create an actor that doubles numbers
	doubler := actor.New(func(ref *actor.Ref[int, int]) actor.Processor[int, int] {
		return actor.ProcessorFunc[int, int](func(_ context.Context, num int) int {
			return num * 2
		})
	})

	ref := doubler.Run(ctx, "doubler")

	for _, num := range []int{1, 2, 3} {
		if err := ref.Send(ctx, num); err != nil {
			fmt.Printf("Error: %v\n", err)

			return
		}
	}

	// Stop intake, let the queued requests drain, then collect.
	ref.Stop()

	if err := ref.Wait(); err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Println(ref.Poll())
	// Output: [2 4 6]
}

// ExampleActor demonstrates a complete actor workflow with state.
func ExampleActor() {
	ctx := context.Background()

	// Create a counter actor with internal state
	counter := actor.New(func(ref *actor.Ref[int, int]) actor.Processor[int, int] {
		total := 0

		return actor.ProcessorFunc[int, int](func(_ context.Context, num int) int {
			total += num

			return total
		})
	})

	ref := counter.Run(ctx, "counter")
	defer ref.Stop()

	for _, num := range []int{5, 10, 20} {
		total, err := ref.Call(ctx, num)
		if err != nil {
			fmt.Printf("Error: %v\n", err)

			return
		}

		fmt.Printf("Total: %d\n", total)
	}

	// Output:
	// Total: 5
	// Total: 15
	// Total: 35
}
