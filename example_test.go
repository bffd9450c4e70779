package arbor_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/behaviours"
	"github.com/aretw0/arbor/pkg/decorators"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/dsl"
	"github.com/aretw0/arbor/pkg/tree"
)

// ExampleFromDefinition builds a tree with the DSL and runs it until it settles.
func ExampleFromDefinition() {
	b := dsl.New("patrol")
	b.Leaf("count").
		Named("Waypoints").
		Param("fail_until", 0).
		Param("running_until", 2).
		Param("success_until", 3).
		Inverter()

	eng, err := arbor.FromDefinition(b.File())
	if err != nil {
		log.Fatal(err)
	}

	if err := eng.Run(context.Background(), time.Millisecond, tree.Continuous); err != nil {
		log.Fatal(err)
	}
	fmt.Println(eng.Root().Status(), eng.Tree().Count())
	fmt.Println(eng.Root().Feedback())
	// Output:
	// FAILURE 3
	// success -> failure [success]
}

// ExampleNew wraps a hand-built tree.
func ExampleNew() {
	root := decorators.NewCondition(
		behaviours.NewStatusQueue("Sensor", []domain.Status{domain.StatusFailure, domain.StatusSuccess}, nil),
		domain.StatusSuccess,
	)
	eng := arbor.New(root)

	for range 2 {
		if err := eng.Tick(context.Background()); err != nil {
			log.Fatal(err)
		}
		fmt.Println(eng.Root().Status(), "-", eng.Root().Feedback())
	}
	// Output:
	// RUNNING - 'Sensor' has status FAILURE, waiting for SUCCESS
	// SUCCESS - 'Sensor' has status SUCCESS, waiting for SUCCESS
}
