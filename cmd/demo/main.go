package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/comalice/automatonx/internal/core"
	"github.com/comalice/automatonx/internal/primitives"
	"github.com/comalice/automatonx/internal/production"
	"github.com/comalice/automatonx/internal/variants"
)

// demo edits a small NFA step by step, printing each published change and
// the DOT rendering, then shows a blocked delete and a cascading rename.
func main() {
	persister, err := production.NewJSONPersister(os.TempDir())
	if err != nil {
		panic(err)
	}

	publishChan := make(chan production.PublishedEvent, 100)
	publisher := production.NewChannelPublisher(publishChan)

	ed, err := core.NewEditor(variants.MustFor(primitives.NFA),
		core.WithID("demo-nfa"),
		core.WithPersister(persister),
		core.WithPublisher(publisher),
		core.WithVisualizer(&production.DefaultVisualizer{}),
	)
	if err != nil {
		panic(err)
	}
	defer publisher.Close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	steps := []struct {
		name string
		run  func() error
	}{
		{"add states", func() error { return each(ed.AddState, "even", "odd") }},
		{"add symbols", func() error { return each(ed.AddSymbol, "a", "b") }},
		{"even -a-> odd", func() error {
			return ed.AddTransition(primitives.Transition{Source: "even", Symbol: "a", Targets: primitives.TargetsOf("odd")})
		}},
		{"odd -a-> even", func() error {
			return ed.AddTransition(primitives.Transition{Source: "odd", Symbol: "a", Targets: primitives.TargetsOf("even")})
		}},
		{"b loops", func() error {
			return ed.AddTransition(primitives.Transition{Source: "even", Symbol: "b", Targets: primitives.TargetsOf("even")})
		}},
		{"designations", func() error {
			if err := ed.SetInitial("even"); err != nil {
				return err
			}
			return ed.SetAccepting("even")
		}},
		{"test cases", func() error { return each(ed.AddTestCase, "aa", "aba", "") }},
		{"delete referenced state", func() error { return ed.DeleteState(0) }},
		{"rename even -> q0", func() error { return ed.RenameState(0, "q0") }},
	}

	for i, s := range steps {
		select {
		case <-sig:
			fmt.Println("\nShutting down gracefully...")
			return
		default:
		}

		fmt.Printf("\n--- Step %d: %s ---\n", i+1, s.name)
		if err := s.run(); err != nil {
			fmt.Printf("Rejected: %v\n", err)
			fmt.Printf("Error slot: %q\n", ed.LastError())
		}
		drain(publishChan)
	}

	fmt.Println("\nDOT:\n" + ed.Visualize())
	fmt.Printf("Saved %s version %s in %s\n", ed.ID(), ed.Version(), os.TempDir())
}

func each(fn func(string) error, labels ...string) error {
	for _, l := range labels {
		if err := fn(l); err != nil {
			return err
		}
	}
	return nil
}

func drain(ch <-chan production.PublishedEvent) {
	for {
		select {
		case ev := <-ch:
			fmt.Printf("Published: %s %s (version %s)\n", ev.Event.Type, ev.Event.Label, ev.Metadata.Version)
		default:
			return
		}
	}
}
