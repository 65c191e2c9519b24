package cmd

import (
	"github.com/spf13/cobra"

	"github.com/comalice/automatonx/internal/core"
)

var (
	initialToggle   bool
	acceptingToggle bool
	acceptingGlobal bool
)

var initialCmd = &cobra.Command{
	Use:   "initial [state...]",
	Short: "Set the initial state(s)",
	Long: `Set the initial state(s).

RA, SAFA and CMA have exactly one initial state; NFA and CCA take a set.
With --toggle each named state is added or removed instead.
Without arguments the designation is cleared.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEditor(cmd.Context(), func(ed *core.Editor) error {
			if initialToggle {
				return each(args, ed.ToggleInitial)
			}
			return ed.SetInitial(args...)
		})
	},
}

var acceptingCmd = &cobra.Command{
	Use:   "accepting [state...]",
	Short: "Set the accepting states (CMA: local, or global with --global)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEditor(cmd.Context(), func(ed *core.Editor) error {
			set, toggle := ed.SetAccepting, ed.ToggleAccepting
			if acceptingGlobal {
				set, toggle = ed.SetGlobalAccepting, ed.ToggleGlobalAccepting
			}
			if acceptingToggle {
				return each(args, toggle)
			}
			return set(args...)
		})
	},
}

func init() {
	initialCmd.Flags().BoolVar(&initialToggle, "toggle", false, "toggle each state instead of replacing the set")
	acceptingCmd.Flags().BoolVar(&acceptingToggle, "toggle", false, "toggle each state instead of replacing the set")
	acceptingCmd.Flags().BoolVarP(&acceptingGlobal, "global", "g", false, "CMA global accepting states")
	rootCmd.AddCommand(initialCmd, acceptingCmd)
}

func each(labels []string, fn func(string) error) error {
	for _, l := range labels {
		if err := fn(l); err != nil {
			return err
		}
	}
	return nil
}
