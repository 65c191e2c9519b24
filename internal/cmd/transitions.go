package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comalice/automatonx/internal/core"
	"github.com/comalice/automatonx/internal/primitives"
)

// transitionFlags holds the field flags shared by transition add and edit.
type transitionFlags struct {
	from          string
	symbol        string
	to            string
	registerIndex string
	set           string
	member        bool
	notMember     bool
	op            string
	threshold     int
	update        string
	last          string
}

var (
	transitionAddFlags  transitionFlags
	transitionEditFlags transitionFlags
)

var transitionCmd = &cobra.Command{
	Use:   "transition",
	Short: "Manage the transition relation",
	RunE:  requireSubcommand,
}

var transitionAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a transition, merging targets into an existing row with the same key",
	Long: `Add a transition.

If a row with the same key already exists (source and symbol, plus the
register, guard or last-occurrence state depending on the kind) the new
targets are merged into it instead of adding a row.

SAFA targets carry their insertion set as state:SET.

Examples:
  automatonx transition add --from q0 --symbol a --to q0,q1
  automatonx transition add --from q0 --symbol a --register 1 --to q1
  automatonx transition add --from q0 --symbol a --set H1 --not-member --to q1:H1
  automatonx transition add --from q0 --symbol a --op '<' --threshold 3 --update +1 --to q0
  automatonx transition add --from q0 --symbol a --last q1 --to q0`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		t, err := transitionAddFlags.transition()
		if err != nil {
			return err
		}
		return withEditor(cmd.Context(), func(ed *core.Editor) error {
			return ed.AddTransition(t)
		})
	},
}

var transitionEditCmd = &cobra.Command{
	Use:   "edit <pos>",
	Short: "Replace the transition at a position (never merges)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := position(args[0])
		if err != nil {
			return err
		}
		t, err := transitionEditFlags.transition()
		if err != nil {
			return err
		}
		return withEditor(cmd.Context(), func(ed *core.Editor) error {
			if _, err := ed.BeginEdit(core.EditTransition, pos); err != nil {
				return err
			}
			return ed.CommitTransitionEdit(t)
		})
	},
}

var transitionDeleteCmd = &cobra.Command{
	Use:   "delete <pos>",
	Short: "Delete a transition (NFA: every row with the same source and symbol)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := position(args[0])
		if err != nil {
			return err
		}
		return withEditor(cmd.Context(), func(ed *core.Editor) error {
			return ed.DeleteTransition(pos)
		})
	},
}

func init() {
	transitionAddFlags.register(transitionAddCmd)
	transitionEditFlags.register(transitionEditCmd)
	transitionCmd.AddCommand(transitionAddCmd, transitionEditCmd, transitionDeleteCmd)
	rootCmd.AddCommand(transitionCmd)
}

func (f *transitionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "source state")
	cmd.Flags().StringVar(&f.symbol, "symbol", "", "input symbol (NFA: ε for an empty move)")
	cmd.Flags().StringVar(&f.to, "to", "", "comma-separated target states (SAFA: state:SET)")
	cmd.Flags().StringVar(&f.registerIndex, "register", "", "RA register index")
	cmd.Flags().StringVar(&f.set, "set", "", "SAFA guard set")
	cmd.Flags().BoolVar(&f.member, "member", false, "SAFA guard p(): symbol is in the set (default)")
	cmd.Flags().BoolVar(&f.notMember, "not-member", false, "SAFA guard !p(): symbol is not in the set")
	cmd.Flags().StringVar(&f.op, "op", "", "CCA comparison: = != < <= > >=")
	cmd.Flags().IntVar(&f.threshold, "threshold", 0, "CCA comparison threshold")
	cmd.Flags().StringVar(&f.update, "update", "", "CCA counter update: *, 0 or +k")
	cmd.Flags().StringVar(&f.last, "last", "", "CMA last-occurrence state (- for none)")
}

// transition builds the unvalidated transition from the flags. Kind rules
// are applied by the editor.
func (f *transitionFlags) transition() (primitives.Transition, error) {
	if f.member && f.notMember {
		return primitives.Transition{}, errors.New("--member and --not-member are mutually exclusive")
	}
	t := primitives.Transition{
		Source:   strings.TrimSpace(f.from),
		Symbol:   strings.TrimSpace(f.symbol),
		Register: strings.TrimSpace(f.registerIndex),
		Guard: primitives.Guard{
			Set:       strings.TrimSpace(f.set),
			Member:    !f.notMember,
			Threshold: f.threshold,
			Last:      strings.TrimSpace(f.last),
		},
		Targets: parseTargets(f.to),
	}
	if f.op != "" {
		op, err := primitives.ParseCompareOp(f.op)
		if err != nil {
			return primitives.Transition{}, err
		}
		t.Guard.Op = op
	}
	if f.update != "" {
		u, err := primitives.ParseCounterUpdate(f.update)
		if err != nil {
			return primitives.Transition{}, err
		}
		t.Update = u
	}
	return t, nil
}

// parseTargets splits "q1,q2:S" into targets. Empty items are skipped.
func parseTargets(s string) []primitives.Target {
	var out []primitives.Target
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		state, insert, _ := strings.Cut(item, ":")
		out = append(out, primitives.Target{State: strings.TrimSpace(state), Insert: strings.TrimSpace(insert)})
	}
	return out
}
