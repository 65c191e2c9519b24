package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/comalice/automatonx/internal/core"
	"github.com/comalice/automatonx/internal/primitives"
)

// labelOps binds one label collection to the editor.
type labelOps struct {
	add    func(ed *core.Editor, label string) error
	rename func(ed *core.Editor, pos int, label string) error
	del    func(ed *core.Editor, pos int) error
}

var stateCmd = labelCommand("state", "Manage states", labelOps{
	add:    (*core.Editor).AddState,
	rename: (*core.Editor).RenameState,
	del:    (*core.Editor).DeleteState,
})

var symbolCmd = labelCommand("symbol", "Manage alphabet symbols", labelOps{
	add:    (*core.Editor).AddSymbol,
	rename: (*core.Editor).RenameSymbol,
	del:    (*core.Editor).DeleteSymbol,
})

var setCmd = labelCommand("set", "Manage SAFA set names", labelOps{
	add:    (*core.Editor).AddSet,
	rename: (*core.Editor).RenameSet,
	del:    (*core.Editor).DeleteSet,
})

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Manage RA registers",
	RunE:  requireSubcommand,
}

var registerAddCmd = &cobra.Command{
	Use:   "add <index> [initial]",
	Short: "Add a register; initial is a positive integer or ⊥ (default ⊥)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		initial, err := registerValue(args)
		if err != nil {
			return err
		}
		return withEditor(cmd.Context(), func(ed *core.Editor) error {
			return ed.AddRegister(args[0], initial)
		})
	},
}

var registerEditCmd = &cobra.Command{
	Use:   "edit <pos> <index> [initial]",
	Short: "Change a register's index and initial value",
	Long: `Change a register's index and initial value.

A new index is cascaded into every transition and update function entry
that used the old one.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := position(args[0])
		if err != nil {
			return err
		}
		initial, err := registerValue(args[1:])
		if err != nil {
			return err
		}
		return withEditor(cmd.Context(), func(ed *core.Editor) error {
			if _, err := ed.BeginEdit(core.EditRegister, pos); err != nil {
				return err
			}
			return ed.CommitRegisterEdit(args[1], initial)
		})
	},
}

var registerDeleteCmd = &cobra.Command{
	Use:   "delete <pos>",
	Short: "Delete an unused register",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := position(args[0])
		if err != nil {
			return err
		}
		return withEditor(cmd.Context(), func(ed *core.Editor) error {
			return ed.DeleteRegister(pos)
		})
	},
}

func init() {
	registerCmd.AddCommand(registerAddCmd, registerEditCmd, registerDeleteCmd)
	rootCmd.AddCommand(stateCmd, symbolCmd, setCmd, registerCmd)
}

func labelCommand(name, short string, ops labelOps) *cobra.Command {
	parent := &cobra.Command{
		Use:   name,
		Short: short,
		RunE:  requireSubcommand,
	}
	parent.AddCommand(
		&cobra.Command{
			Use:   "add <label>",
			Short: "Add a " + name,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withEditor(cmd.Context(), func(ed *core.Editor) error {
					return ops.add(ed, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "rename <pos> <label>",
			Short: "Rename a " + name + " everywhere it is used",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				pos, err := position(args[0])
				if err != nil {
					return err
				}
				return withEditor(cmd.Context(), func(ed *core.Editor) error {
					return ops.rename(ed, pos, args[1])
				})
			},
		},
		&cobra.Command{
			Use:   "delete <pos>",
			Short: "Delete an unused " + name,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				pos, err := position(args[0])
				if err != nil {
					return err
				}
				return withEditor(cmd.Context(), func(ed *core.Editor) error {
					return ops.del(ed, pos)
				})
			},
		},
	)
	return parent
}

// position converts a 1-based command line position to a 0-based index.
func position(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: position %q must be a positive integer", primitives.ErrInvalidValue, arg)
	}
	return n - 1, nil
}

func registerValue(args []string) (*int, error) {
	if len(args) < 2 {
		return nil, nil
	}
	return primitives.ParseRegisterValue(args[1])
}
