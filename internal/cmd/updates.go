package cmd

import (
	"github.com/spf13/cobra"

	"github.com/comalice/automatonx/internal/core"
	"github.com/comalice/automatonx/internal/primitives"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Manage the RA update function U(state, symbol) = register",
	RunE:  requireSubcommand,
}

var updateAddCmd = &cobra.Command{
	Use:   "add <state> <symbol> <register>",
	Short: "Add an update function entry",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEditor(cmd.Context(), func(ed *core.Editor) error {
			return ed.AddUpdate(updateEntry(args))
		})
	},
}

var updateEditCmd = &cobra.Command{
	Use:   "edit <pos> <state> <symbol> <register>",
	Short: "Replace an update function entry",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := position(args[0])
		if err != nil {
			return err
		}
		return withEditor(cmd.Context(), func(ed *core.Editor) error {
			if _, err := ed.BeginEdit(core.EditUpdate, pos); err != nil {
				return err
			}
			return ed.CommitUpdateEdit(updateEntry(args[1:]))
		})
	},
}

var updateDeleteCmd = &cobra.Command{
	Use:   "delete <pos>",
	Short: "Delete an update function entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := position(args[0])
		if err != nil {
			return err
		}
		return withEditor(cmd.Context(), func(ed *core.Editor) error {
			return ed.DeleteUpdate(pos)
		})
	},
}

func init() {
	updateCmd.AddCommand(updateAddCmd, updateEditCmd, updateDeleteCmd)
	rootCmd.AddCommand(updateCmd)
}

func updateEntry(args []string) primitives.UpdateEntry {
	return primitives.UpdateEntry{State: args[0], Symbol: args[1], Register: args[2]}
}
