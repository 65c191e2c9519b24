package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comalice/automatonx/internal/core"
	"github.com/comalice/automatonx/internal/style"
)

var testcaseCmd = &cobra.Command{
	Use:     "testcase",
	Aliases: []string{"test"},
	Short:   "Manage test cases",
	Long: `Manage test cases.

NFA test cases are words over the alphabet: "abba". The other kinds take
comma-separated (symbol,value) pairs: "(a,1),(b,2)". RA values may be ⊥.

Examples:
  automatonx testcase add abba
  automatonx testcase add '(a,1),(b,⊥)'
  automatonx testcase validate`,
	RunE: requireSubcommand,
}

var testcaseAddCmd = &cobra.Command{
	Use:   "add <case>",
	Short: "Parse and store a test case",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEditor(cmd.Context(), func(ed *core.Editor) error {
			return ed.AddTestCase(strings.Join(args, ""))
		})
	},
}

var testcaseEditCmd = &cobra.Command{
	Use:   "edit <pos> <case>",
	Short: "Replace a stored test case",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := position(args[0])
		if err != nil {
			return err
		}
		return withEditor(cmd.Context(), func(ed *core.Editor) error {
			if _, err := ed.BeginEdit(core.EditTestCase, pos); err != nil {
				return err
			}
			return ed.CommitTestCaseEdit(strings.Join(args[1:], ""))
		})
	},
}

var testcaseDeleteCmd = &cobra.Command{
	Use:   "delete <pos>",
	Short: "Delete a stored test case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := position(args[0])
		if err != nil {
			return err
		}
		return withEditor(cmd.Context(), func(ed *core.Editor) error {
			return ed.DeleteTestCase(pos)
		})
	},
}

var testcaseValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Re-check stored test cases against the current alphabet",
	Long: `Re-check stored test cases against the current alphabet and value rules.

Exits 1 when any test case is invalid.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var issues []core.TestCaseIssue
		err := withEditor(cmd.Context(), func(ed *core.Editor) error {
			issues = ed.ValidateTestCases()
			return nil
		})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(issues) == 0 {
			fmt.Fprintf(out, "%s all test cases are valid\n", style.Pass(style.IconPass))
			return nil
		}
		for _, is := range issues {
			fmt.Fprintf(out, "%s %s\n", style.Fail(style.IconFail), is)
		}
		return NewSilentExit(1)
	},
}

func init() {
	testcaseCmd.AddCommand(testcaseAddCmd, testcaseEditCmd, testcaseDeleteCmd, testcaseValidateCmd)
	rootCmd.AddCommand(testcaseCmd)
}
