package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/comalice/automatonx/internal/core"
	"github.com/comalice/automatonx/internal/export"
	"github.com/comalice/automatonx/internal/style"
)

var (
	exportConfigOnly bool
	evaluateStrict   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the evaluation request body as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withEditor(cmd.Context(), func(ed *core.Editor) error {
			m := ed.Snapshot()
			var body any
			var err error
			if exportConfigOnly {
				body, err = export.Config(m)
			} else {
				body, err = export.NewEvaluateRequest(m)
			}
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(body, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		})
	},
}

var dotCmd = &cobra.Command{
	Use:   "dot",
	Short: "Print the automaton as Graphviz DOT",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withEditor(cmd.Context(), func(ed *core.Editor) error {
			fmt.Fprint(cmd.OutOrStdout(), ed.Visualize())
			return nil
		})
	},
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Run the stored test cases on the evaluation service",
	Long: `Run the stored test cases on the evaluation service.

Every stored test case must be valid. With --strict the command exits 1
when any test case is rejected.`,
	Args: cobra.NoArgs,
	RunE: runEvaluate,
}

var emptinessCmd = &cobra.Command{
	Use:   "emptiness",
	Short: "Ask the evaluation service whether the language is empty (NFA, SAFA)",
	Args:  cobra.NoArgs,
	RunE:  runEmptiness,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the program version, and the project content version with -p",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "automatonx %s\n", Version)
		if projectName == "" {
			return nil
		}
		return withEditor(cmd.Context(), func(ed *core.Editor) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", projectName, ed.Version())
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().BoolVar(&exportConfigOnly, "config-only", false, "print only the automaton configuration")
	evaluateCmd.Flags().BoolVar(&evaluateStrict, "strict", false, "exit 1 if any test case is rejected")
	rootCmd.AddCommand(exportCmd, dotCmd, evaluateCmd, emptinessCmd, versionCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	var res core.EvaluationResult
	var cases []string
	err := withEditor(cmd.Context(), func(ed *core.Editor) error {
		for _, tc := range ed.Snapshot().TestCases {
			cases = append(cases, tc.String())
		}
		ch, err := ed.Evaluate(cmd.Context())
		if err != nil {
			return err
		}
		res = <-ch
		return res.Err
	})
	if err != nil {
		return err
	}

	rows := make([][]string, len(res.Cases))
	rejected := 0
	for i, c := range res.Cases {
		input := string(c.Input)
		if i < len(cases) {
			input = cases[i]
		}
		if !c.Accepted {
			rejected++
		}
		rows[i] = []string{strconv.Itoa(i + 1), input, style.Verdict(c.Accepted)}
	}
	fmt.Fprintln(cmd.OutOrStdout(), style.Table([]string{"#", "test case", "result"}, rows))
	if evaluateStrict && rejected > 0 {
		return NewSilentExit(1)
	}
	return nil
}

func runEmptiness(cmd *cobra.Command, _ []string) error {
	var res core.EmptinessResult
	err := withEditor(cmd.Context(), func(ed *core.Editor) error {
		ch, err := ed.CheckEmptiness(cmd.Context())
		if err != nil {
			return err
		}
		res = <-ch
		return res.Err
	})
	if err != nil {
		return err
	}
	if res.Empty {
		fmt.Fprintf(cmd.OutOrStdout(), "%s the language is empty\n", style.Warn(style.IconWarn))
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s the language is not empty\n", style.Pass(style.IconPass))
	}
	return nil
}
