package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/comalice/automatonx/internal/core"
	"github.com/comalice/automatonx/internal/export"
	"github.com/comalice/automatonx/internal/primitives"
	"github.com/comalice/automatonx/internal/style"
)

var (
	newKind        string
	newDescription string
)

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create an empty project",
	Long: `Create an empty project of the given automaton kind.

Without a name a random UUID is used and printed.

Examples:
  automatonx new coffee --kind NFA
  automatonx new --kind RA`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects in the project directory",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Delete a project file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the project with 1-based positions",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset the project to an empty model of the same kind",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withEditor(cmd.Context(), func(ed *core.Editor) error {
			ed.Clear()
			return nil
		})
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe <text>",
	Short: "Set the language description",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEditor(cmd.Context(), func(ed *core.Editor) error {
			return ed.SetDescription(strings.Join(args, " "))
		})
	},
}

func init() {
	newCmd.Flags().StringVarP(&newKind, "kind", "k", "", "automaton kind: NFA, RA, SAFA, CCA or CMA (required)")
	newCmd.Flags().StringVarP(&newDescription, "description", "d", "", "language description")
	_ = newCmd.MarkFlagRequired("kind")

	rootCmd.AddCommand(newCmd, listCmd, removeCmd, showCmd, clearCmd, describeCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	kind, err := primitives.ParseKind(newKind)
	if err != nil {
		return err
	}
	name := uuid.New().String()
	if len(args) == 1 {
		name = args[0]
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	lock, err := lockProject(cmd.Context(), name)
	if err != nil {
		return err
	}
	defer lock.Unlock()

	if _, err := store.Load(cmd.Context(), name); err == nil {
		return fmt.Errorf("project %s already exists", name)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	m := primitives.NewModel(kind)
	m.Description = newDescription
	snap := core.ProjectSnapshot{
		ProjectID: name,
		Version:   primitives.ComputeVersion(m),
		Model:     *m,
		Timestamp: time.Now(),
	}
	if err := store.Save(cmd.Context(), snap); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s created %s project %s\n", style.Pass(style.IconPass), kind, style.Accent(name))
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	ids, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	var rows [][]string
	for _, id := range ids {
		snap, err := store.Load(cmd.Context(), id)
		if err != nil {
			rows = append(rows, []string{id, "?", style.Fail(err.Error())})
			continue
		}
		rows = append(rows, []string{id, string(snap.Model.Kind), export.Describe(&snap.Model)})
	}
	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), style.Muted("no projects in "+cfg.Project.Dir))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), style.Table([]string{"project", "kind", "summary"}, rows))
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	if err := store.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s removed %s\n", style.Pass(style.IconPass), args[0])
	return nil
}

func runShow(cmd *cobra.Command, _ []string) error {
	return withEditor(cmd.Context(), func(ed *core.Editor) error {
		printModel(cmd.OutOrStdout(), ed.Snapshot(), ed.Capabilities())
		return nil
	})
}

func printModel(w io.Writer, m *primitives.Model, caps core.Capabilities) {
	fmt.Fprintf(w, "%s %s\n", style.Heading(string(m.Kind)), style.Muted(projectName))
	if m.Description != "" {
		fmt.Fprintf(w, "%s\n", m.Description)
	}

	section(w, "States", m.States)
	section(w, "Alphabet", m.Alphabet)
	if caps.Sets {
		section(w, "Sets", m.Sets)
	}
	if caps.Registers {
		regs := make([]string, len(m.Registers))
		for i, r := range m.Registers {
			regs[i] = r.Index + " = " + r.ValueString()
		}
		section(w, "Registers", regs)
	}

	rows := make([]string, len(m.Transitions))
	for i, t := range m.Transitions {
		rows[i] = core.FormatTransition(m.Kind, t)
	}
	section(w, "Transitions", rows)

	fmt.Fprintf(w, "%s %s\n", style.Heading("Initial:"), strings.Join(m.Initial, ", "))
	if caps.GlobalAccepting {
		fmt.Fprintf(w, "%s %s\n", style.Heading("Local accepting:"), strings.Join(m.Accepting, ", "))
		fmt.Fprintf(w, "%s %s\n", style.Heading("Global accepting:"), strings.Join(m.GlobalAccepting, ", "))
	} else {
		fmt.Fprintf(w, "%s %s\n", style.Heading("Accepting:"), strings.Join(m.Accepting, ", "))
	}

	if caps.Registers {
		ups := make([]string, len(m.Updates))
		for i, u := range m.Updates {
			ups[i] = fmt.Sprintf("U(%s, %s) = %s", u.State, u.Symbol, u.Register)
		}
		section(w, "Update function", ups)
	}

	cases := make([]string, len(m.TestCases))
	for i, tc := range m.TestCases {
		cases[i] = tc.String()
	}
	section(w, "Test cases", cases)
}

func section(w io.Writer, title string, items []string) {
	fmt.Fprintln(w, style.Heading(title+":"))
	if len(items) == 0 {
		fmt.Fprintln(w, "  "+style.Muted("(none)"))
		return
	}
	for i, it := range items {
		fmt.Fprintf(w, "  %s %s\n", style.Muted(fmt.Sprintf("%d.", i+1)), it)
	}
}
