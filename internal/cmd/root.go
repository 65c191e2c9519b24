// Package cmd implements the automatonx command tree.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comalice/automatonx/internal/config"
	"github.com/comalice/automatonx/internal/style"
)

// Version is the program version, set at build time with -ldflags.
var Version = "dev"

const envProject = "AUTOMATONX_PROJECT"

var (
	configPath  string
	projectName string
	verbose     bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "automatonx",
	Short: "Author NFA, RA, SAFA, CCA and CMA specifications",
	Long: `automatonx edits automaton specifications stored as project files.

Every command loads the project, applies one change that keeps all
references consistent, and saves it again. Test cases are checked against
the automaton kind's grammar; evaluation and emptiness checks are sent to
the external evaluation service.

Positions on the command line are 1-based, as printed by "show".

Examples:
  automatonx new demo --kind NFA
  automatonx -p demo state add q0
  automatonx -p demo transition add --from q0 --symbol a --to q0,q1
  automatonx -p demo testcase add aab
  automatonx -p demo evaluate`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./automatonx.toml)")
	rootCmd.PersistentFlags().StringVarP(&projectName, "project", "p", "", "project name (default $"+envProject+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded
	if verbose {
		cfg.Log.Level = "debug"
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(newHandler(cmd.ErrOrStderr(), cfg.Log.Format, level)))
	if projectName == "" {
		projectName = os.Getenv(envProject)
	}
	return nil
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	return run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	err := rootCmd.ExecuteContext(ctx)
	if code, ok := IsSilentExit(err); ok {
		return code
	}
	if err != nil {
		fmt.Fprintf(stderr, "%s %s\n", style.Fail(style.IconFail), err)
		return 1
	}
	return 0
}

func requireSubcommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s requires a subcommand", cmd.CommandPath())
	}
	return fmt.Errorf("unknown subcommand %q for %s", args[0], cmd.CommandPath())
}
