package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/maruel/natural"
	"github.com/spf13/cobra"

	"github.com/cwbudde/goscheme/internal/diagnostics"
	"github.com/cwbudde/goscheme/internal/interp"
	"github.com/cwbudde/goscheme/internal/interp/runner"
)

var dumpEnv bool

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a Scheme file",
	Long: `Execute a Scheme program read from a file, one top-level form at a
time, the same way (load "file") does.

Examples:
  goscheme run script.scm
  goscheme run --json-errors script.scm`,
	Args: cobra.ExactArgs(1),
	RunE: runFile,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&dumpEnv, "dump-env", false, "print the global environment's bound names after running")
}

func runFile(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	it, err := runner.New(cfg)
	if err != nil {
		return err
	}

	path := args[0]
	_, runErr := it.LoadFile(path)

	if dumpEnv {
		printEnvBindings(it)
	}
	if runErr != nil {
		if debug {
			printDebugSnapshot(it)
		}
		return reportError(runErr, "", path)
	}
	return nil
}

// printEnvBindings backs --dump-env: the global frame's bound names,
// naturally ordered, one per line.
func printEnvBindings(it *interp.Interpreter) {
	names := it.Arena.Bindings(it.Env)
	sort.Slice(names, func(i, j int) bool { return natural.Less(names[i], names[j]) })
	for _, n := range names {
		fmt.Println(n)
	}
}

// reportError renders err either as a source-context diagnostic or as a
// JSON object, depending on --json-errors, and always returns a non-nil
// error so the caller's RunE surfaces a non-zero exit status.
func reportError(err error, source, file string) error {
	d := diagnostics.FromError(err, source, file)
	if jsonErrors {
		doc, jerr := d.JSON()
		if jerr != nil {
			return jerr
		}
		fmt.Fprintln(os.Stderr, doc)
	} else {
		fmt.Fprintln(os.Stderr, d.Format(true))
	}
	return err
}
