package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/goscheme/internal/config"
	"github.com/cwbudde/goscheme/internal/interp/printer"
	"github.com/cwbudde/goscheme/internal/interp/runner"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive read-eval-print loop",
	Long: `Start an interactive session: read one form from standard input, evaluate
it against a persistent global environment, print its value, and repeat.
An error aborts only the form that raised it; the loop returns to the
prompt with the environment otherwise unchanged.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	it, err := runner.New(cfg)
	if err != nil {
		return err
	}

	prompt := cfg.Prompt
	if prompt == "" {
		prompt = config.Default().Prompt
	}

	in := bufio.NewReader(os.Stdin)
	for {
		fmt.Print(prompt)
		vals, eof, err := it.ReadEval(in)
		if eof {
			fmt.Println()
			return nil
		}
		if err != nil {
			if debug {
				printDebugSnapshot(it)
			}
			reportError(err, "", "<repl>")
			continue
		}
		for _, v := range vals {
			fmt.Println(printer.Write(it.Arena, v))
		}
	}
}
