package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/goscheme/internal/interp/printer"
	"github.com/cwbudde/goscheme/internal/interp/runner"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expr>",
	Short: "Evaluate an inline expression and print its value",
	Long: `Evaluate a single expression given on the command line and print the
result the way the REPL would, using write's external representation.

Example:
  goscheme eval "(+ 1 2 3)"`,
	Args: cobra.ExactArgs(1),
	RunE: evalExpr,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func evalExpr(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	it, err := runner.New(cfg)
	if err != nil {
		return err
	}

	source := args[0]
	vals, err := it.EvalString(source)
	if err != nil {
		return reportError(err, source, "<eval>")
	}
	for _, v := range vals {
		fmt.Println(printer.Write(it.Arena, v))
	}
	return nil
}
