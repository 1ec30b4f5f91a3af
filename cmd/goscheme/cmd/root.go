package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/goscheme/internal/config"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configPath string
	jsonErrors bool
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "goscheme",
	Short: "A Scheme interpreter",
	Long: `goscheme is an R5RS-flavored Scheme interpreter: a reader, a
stack-based evaluator with proper tail calls and first-class
continuations, and the standard procedure library, fronted by a REPL
and a batch file runner.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().BoolVar(&jsonErrors, "json-errors", false, "report errors as JSON instead of formatted text")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "pretty-print VM state on unhandled errors")
}

// loadConfig resolves --config (or its default path) into a Config, used by
// every subcommand that builds an Interpreter.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}
