package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/cmdstub/cmd/cmdstub/commands"
	"github.com/teranos/cmdstub/errors"
	"github.com/teranos/cmdstub/logger"
)

var rootCmd = &cobra.Command{
	Use:   "cmdstub",
	Short: "Generate Python type stubs for the cmds command API",
	Long: `cmdstub - Python .pyi stubs for the cmds command API.

cmdstub joins the live command list of a running host with the HTML
command reference and writes one stub file with a typed signature for
every create, edit and query form of every command.

Available commands:
  generate - Write the stub file
  check    - Compare an existing stub with a fresh generation
  inspect  - Print the declaration for one documentation page
  config   - Show, validate or initialise configuration
  version  - Show build information

Examples:
  cmdstub generate                  # Write cmds.pyi using cmdstub.toml
  cmdstub generate stubs/ --cache   # Write stubs/cmds.pyi, caching pages
  cmdstub check stubs/cmds.pyi      # Fail if the stub is out of date
  cmdstub inspect polyCube --html polyCube.html`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		logger.Logger.Debugw("Logger initialized", "verbosity", logger.LevelName(verbosity), "json", jsonLogs)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	commands.Register(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
