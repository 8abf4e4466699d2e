// Package commands implements the cmdstub command line.
package commands

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/cmdstub/config"
	"github.com/teranos/cmdstub/errors"
	"github.com/teranos/cmdstub/logger"
)

// Register adds the global flags and every subcommand to root
func Register(root *cobra.Command) {
	root.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	root.PersistentFlags().Bool("json-logs", false, "Write logs as JSON to stderr")
	root.PersistentFlags().StringP("config", "c", "", "Config file (default: cascade of /etc, ~/.cmdstub and ./cmdstub.toml)")

	root.AddCommand(GenerateCmd)
	root.AddCommand(CheckCmd)
	root.AddCommand(InspectCmd)
	root.AddCommand(ConfigCmd)
	root.AddCommand(VersionCmd)
}

// PrintError writes err and any hints attached to it
func PrintError(w io.Writer, err error) {
	pterm.Fprintln(w, pterm.Error.Sprint(err.Error()))
	if hints := errors.FlattenHints(err); hints != "" {
		pterm.Fprintln(w, pterm.Info.Sprint(hints))
	}
	if logger.Verbosity >= logger.VerbosityTrace {
		fmt.Fprintf(w, "%+v\n", err)
	}
}

// loadConfig reads --config when given, otherwise the config cascade
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.LoadFromFile(path)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	return cfg, nil
}
