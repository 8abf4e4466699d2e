package commands

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/cmdstub/config"
	"github.com/teranos/cmdstub/errors"
	"github.com/teranos/cmdstub/generator"
	"github.com/teranos/cmdstub/stub"
)

// CheckCmd compares a stub on disk with a fresh generation
var CheckCmd = &cobra.Command{
	Use:   "check <stub>",
	Short: "Check whether a stub file is up to date",
	Long: `Generate the stub in memory and compare it with an existing file.

The version recorded in the header is ignored. Added, removed and changed
commands are listed and the command exits non-zero when anything differs.

Examples:
  cmdstub check cmds.pyi
  cmdstub check stubs/cmds.pyi --config ci.toml`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}
	return checkStub(cmd.Context(), cmd.OutOrStdout(), cfg, args[0])
}

func checkStub(ctx context.Context, w io.Writer, cfg *config.Config, path string) error {
	existing, err := os.ReadFile(generator.ResolveOutput(path))
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}

	p, err := generator.Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	generated, _, err := p.Generate(ctx)
	if err != nil {
		return err
	}

	result := stub.Check(string(existing), generated)
	printCheck(w, path, result)
	if !result.UpToDate() {
		return errors.WithHint(errors.Newf("%s is out of date", path), "run 'cmdstub generate' to rewrite it")
	}
	return nil
}

func printCheck(w io.Writer, path string, result stub.CheckResult) {
	if result.UpToDate() {
		pterm.Fprintln(w, pterm.Success.Sprintf("%s is up to date", path))
		return
	}
	if result.HeaderChanged {
		pterm.Fprintln(w, pterm.Warning.Sprint("Header changed"))
	}
	for _, group := range []struct {
		label string
		names []string
	}{
		{"Added", result.Added},
		{"Removed", result.Removed},
		{"Changed", result.Changed},
	} {
		if len(group.names) > 0 {
			pterm.Fprintln(w, pterm.Warning.Sprintf("%s (%d): %s", group.label, len(group.names), strings.Join(group.names, ", ")))
		}
	}
}
