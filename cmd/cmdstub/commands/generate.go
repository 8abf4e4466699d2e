package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teranos/cmdstub/config"
	"github.com/teranos/cmdstub/display"
	"github.com/teranos/cmdstub/errors"
	"github.com/teranos/cmdstub/generator"
	"github.com/teranos/cmdstub/logger"
)

// GenerateCmd writes the stub file
var GenerateCmd = &cobra.Command{
	Use:   "generate [output]",
	Short: "Generate the cmds stub file",
	Long: `Generate the stub file for every command the host exposes.

The output argument overrides output.path. When it names an existing
directory the stub is written there as cmds.pyi.

Commands without a documentation page are left out unless --undocumented
is given. Pages that deviate from the known markup are reported and
skipped; --strict turns them into a failure.

With --watch the stub is regenerated whenever a table in overrides.dir
changes.

Examples:
  cmdstub generate
  cmdstub generate out/ --cache -v
  cmdstub generate --undocumented --strict
  cmdstub generate --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

var (
	generateUndocumented   bool
	generateCache          bool
	generateSequenceParams bool
	generateStrict         bool
	generateWatch          bool
)

func init() {
	GenerateCmd.Flags().BoolVar(&generateUndocumented, "undocumented", false, "Emit commands that have no documentation page")
	GenerateCmd.Flags().BoolVar(&generateCache, "cache", false, "Cache fetched pages in cache.path")
	GenerateCmd.Flags().BoolVar(&generateSequenceParams, "sequence-params", false, "Type bracketed arguments as Sequence[...] instead of tuple[...]")
	GenerateCmd.Flags().BoolVar(&generateStrict, "strict", false, "Fail on the first malformed documentation page")
	GenerateCmd.Flags().BoolVar(&generateWatch, "watch", false, "Regenerate when an override table changes")
	GenerateCmd.Flags().Bool("json", false, "Report progress as JSON events on stdout")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Output.Path = args[0]
	}
	applyGenerateFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}
	if generateWatch && cfg.Overrides.Dir == "" {
		return errors.WithHint(errors.New("--watch needs an override directory"), "set overrides.dir in cmdstub.toml")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var progress generator.Progress = generator.NewCLIProgress(cmd.OutOrStdout(), logger.Verbosity)
	if display.ShouldOutputJSON(cmd) {
		progress = generator.NewJSONProgress(cmd.OutOrStdout())
	}

	if err := generateOnce(ctx, cfg, progress); err != nil {
		return err
	}
	if !generateWatch {
		return nil
	}
	return generator.Watch(ctx, []string{cfg.Overrides.Dir}, generator.DefaultDebounce, func(ctx context.Context) error {
		return generateOnce(ctx, cfg, progress)
	})
}

// applyGenerateFlags lets explicitly set flags win over the configuration
func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("undocumented") {
		cfg.Generate.IncludeUndocumented = generateUndocumented
	}
	if flags.Changed("cache") {
		cfg.Cache.Enabled = generateCache
	}
	if flags.Changed("sequence-params") {
		cfg.Generate.SequenceParams = generateSequenceParams
	}
	if flags.Changed("strict") {
		cfg.Generate.Strict = generateStrict
	}
}

// generateOnce builds a pipeline, writes the stub and releases the pipeline
func generateOnce(ctx context.Context, cfg *config.Config, progress generator.Progress) error {
	p, err := generator.Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := p.Close(); cerr != nil {
			logger.Warnw("Failed to release generator resources", logger.FieldError, cerr)
		}
	}()

	_, err = p.WithProgress(progress).Run(ctx)
	return err
}
