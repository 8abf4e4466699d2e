package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/teranos/cmdstub/config"
	"github.com/teranos/cmdstub/display"
	"github.com/teranos/cmdstub/errors"
)

// ConfigCmd groups the configuration subcommands
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage cmdstub configuration",
	Long: `Display and manage cmdstub configuration.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (CMDSTUB_* prefix, e.g. CMDSTUB_HOST_SNAPSHOT)
3. Project config (./cmdstub.toml, searched upward)
4. User config (~/.cmdstub/config.toml)
5. System config (/etc/cmdstub/config.toml)
6. Default values

Examples:
  cmdstub config show
  cmdstub config show --format yaml
  cmdstub config validate
  cmdstub config init`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return showConfig(cmd.OutOrStdout(), cfg, configFormat)
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return errors.Wrap(err, "configuration validation failed")
		}
		pterm.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprint("Configuration is valid"))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with the default values",
	Long: `Write a config file holding every setting at its default value.

The path defaults to ./cmdstub.toml. An existing file is only replaced with
--force, and is then kept as path.back1.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ProjectFile
		if len(args) == 1 {
			path = args[0]
		}
		if err := initConfig(path, configForce); err != nil {
			return err
		}
		pterm.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprintf("Wrote %s", path))
		return nil
	},
}

var (
	configFormat string
	configForce  bool
)

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Replace an existing file")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configValidateCmd)
	ConfigCmd.AddCommand(configInitCmd)
}

func showConfig(w io.Writer, cfg *config.Config, format string) error {
	switch format {
	case "toml":
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "# cmdstub configuration\n%s", data)

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		fmt.Fprintf(w, "# cmdstub configuration\n%s", data)

	case "json":
		return display.WriteJSON(w, cfg)

	default:
		return errors.Newf("unsupported format: %s (supported: toml, json, yaml)", format)
	}
	return nil
}

func initConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.WithHint(errors.Newf("%s already exists", path), "use --force to replace it")
	}

	v := viper.New()
	config.SetDefaults(v)
	cfg, err := config.LoadWithViper(v)
	if err != nil {
		return err
	}
	return config.Save(cfg, path)
}
