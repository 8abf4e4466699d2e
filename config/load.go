package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/cmdstub/errors"
)

// ProjectFile is the name searched for upward from the working directory
const ProjectFile = "cmdstub.toml"

var envReplacer = strings.NewReplacer(".", "_")

// Load reads the configuration from all sources.
// Precedence (lowest to highest): defaults < system < user < project < env vars.
func Load() (*Config, error) {
	return LoadWithViper(NewViper())
}

// NewViper builds a viper instance with defaults, env binding and merged config files
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("CMDSTUB")
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()

	SetDefaults(v)
	mergeConfigFiles(v, configPaths())
	return v
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	cfg.expandPaths()
	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path on top of defaults
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}
	return LoadWithViper(v)
}

func configPaths() []string {
	paths := []string{"/etc/cmdstub/config.toml"}
	if dir := HomeDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "config.toml"))
	}
	if project := findProjectConfig(); project != "" {
		paths = append(paths, project)
	}
	return paths
}

// findProjectConfig walks up from the working directory looking for cmdstub.toml
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ProjectFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// mergeConfigFiles merges each existing file in order; later files win.
// Unreadable files are skipped.
func mergeConfigFiles(v *viper.Viper, paths []string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		_ = v.MergeInConfig()
	}
}

// expandPaths resolves a leading ~ in path-valued settings
func (c *Config) expandPaths() {
	c.Output.Path = expandHome(c.Output.Path)
	c.Docs.Dir = expandHome(c.Docs.Dir)
	c.Cache.Path = expandHome(c.Cache.Path)
	c.Host.Snapshot = expandHome(c.Host.Snapshot)
	c.Overrides.Dir = expandHome(c.Overrides.Dir)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
