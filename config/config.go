// Package config loads cmdstub settings from TOML files, environment
// variables (CMDSTUB_ prefix) and built-in defaults using viper.
package config

// Config represents the cmdstub configuration
type Config struct {
	Output    OutputConfig    `mapstructure:"output" toml:"output" yaml:"output"`
	Docs      DocsConfig      `mapstructure:"docs" toml:"docs" yaml:"docs"`
	Cache     CacheConfig     `mapstructure:"cache" toml:"cache" yaml:"cache"`
	Host      HostConfig      `mapstructure:"host" toml:"host" yaml:"host"`
	Overrides OverridesConfig `mapstructure:"overrides" toml:"overrides" yaml:"overrides"`
	Generate  GenerateConfig  `mapstructure:"generate" toml:"generate" yaml:"generate"`
}

// OutputConfig configures where the stub is written
type OutputConfig struct {
	Path string `mapstructure:"path" toml:"path" yaml:"path"`
}

// DocsConfig configures the documentation source
type DocsConfig struct {
	// BaseURL may contain a {version} placeholder
	BaseURL           string  `mapstructure:"base_url" toml:"base_url" yaml:"base_url"`
	IndexPage         string  `mapstructure:"index_page" toml:"index_page" yaml:"index_page"`
	Dir               string  `mapstructure:"dir" toml:"dir" yaml:"dir"`             // offline pages, wins over base_url
	Version           string  `mapstructure:"version" toml:"version" yaml:"version"` // empty = derived from host version
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" toml:"timeout_seconds" yaml:"timeout_seconds"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" toml:"requests_per_second" yaml:"requests_per_second"`
	UserAgent         string  `mapstructure:"user_agent" toml:"user_agent" yaml:"user_agent"`
	BlockPrivateIP    bool    `mapstructure:"block_private_ip" toml:"block_private_ip" yaml:"block_private_ip"`
}

// CacheConfig configures the SQLite page cache
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" toml:"path" yaml:"path"`
}

// HostConfig configures how the live API is introspected
type HostConfig struct {
	Snapshot       string `mapstructure:"snapshot" toml:"snapshot" yaml:"snapshot"` // YAML snapshot, wins over command
	Command        string `mapstructure:"command" toml:"command" yaml:"command"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" toml:"timeout_seconds" yaml:"timeout_seconds"`
}

// OverridesConfig points at a directory of replacement override tables
type OverridesConfig struct {
	Dir string `mapstructure:"dir" toml:"dir" yaml:"dir"`
}

// GenerateConfig holds generation switches
type GenerateConfig struct {
	IncludeUndocumented bool `mapstructure:"include_undocumented" toml:"include_undocumented" yaml:"include_undocumented"`
	SequenceParams      bool `mapstructure:"sequence_params" toml:"sequence_params" yaml:"sequence_params"`
	Strict              bool `mapstructure:"strict" toml:"strict" yaml:"strict"`
}
