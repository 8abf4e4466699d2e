package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/teranos/cmdstub/version"
)

const (
	// DefaultBaseURL is the online command reference; {version} is the major host version
	DefaultBaseURL = "https://help.autodesk.com/cloudhelp/{version}/ENU/Maya-Tech-Docs/CommandsPython/"

	DefaultIndexPage = "index_all"
	DefaultOutput    = "cmds.pyi"

	// DefaultDirPermissions for ~/.cmdstub
	DefaultDirPermissions = 0750
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output.path", DefaultOutput)

	v.SetDefault("docs.base_url", DefaultBaseURL)
	v.SetDefault("docs.index_page", DefaultIndexPage)
	v.SetDefault("docs.dir", "")
	v.SetDefault("docs.version", "")
	v.SetDefault("docs.timeout_seconds", 30)
	v.SetDefault("docs.requests_per_second", 5.0)
	v.SetDefault("docs.user_agent", version.Get().UserAgent())
	v.SetDefault("docs.block_private_ip", false)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.path", defaultCachePath())

	v.SetDefault("host.snapshot", "")
	v.SetDefault("host.command", "")
	v.SetDefault("host.timeout_seconds", 300)

	v.SetDefault("overrides.dir", "")

	v.SetDefault("generate.include_undocumented", false)
	v.SetDefault("generate.sequence_params", false)
	v.SetDefault("generate.strict", false)
}

// HomeDir returns ~/.cmdstub, or "" if the home directory is unknown
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cmdstub")
}

func defaultCachePath() string {
	if dir := HomeDir(); dir != "" {
		return filepath.Join(dir, "pages.db")
	}
	return "pages.db"
}
