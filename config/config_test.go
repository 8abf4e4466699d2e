package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	require.NoError(t, err)
	cfg.Host.Snapshot = "host.yaml"
	return *cfg
}

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "cmds.pyi", cfg.Output.Path)
	assert.Equal(t, DefaultBaseURL, cfg.Docs.BaseURL)
	assert.Equal(t, "index_all", cfg.Docs.IndexPage)
	assert.Equal(t, 30, cfg.Docs.TimeoutSeconds)
	assert.Equal(t, 5.0, cfg.Docs.RequestsPerSecond)
	assert.Equal(t, "cmdstub/dev", cfg.Docs.UserAgent)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "pages.db", filepath.Base(cfg.Cache.Path))
	assert.False(t, cfg.Generate.Strict)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cmdstub.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[docs]
dir = "`+dir+`"
requests_per_second = 0

[host]
snapshot = "snap.yaml"

[generate]
strict = true
sequence_params = true
`), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Docs.Dir)
	assert.Equal(t, 0.0, cfg.Docs.RequestsPerSecond)
	assert.Equal(t, "snap.yaml", cfg.Host.Snapshot)
	assert.True(t, cfg.Generate.Strict)
	assert.True(t, cfg.Generate.SequenceParams)
	// Untouched keys keep their defaults
	assert.Equal(t, "cmds.pyi", cfg.Output.Path)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestMergeConfigFiles_LaterWins(t *testing.T) {
	dir := t.TempDir()
	user := filepath.Join(dir, "user.toml")
	project := filepath.Join(dir, "project.toml")
	require.NoError(t, os.WriteFile(user, []byte("[output]\npath = \"user.pyi\"\n[cache]\nenabled = true\n"), 0644))
	require.NoError(t, os.WriteFile(project, []byte("[output]\npath = \"project.pyi\"\n"), 0644))

	v := viper.New()
	SetDefaults(v)
	mergeConfigFiles(v, []string{filepath.Join(dir, "absent.toml"), user, project})

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)
	assert.Equal(t, "project.pyi", cfg.Output.Path)
	assert.True(t, cfg.Cache.Enabled)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("CMDSTUB_OUTPUT_PATH", "env.pyi")
	t.Setenv("CMDSTUB_GENERATE_STRICT", "true")

	v := viper.New()
	v.SetEnvPrefix("CMDSTUB")
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)
	assert.Equal(t, "env.pyi", cfg.Output.Path)
	assert.True(t, cfg.Generate.Strict)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".cmdstub", "pages.db"), expandHome("~/.cmdstub/pages.db"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
	assert.Equal(t, "~user/x", expandHome("~user/x"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults with snapshot", func(c *Config) {}, ""},
		{"empty output", func(c *Config) { c.Output.Path = "" }, "output.path"},
		{"no host", func(c *Config) { c.Host.Snapshot = "" }, "host.snapshot"},
		{"command host", func(c *Config) { c.Host.Snapshot = ""; c.Host.Command = "mayapy dump.py" }, ""},
		{"bad scheme", func(c *Config) { c.Docs.BaseURL = "ftp://example.com/{version}/" }, "docs.base_url"},
		{"empty base url", func(c *Config) { c.Docs.BaseURL = "" }, "docs.base_url"},
		{"zero timeout", func(c *Config) { c.Docs.TimeoutSeconds = 0 }, "docs.timeout_seconds"},
		{"negative rate", func(c *Config) { c.Docs.RequestsPerSecond = -1 }, "docs.requests_per_second"},
		{"zero rate is unthrottled", func(c *Config) { c.Docs.RequestsPerSecond = 0 }, ""},
		{"cache without path", func(c *Config) { c.Cache.Enabled = true; c.Cache.Path = "" }, "cache.path"},
		{"missing docs dir", func(c *Config) { c.Docs.Dir = "/does/not/exist" }, "docs.dir"},
		{"missing overrides dir", func(c *Config) { c.Overrides.Dir = "/does/not/exist" }, "overrides.dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_DocsDirNotDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	cfg := validConfig(t)
	cfg.Docs.Dir = file
	assert.ErrorContains(t, cfg.Validate(), "not a directory")
}

func TestSave_RotatesBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := validConfig(t)

	for i, out := range []string{"a.pyi", "b.pyi", "c.pyi", "d.pyi", "e.pyi"} {
		cfg.Output.Path = out
		require.NoError(t, Save(&cfg, path), "save %d", i)
	}

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "e.pyi", loaded.Output.Path)

	back1, err := LoadFromFile(path + ".back1")
	require.NoError(t, err)
	assert.Equal(t, "d.pyi", back1.Output.Path)

	back3, err := LoadFromFile(path + ".back3")
	require.NoError(t, err)
	assert.Equal(t, "b.pyi", back3.Output.Path)

	_, err = os.Stat(path + ".back4")
	assert.True(t, os.IsNotExist(err))
}

func TestMarshal(t *testing.T) {
	cfg := validConfig(t)
	data, err := Marshal(&cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[docs]")
	assert.Contains(t, string(data), "index_page = 'index_all'")
}
