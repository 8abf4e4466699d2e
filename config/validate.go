package config

import (
	"net/url"
	"os"
	"strings"

	"github.com/teranos/cmdstub/errors"
)

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Output.Path == "" {
		return errors.New("output.path cannot be empty")
	}

	if c.Docs.Dir != "" {
		info, err := os.Stat(c.Docs.Dir)
		if err != nil {
			return errors.Wrapf(err, "docs.dir %s", c.Docs.Dir)
		}
		if !info.IsDir() {
			return errors.Newf("docs.dir %s is not a directory", c.Docs.Dir)
		}
	} else {
		if c.Docs.BaseURL == "" {
			return errors.WithHint(
				errors.New("docs.base_url cannot be empty when docs.dir is unset"),
				"set docs.dir to read pages from disk instead")
		}
		u, err := url.Parse(strings.ReplaceAll(c.Docs.BaseURL, "{version}", "0"))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return errors.Newf("docs.base_url must be an http(s) URL, got %q", c.Docs.BaseURL)
		}
		if c.Docs.IndexPage == "" {
			return errors.New("docs.index_page cannot be empty")
		}
	}

	if c.Docs.TimeoutSeconds <= 0 {
		return errors.Newf("docs.timeout_seconds must be > 0, got %d", c.Docs.TimeoutSeconds)
	}
	// 0 = unthrottled, negative = invalid
	if c.Docs.RequestsPerSecond < 0 {
		return errors.Newf("docs.requests_per_second must be >= 0, got %f", c.Docs.RequestsPerSecond)
	}

	if c.Cache.Enabled && c.Cache.Path == "" {
		return errors.New("cache.path cannot be empty when cache is enabled")
	}

	if c.Host.Snapshot == "" && c.Host.Command == "" {
		return errors.WithHint(
			errors.New("one of host.snapshot or host.command is required"),
			"capture a snapshot with the host's dump script and point host.snapshot at it")
	}
	if c.Host.TimeoutSeconds <= 0 {
		return errors.Newf("host.timeout_seconds must be > 0, got %d", c.Host.TimeoutSeconds)
	}

	if c.Overrides.Dir != "" {
		if _, err := os.Stat(c.Overrides.Dir); err != nil {
			return errors.Wrapf(err, "overrides.dir %s", c.Overrides.Dir)
		}
	}

	return nil
}
