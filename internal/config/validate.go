package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks configuration values for consistency.
func (c *Config) Validate() error {
	for name, value := range map[string]string{
		"remote.base_url":   c.Remote.BaseURL,
		"remote.editor_url": c.Remote.EditorURL,
		"remote.sync_url":   c.Remote.SyncURL,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("config: %s must not be empty", name)
		}
		parsed, err := url.Parse(value)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: %s is not a valid URL: %q", name, value)
		}
	}

	if c.Remote.TimeoutSeconds <= 0 {
		return fmt.Errorf("config: remote.timeout_seconds must be positive, got %d", c.Remote.TimeoutSeconds)
	}
	if c.Remote.ModelID <= 0 {
		return fmt.Errorf("config: remote.model_id must be positive, got %d", c.Remote.ModelID)
	}
	if c.Format.ImageMaxBytes <= 0 {
		return fmt.Errorf("config: format.image_max_bytes must be positive, got %d", c.Format.ImageMaxBytes)
	}
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Path) == "" {
		return fmt.Errorf("config: cache.path must be set when cache.enabled is true")
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: logging.format must be console or json, got %q", c.Logging.Format)
	}

	if theme := strings.TrimSpace(c.Format.DefaultTheme); theme != "" && theme != "random" {
		if !knownTheme(theme) {
			return fmt.Errorf("config: format.default_theme %q is not a known theme", theme)
		}
	}
	return nil
}

func knownTheme(name string) bool {
	switch name {
	case "gradient", "dark", "light", "blue", "purple", "green", "orange", "plain", "code":
		return true
	}
	return false
}
