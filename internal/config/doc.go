// Package config loads and validates the TOML configuration file at
// ~/.rememberit/config.toml and resolves the shared configuration directory
// used by the credential settings file, templates, and cache.
package config
