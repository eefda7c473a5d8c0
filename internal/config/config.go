// Package config loads searchlight configuration in layers: built-in
// defaults, then the global TOML file under the searchlight home, then a
// project-local .searchlight.yaml in the working directory, then
// environment variables. Later layers win.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// projectFileName is the per-project override file, looked up in cwd.
const projectFileName = ".searchlight.yaml"

// Config is the effective hook configuration.
type Config struct {
	// CLI is the external semantic-search executable.
	CLI string `toml:"cli" yaml:"cli"`
	// Debug routes diagnostic lines to stderr.
	Debug bool `toml:"debug" yaml:"debug"`
	// SearchTimeoutMS bounds interactive search calls.
	SearchTimeoutMS int `toml:"search_timeout_ms" yaml:"search_timeout_ms"`
	// SessionTimeoutMS bounds session-start list/schema calls.
	SessionTimeoutMS int `toml:"session_timeout_ms" yaml:"session_timeout_ms"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		CLI:              "codegraph",
		SearchTimeoutMS:  4000,
		SessionTimeoutMS: 8000,
	}
}

// Load assembles the effective configuration. configPath is the global
// TOML file (may be absent); projectDir is searched for
// .searchlight.yaml (may be empty to skip). A malformed layer is
// skipped, never fatal: configuration trouble must not break the hook.
func Load(configPath, projectDir string) Config {
	cfg := Default()

	if raw, err := os.ReadFile(configPath); err == nil {
		var fileCfg Config
		if err := toml.Unmarshal(raw, &fileCfg); err == nil {
			merge(&cfg, fileCfg)
		}
	}

	if projectDir != "" {
		raw, err := os.ReadFile(filepath.Join(projectDir, projectFileName))
		if err == nil {
			var projCfg Config
			if err := yaml.Unmarshal(raw, &projCfg); err == nil {
				merge(&cfg, projCfg)
			}
		}
	}

	applyEnv(&cfg)
	return cfg
}

// merge overlays the set fields of b onto a. The zero Debug value
// cannot be distinguished from "unset", so Debug only ever turns on.
func merge(a *Config, b Config) {
	if b.CLI != "" {
		a.CLI = b.CLI
	}
	if b.Debug {
		a.Debug = true
	}
	if b.SearchTimeoutMS > 0 {
		a.SearchTimeoutMS = b.SearchTimeoutMS
	}
	if b.SessionTimeoutMS > 0 {
		a.SessionTimeoutMS = b.SessionTimeoutMS
	}
}

// applyEnv overlays environment variables onto cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv("SEARCHLIGHT_CLI"); v != "" {
		cfg.CLI = v
	}
	if v := os.Getenv("SEARCHLIGHT_DEBUG"); v == "1" || v == "true" {
		cfg.Debug = true
	}
	if v := os.Getenv("SEARCHLIGHT_SEARCH_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.SearchTimeoutMS = ms
		}
	}
	if v := os.Getenv("SEARCHLIGHT_SESSION_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.SessionTimeoutMS = ms
		}
	}
}

// SearchTimeout returns the search timeout as a duration.
func (c Config) SearchTimeout() time.Duration {
	return time.Duration(c.SearchTimeoutMS) * time.Millisecond
}

// SessionTimeout returns the session-call timeout as a duration.
func (c Config) SessionTimeout() time.Duration {
	return time.Duration(c.SessionTimeoutMS) * time.Millisecond
}
