// Package paths resolves searchlight's state file locations, with
// environment overrides.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// homeDirName is searchlight's own state directory under $HOME.
const homeDirName = ".searchlight"

// cliDirName is the external CLI's state directory, where the
// repository cache is written by the indexing side.
const cliDirName = ".codegraph"

// Paths holds all resolved state file paths.
// Use Resolve() to populate this struct with defaults + env overrides.
type Paths struct {
	Home            string // ~/.searchlight or SEARCHLIGHT_HOME
	ConfigPath      string // config.toml under Home
	ResultCachePath string // results.db under Home
	RepoCachePath   string // ~/.codegraph/repositories.json or SEARCHLIGHT_REPO_CACHE
}

// Resolve returns all searchlight paths, respecting env var overrides.
// Environment variables:
//   - SEARCHLIGHT_HOME: base directory for searchlight state (default: ~/.searchlight)
//   - SEARCHLIGHT_REPO_CACHE: the external CLI's repository cache file
//     (default: ~/.codegraph/repositories.json)
//
// The repository cache lives under the external CLI's directory, not
// ours: the indexing process owns that file and we only read it.
func Resolve() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home dir: %w", err)
	}

	slHome := os.Getenv("SEARCHLIGHT_HOME")
	if slHome == "" {
		slHome = filepath.Join(home, homeDirName)
	}

	repoCache := os.Getenv("SEARCHLIGHT_REPO_CACHE")
	if repoCache == "" {
		repoCache = filepath.Join(home, cliDirName, "repositories.json")
	}

	return &Paths{
		Home:            slHome,
		ConfigPath:      filepath.Join(slHome, "config.toml"),
		ResultCachePath: filepath.Join(slHome, "results.db"),
		RepoCachePath:   repoCache,
	}, nil
}
