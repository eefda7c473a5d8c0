// Package repocache resolves whether a working directory belongs to a
// repository the external semantic-search CLI has already indexed, using
// the CLI's on-disk repository cache. The cache is written by the
// indexing side; this package only reads it. The whole point is to skip
// spawning the CLI when the answer is already known to be "not indexed".
package repocache

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// TTL is how long a cache file is trusted after it was written. Past
// this, the answer is Unknown rather than a possibly wrong NotIndexed: a
// repository may have been indexed since the file was written.
const TTL = 10 * time.Minute

// State is the tri-state answer for a lookup.
type State int

const (
	// Unknown means the cache could not answer; callers must fall back
	// to asking the CLI directly.
	Unknown State = iota
	// Indexed means semantic search is available for the repository.
	Indexed
	// NotIndexed means the repository is definitively not indexed and
	// the CLI call can be skipped.
	NotIndexed
)

// String returns a human-readable label for the state.
func (s State) String() string {
	switch s {
	case Indexed:
		return "indexed"
	case NotIndexed:
		return "not indexed"
	default:
		return "unknown"
	}
}

// Result is the outcome of resolving a working directory.
type Result struct {
	State    State
	RepoID   string
	RepoName string
}

// Entry is one known repository in the cache file.
type Entry struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	SourcePath string `json:"source_path"`
	Indexed    bool   `json:"indexed"`
}

// payload is the cache file's repository listing. path_index and
// id_index map keys to positions in repositories and are rebuilt
// wholesale by the producer on every write.
type payload struct {
	Repositories []Entry        `json:"repositories"`
	PathIndex    map[string]int `json:"path_index"`
	IDIndex      map[string]int `json:"id_index"`
}

// envelope is the generic persisted wrapper: the payload plus its write
// time in milliseconds since epoch.
type envelope struct {
	Data     payload `json:"data"`
	CachedAt int64   `json:"cached_at"`
}

// Reader reads and interprets one repository cache file.
type Reader struct {
	path string
	now  func() time.Time
}

// New returns a Reader over the cache file at path.
func New(path string) *Reader {
	return &Reader{path: path, now: time.Now}
}

// Lookup resolves cwd against the cache.
//
// A missing, malformed, or stale cache file answers Unknown. A cwd that
// matches a cached source path exactly, or sits under one (prefix plus
// path separator), resolves to that repository's indexed flag; when
// several cached paths nest, the longest prefix wins. A cwd under none
// of the cached paths is definitively NotIndexed: an un-indexed
// directory cannot appear in the cache any other way.
func (r *Reader) Lookup(cwd string) Result {
	env, ok := r.read()
	if !ok {
		return Result{State: Unknown}
	}

	if r.now().Sub(time.UnixMilli(env.CachedAt)) > TTL {
		return Result{State: Unknown}
	}

	data := env.Data
	if data.Repositories == nil || data.PathIndex == nil {
		return Result{State: Unknown}
	}

	cwd = trimTrailingSep(cwd)

	// Exact match first.
	if idx, ok := data.PathIndex[cwd]; ok {
		return resolve(data, idx)
	}

	// Prefix match: cwd inside a cached repository root. Longest prefix
	// wins so nested repositories resolve to the innermost one.
	best := -1
	bestLen := -1
	for sourcePath, idx := range data.PathIndex {
		sourcePath = trimTrailingSep(sourcePath)
		if sourcePath == "" {
			continue
		}
		if strings.HasPrefix(cwd, sourcePath+"/") && len(sourcePath) > bestLen {
			best = idx
			bestLen = len(sourcePath)
		}
	}
	if best >= 0 {
		return resolve(data, best)
	}

	return Result{State: NotIndexed}
}

// read loads and parses the cache file. It takes a shared flock so a
// concurrent cache rewrite by the indexing process is not read half way
// through; if the lock cannot be taken the read proceeds anyway.
func (r *Reader) read() (envelope, bool) {
	if _, err := os.Stat(r.path); err != nil {
		return envelope{}, false
	}

	lock := flock.New(r.path)
	if locked, err := lock.TryRLock(); err == nil && locked {
		defer func() { _ = lock.Unlock() }()
	}

	raw, err := os.ReadFile(r.path)
	if err != nil {
		return envelope{}, false
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return envelope{}, false
	}
	return env, true
}

// resolve maps an index into the repository list to a Result, guarding
// against an index map that points outside the list.
func resolve(data payload, idx int) Result {
	if idx < 0 || idx >= len(data.Repositories) {
		return Result{State: Unknown}
	}
	entry := data.Repositories[idx]
	state := NotIndexed
	if entry.Indexed {
		state = Indexed
	}
	return Result{State: state, RepoID: entry.ID, RepoName: entry.FullName}
}

func trimTrailingSep(p string) string {
	for len(p) > 1 && strings.HasSuffix(p, "/") {
		p = p[:len(p)-1]
	}
	return p
}
