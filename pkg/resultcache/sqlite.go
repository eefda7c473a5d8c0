package resultcache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // SQLite driver for database/sql
)

// resultsSchemaDDL creates the results table. Keys are xxhash values of
// cwd+query; the raw pair is kept alongside for inspection.
const resultsSchemaDDL = `
CREATE TABLE IF NOT EXISTS results (
	key TEXT PRIMARY KEY,
	cwd TEXT NOT NULL,
	query TEXT NOT NULL,
	result TEXT NOT NULL,
	cached_at INTEGER NOT NULL
);
`

// SQLite is a durable result cache for long-lived embedders.
type SQLite struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// OpenSQLite opens or creates a result cache database at path. Zero ttl
// means DefaultTTL.
func OpenSQLite(path string, ttl time.Duration) (*SQLite, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open result cache %s: %w", path, err)
	}

	ctx := context.Background()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping result cache %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode on %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy_timeout on %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, resultsSchemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create results schema: %w", err)
	}

	return &SQLite{db: db, ttl: ttl, now: time.Now}, nil
}

// Get returns a fresh cached result; a read error is a miss.
func (s *SQLite) Get(cwd, query string) (string, bool) {
	key := strconv.FormatUint(Key(cwd, query), 16)

	var result string
	var cachedAt int64
	err := s.db.QueryRowContext(context.Background(),
		"SELECT result, cached_at FROM results WHERE key = ?", key).
		Scan(&result, &cachedAt)
	if err != nil {
		return "", false
	}
	if s.now().Sub(time.UnixMilli(cachedAt)) > s.ttl {
		return "", false
	}
	return result, true
}

// Set stores a result; write errors are swallowed, the cache is an
// optimization only.
func (s *SQLite) Set(cwd, query, result string) {
	key := strconv.FormatUint(Key(cwd, query), 16)
	_, _ = s.db.ExecContext(context.Background(),
		`INSERT INTO results (key, cwd, query, result, cached_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET result = excluded.result, cached_at = excluded.cached_at`,
		key, cwd, query, result, s.now().UnixMilli())
}

// Prune deletes expired rows.
func (s *SQLite) Prune() error {
	cutoff := s.now().Add(-s.ttl).UnixMilli()
	_, err := s.db.ExecContext(context.Background(),
		"DELETE FROM results WHERE cached_at < ?", cutoff)
	if err != nil {
		return fmt.Errorf("prune result cache: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
