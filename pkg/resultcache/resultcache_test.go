package resultcache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestKeySeparatesFields(t *testing.T) {
	if Key("/a", "b c") == Key("/a b", "c") {
		t.Error("keys collide across cwd/query boundary")
	}
	if Key("/a", "q") != Key("/a", "q") {
		t.Error("key not deterministic")
	}
}

func TestNop(t *testing.T) {
	var c Cache = Nop{}
	c.Set("/work", "q", "result")
	if _, ok := c.Get("/work", "q"); ok {
		t.Error("Nop cache must never hit")
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory(time.Minute)
	m.Set("/work", "handleAuth", "rendered")

	got, ok := m.Get("/work", "handleAuth")
	if !ok || got != "rendered" {
		t.Errorf("Get = %q, %v", got, ok)
	}

	if _, ok := m.Get("/work", "other"); ok {
		t.Error("unexpected hit for different query")
	}
}

func TestMemoryTTLExpiry(t *testing.T) {
	m := NewMemory(time.Minute)
	now := time.Now()
	m.now = func() time.Time { return now }

	m.Set("/work", "q", "result")

	now = now.Add(61 * time.Second)
	if _, ok := m.Get("/work", "q"); ok {
		t.Error("expired entry must miss")
	}
}

func TestMemoryInvalidate(t *testing.T) {
	m := NewMemory(time.Minute)
	m.Set("/work", "q", "result")
	m.Invalidate()
	if _, ok := m.Get("/work", "q"); ok {
		t.Error("entry survived Invalidate")
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "results.db")
	s, err := OpenSQLite(path, time.Minute)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	s.Set("/work", "handleAuth", "rendered")
	got, ok := s.Get("/work", "handleAuth")
	if !ok || got != "rendered" {
		t.Errorf("Get = %q, %v", got, ok)
	}

	// Overwrite through the upsert path.
	s.Set("/work", "handleAuth", "updated")
	if got, _ := s.Get("/work", "handleAuth"); got != "updated" {
		t.Errorf("after upsert Get = %q", got)
	}
}

func TestSQLiteTTLExpiry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	s, err := OpenSQLite(path, time.Minute)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	now := time.Now()
	s.now = func() time.Time { return now }
	s.Set("/work", "q", "result")

	now = now.Add(2 * time.Minute)
	if _, ok := s.Get("/work", "q"); ok {
		t.Error("expired entry must miss")
	}

	if err := s.Prune(); err != nil {
		t.Fatalf("Prune: %v", err)
	}
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM results").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("rows after prune = %d, want 0", count)
	}
}

func TestWatchInvalidatesOnRewrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "repositories.json")
	if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	invalidated := make(chan struct{}, 1)
	w, err := Watch(path, func() {
		select {
		case invalidated <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte(`{"rewritten":true}`), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case <-invalidated:
	case <-time.After(3 * time.Second):
		t.Fatal("invalidate callback never fired")
	}
}

func TestWatchIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "repositories.json")
	if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	invalidated := make(chan struct{}, 1)
	w, err := Watch(path, func() {
		select {
		case invalidated <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case <-invalidated:
		t.Fatal("sibling file write triggered invalidation")
	case <-time.After(500 * time.Millisecond):
	}
}
