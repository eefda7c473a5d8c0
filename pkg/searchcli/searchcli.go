// Package searchcli invokes the external semantic-search CLI as a
// subprocess. Every call is bounded by a timeout and returns a value,
// never a propagated fault: the hook layer above must always be able to
// fall back to the built-in tool.
package searchcli

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultBin is the external CLI executable, overridable via the
// SEARCHLIGHT_CLI environment variable.
const DefaultBin = "codegraph"

const (
	// DefaultSearchTimeout bounds interactive search calls. It must stay
	// well under the host's own hook timeout.
	DefaultSearchTimeout = 4 * time.Second
	// DefaultSessionTimeout bounds the slower session-start calls
	// (repository listing, schema description).
	DefaultSessionTimeout = 8 * time.Second

	gitTimeout  = 2 * time.Second
	searchLimit = "8"
)

// notIndexedIndicators are the substrings in CLI output that mean the
// target directory has no indexed repository, as opposed to a transient
// failure. Full phrases only: a bare "not found" would also match
// exec's own missing-binary message, which must classify as a plain
// failure.
var notIndexedIndicators = []string{
	"not indexed",
	"repository not found",
	"no analyzed repository",
}

// Outcome is the result of one search invocation.
type Outcome struct {
	OK         bool
	Text       string
	Elapsed    time.Duration
	NotIndexed bool
}

// Runner executes a command and returns its stdout. Failures must fold
// captured stderr into the returned error so callers can classify them.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner implements Runner using os/exec.
type ExecRunner struct{}

// Run executes a command and returns its stdout as bytes.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader("")
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, exitErr.Stderr)
		}
		return nil, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return out, nil
}

// Client wraps the external CLI binary.
type Client struct {
	Bin            string
	Runner         Runner
	SearchTimeout  time.Duration
	SessionTimeout time.Duration
}

// NewClient returns a Client over the given executable with default
// timeouts and a real subprocess runner. An empty bin falls back to
// DefaultBin.
func NewClient(bin string) *Client {
	if bin == "" {
		bin = DefaultBin
	}
	return &Client{
		Bin:            bin,
		Runner:         ExecRunner{},
		SearchTimeout:  DefaultSearchTimeout,
		SessionTimeout: DefaultSessionTimeout,
	}
}

// Search runs a semantic search for query scoped to cwd. The outcome is
// always a value: on failure NotIndexed distinguishes "this repository
// is not indexed" from everything else (timeout, nonzero exit, missing
// binary).
func (c *Client) Search(ctx context.Context, query, cwd string) Outcome {
	ctx, cancel := context.WithTimeout(ctx, c.SearchTimeout)
	defer cancel()

	start := time.Now()
	out, err := c.Runner.Run(ctx, c.Bin,
		"search", query, cwd, "--include-content", "--limit", searchLimit, "-f", "json")
	elapsed := time.Since(start)

	if err != nil {
		return Outcome{Elapsed: elapsed, NotIndexed: isNotIndexed(err.Error())}
	}

	return Outcome{
		OK:      true,
		Text:    ShortenPaths(string(out), cwd),
		Elapsed: elapsed,
	}
}

// List returns the CLI's human-readable listing of known repositories.
func (c *Client) List(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.SessionTimeout)
	defer cancel()

	out, err := c.Runner.Run(ctx, c.Bin, "list")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Schema returns the CLI's static schema description text.
func (c *Client) Schema(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.SessionTimeout)
	defer cancel()

	out, err := c.Runner.Run(ctx, c.Bin, "schema")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// RepoDisplayName resolves a short owner/repo display name for cwd from
// its git origin URL, falling back to the directory basename. Best
// effort; never fails.
func (c *Client) RepoDisplayName(ctx context.Context, cwd string) string {
	ctx, cancel := context.WithTimeout(ctx, gitTimeout)
	defer cancel()

	out, err := c.Runner.Run(ctx, "git", "-C", cwd, "remote", "get-url", "origin")
	if err == nil {
		if name := ownerRepoFromURL(strings.TrimSpace(string(out))); name != "" {
			return name
		}
	}
	return baseName(cwd)
}

// ShortenPaths rewrites absolute cwd-rooted paths in text to ./ relative
// form. Applying it to already-shortened text changes nothing: matches
// preceded by a dot are part of an earlier "./" rewrite and stay as-is,
// even when a relative path happens to start with cwd's last segment.
func ShortenPaths(text, cwd string) string {
	cwd = strings.TrimRight(cwd, "/")
	if cwd == "" {
		return text
	}

	needle := cwd + "/"
	var b strings.Builder
	for {
		i := strings.Index(text, needle)
		if i < 0 {
			b.WriteString(text)
			return b.String()
		}
		if i > 0 && text[i-1] == '.' {
			b.WriteString(text[:i+len(needle)])
		} else {
			b.WriteString(text[:i])
			b.WriteString("./")
		}
		text = text[i+len(needle):]
	}
}

// isNotIndexed reports whether failure text indicates an un-indexed
// repository rather than a transient error.
func isNotIndexed(msg string) bool {
	msg = strings.ToLower(msg)
	for _, ind := range notIndexedIndicators {
		if strings.Contains(msg, ind) {
			return true
		}
	}
	return false
}

// ownerRepoFromURL reduces a git remote URL to "owner/repo". Handles
// both scp-like (git@host:owner/repo.git) and URL (https://host/owner/
// repo.git) forms. Returns "" when the URL does not reduce cleanly.
func ownerRepoFromURL(url string) string {
	url = strings.TrimSuffix(strings.TrimSpace(url), ".git")

	switch {
	case strings.Contains(url, "://"):
		// URL form: strip scheme and host.
		rest := url[strings.Index(url, "://")+3:]
		slash := strings.Index(rest, "/")
		if slash < 0 {
			return ""
		}
		url = rest[slash+1:]
	case strings.Contains(url, ":"):
		// scp-like form: everything after the colon.
		url = url[strings.LastIndex(url, ":")+1:]
	}

	parts := strings.Split(strings.Trim(url, "/"), "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return ""
	}
	return parts[len(parts)-2] + "/" + parts[len(parts)-1]
}

// baseName returns the final path element of p, or "" for empty input.
func baseName(p string) string {
	p = strings.TrimRight(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
