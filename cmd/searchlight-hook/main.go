// Binary searchlight-hook is a Claude Code lifecycle hook that augments
// the built-in file-search tools (Glob, Grep, grep-family Bash commands)
// with results from an external semantic code-search CLI, when the
// working directory belongs to an indexed repository.
//
// Protocol: reads one JSON event from stdin, writes at most one JSON
// decision to stdout.
//   - Allow (pass through): no output at all
//   - Allow with context:   {"hookSpecificOutput":{"hookEventName":"...","additionalContext":"..."}}
//
// Design: fail-open. Every error path emits nothing so the hook never
// blocks the user -- a broken hook must degrade to normal tool
// behavior, not prevent searches.
package main

import (
	"fmt"
	"io"
	"os"

	"searchlight/internal/config"
	"searchlight/internal/debuglog"
	"searchlight/internal/paths"
	"searchlight/pkg/hook"
	"searchlight/pkg/repocache"
	"searchlight/pkg/resultcache"
	"searchlight/pkg/searchcli"
)

func main() {
	os.Exit(run())
}

func run() int {
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "searchlight-hook: failed to read stdin: %v\n", err)
		return 1
	}

	d, err := newDispatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "searchlight-hook: %v\n", err)
		return 1
	}

	out, err := d.Handle(input)
	if err != nil {
		// Unusable input: exit nonzero with stdout untouched so the
		// host sees a failed-but-silent hook, never a broken decision.
		d.Log.Printf("handle: %v", err)
		return 1
	}
	if out != nil {
		writeOut(out)
	}
	return 0
}

// newDispatcher wires the dispatcher from configuration and resolved
// paths. Each invocation is a fresh process, so the result cache is the
// no-op one; only the on-disk repository cache carries state across
// calls.
func newDispatcher() (*hook.Dispatcher, error) {
	p, err := paths.Resolve()
	if err != nil {
		return nil, err
	}

	cwd, _ := os.Getwd()
	cfg := config.Load(p.ConfigPath, cwd)

	client := searchcli.NewClient(cfg.CLI)
	client.SearchTimeout = cfg.SearchTimeout()
	client.SessionTimeout = cfg.SessionTimeout()

	return &hook.Dispatcher{
		Repos:   repocache.New(p.RepoCachePath),
		Client:  client,
		Results: resultcache.Nop{},
		Log:     debuglog.New(cfg.Debug),
	}, nil
}

// writeOut writes data to stdout, logging any write error to stderr.
func writeOut(data []byte) {
	if _, err := os.Stdout.Write(data); err != nil {
		fmt.Fprintf(os.Stderr, "searchlight-hook: stdout write error: %v\n", err)
	}
}
