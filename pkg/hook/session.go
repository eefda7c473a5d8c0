package hook

import (
	"context"
	"os/exec"
	"strings"
)

// handleSessionStart injects a repository listing and the search schema
// at the start of a fresh session. Both sub-steps are best effort with
// independent timeouts; the event never fails because one of them did.
func (d *Dispatcher) handleSessionStart(input Input) *Output {
	if input.Source != sourceStartup {
		return nil
	}

	d.spawnUpdateNudge()

	var sections []string

	if listing, err := d.Client.List(context.Background()); err == nil && listing != "" {
		sections = append(sections, "Indexed repositories:\n"+listing)
	} else if err != nil {
		d.Log.Printf("list repositories: %v", err)
	}

	if schema, err := d.Client.Schema(context.Background()); err == nil && schema != "" {
		sections = append(sections, "Semantic search schema:\n"+schema)
	} else if err != nil {
		d.Log.Printf("fetch schema: %v", err)
	}

	if len(sections) == 0 {
		return nil
	}
	return contextOutput(EventSessionStart, strings.Join(sections, "\n\n"))
}

// spawnUpdateNudge fires a detached version check on the external CLI.
// Deliberate fire-and-forget: no pipes, no awaited result, errors
// ignored. The background Wait only reaps the child when this process
// outlives it. It shares no error path with the decision logic above.
func (d *Dispatcher) spawnUpdateNudge() {
	cmd := exec.Command(d.Client.Bin, "version", "--check")
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return
	}
	go func() { _ = cmd.Wait() }()
}
