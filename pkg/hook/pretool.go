package hook

import (
	"context"

	"searchlight/pkg/extract"
	"searchlight/pkg/flowfmt"
	"searchlight/pkg/repocache"
)

// handlePreToolUse decides whether to attach semantic-search context to
// a built-in search tool call. Single return point per outcome: nil
// means allow unmodified.
func (d *Dispatcher) handlePreToolUse(input Input) *Output {
	switch input.ToolName {
	case ToolGlob, ToolGrep, ToolBash:
	default:
		return nil
	}
	if input.CWD == "" {
		return nil
	}

	// Cheap negative first: a known not-indexed repository skips the
	// CLI entirely. Unknown falls through and lets the CLI decide.
	lookup := d.Repos.Lookup(input.CWD)
	d.Log.Printf("repo lookup cwd=%s state=%s", input.CWD, lookup.State)
	if lookup.State == repocache.NotIndexed {
		return nil
	}

	query := extractQuery(input)
	if query == "" {
		d.Log.Printf("no query from %s input", input.ToolName)
		return nil
	}

	if cached, ok := d.Results.Get(input.CWD, query); ok {
		d.Log.Printf("result cache hit for %q", query)
		return contextOutput(EventPreToolUse, cached)
	}

	outcome := d.Client.Search(context.Background(), query, input.CWD)
	if !outcome.OK {
		d.Log.Printf("search failed (not_indexed=%v) after %s", outcome.NotIndexed, outcome.Elapsed)
		return nil
	}

	rendered := flowfmt.Render(flowfmt.Parse(outcome.Text), query, outcome.Elapsed)
	d.Results.Set(input.CWD, query, rendered)
	return contextOutput(EventPreToolUse, rendered)
}

// extractQuery picks the extraction strategy for the intercepted tool.
// Unrecognized tools yield no query.
func extractQuery(input Input) string {
	switch input.ToolName {
	case ToolGlob:
		return extract.FromGlob(input.ToolInput.Pattern)
	case ToolGrep:
		return extract.FromGrep(input.ToolInput.Pattern)
	case ToolBash:
		return extract.FromCommand(input.ToolInput.Command)
	default:
		return ""
	}
}
