package hook

import (
	"encoding/json"
	"strings"

	"searchlight/pkg/flowfmt"
)

// handlePostToolUse reformats the semantic-search MCP tool's own raw
// output for human display. Only emitted when at least one entry point
// was found; a result with no flows is left as the tool produced it.
func (d *Dispatcher) handlePostToolUse(input Input) *Output {
	if !isSearchMCPTool(input.ToolName) {
		return nil
	}

	raw := decodeToolResponse(input.ToolResponse)
	if raw == "" {
		return nil
	}

	parsed := flowfmt.Parse(raw)
	if len(parsed.EntryPoints) == 0 {
		return nil
	}

	query := input.ToolInput.Query
	if query == "" {
		query = input.ToolInput.Pattern
	}
	rendered := flowfmt.Render(parsed, query, 0)
	return contextOutput(EventPostToolUse, rendered)
}

// isSearchMCPTool reports whether a tool name names the semantic-search
// MCP tool (e.g. mcp__codegraph__search).
func isSearchMCPTool(name string) bool {
	return strings.HasPrefix(name, "mcp__") && strings.Contains(strings.ToLower(name), "search")
}

// decodeToolResponse accepts the two shapes the host sends: a bare
// string, or an object whose result field is a string or a nested
// object.
func decodeToolResponse(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var wrapped struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil || len(wrapped.Result) == 0 {
		return ""
	}
	if err := json.Unmarshal(wrapped.Result, &s); err == nil {
		return s
	}
	return string(wrapped.Result)
}
