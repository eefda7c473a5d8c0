// Package hook implements the lifecycle-hook decision engine: it reads
// one host event, decides whether to augment the built-in tool with
// semantic-search context, and produces at most one decision object.
//
// The contract with the host is fail-open. Emitting nothing means "no
// comment, allow the built-in tool"; no internal fault may ever block or
// alter the original tool call.
package hook

import "encoding/json"

// Lifecycle event names as sent by the host.
const (
	EventSessionStart = "SessionStart"
	EventPreToolUse   = "PreToolUse"
	EventPostToolUse  = "PostToolUse"
)

// Built-in tool names whose PreToolUse events we intercept.
const (
	ToolGlob = "Glob"
	ToolGrep = "Grep"
	ToolBash = "Bash"
)

// sourceStartup is the only SessionStart source worth augmenting;
// resume/clear/compact sessions already carry context.
const sourceStartup = "startup"

// Input is the event payload read from stdin. Fields beyond
// hook_event_name are event-dependent.
type Input struct {
	HookEventName string          `json:"hook_event_name"`
	Source        string          `json:"source,omitempty"`
	CWD           string          `json:"cwd,omitempty"`
	ToolName      string          `json:"tool_name,omitempty"`
	ToolInput     ToolInput       `json:"tool_input,omitempty"`
	ToolResponse  json.RawMessage `json:"tool_response,omitempty"`
}

// ToolInput carries the tool arguments we care about: a pattern for
// glob/grep-like tools, a command line for shell tools, a query for the
// semantic-search MCP tool.
type ToolInput struct {
	Pattern string `json:"pattern,omitempty"`
	Command string `json:"command,omitempty"`
	Query   string `json:"query,omitempty"`
}

// Output is the decision envelope written to stdout. Absence of output
// is itself a decision: allow, no comment.
type Output struct {
	HookSpecificOutput *SpecificOutput `json:"hookSpecificOutput,omitempty"`
	SuppressOutput     bool            `json:"suppressOutput,omitempty"`
}

// SpecificOutput is the per-event payload carrying injected context.
type SpecificOutput struct {
	HookEventName     string `json:"hookEventName"`
	AdditionalContext string `json:"additionalContext,omitempty"`
}

// contextOutput builds the one envelope shape this hook ever emits.
func contextOutput(event, context string) *Output {
	return &Output{
		HookSpecificOutput: &SpecificOutput{
			HookEventName:     event,
			AdditionalContext: context,
		},
	}
}
