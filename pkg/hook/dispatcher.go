package hook

import (
	"encoding/json"
	"errors"

	"searchlight/internal/debuglog"
	"searchlight/pkg/repocache"
	"searchlight/pkg/resultcache"
	"searchlight/pkg/searchcli"
)

// ErrBadInput marks stdin that could not be parsed as an event. The
// caller exits nonzero (still writing nothing to stdout) so the host can
// count the failure without the tool call being affected.
var ErrBadInput = errors.New("unparsable hook input")

// Dispatcher routes one lifecycle event to its handler.
type Dispatcher struct {
	Repos   *repocache.Reader
	Client  *searchcli.Client
	Results resultcache.Cache
	Log     *debuglog.Logger
}

// Handle processes one raw event and returns the encoded decision, or
// nil for "emit nothing, allow default". The only error it returns is
// ErrBadInput; every fault below this point, panics included, degrades
// to nil output.
func (d *Dispatcher) Handle(raw []byte) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.Log.Printf("recovered: %v", r)
			out = nil
			err = nil
		}
	}()

	var input Input
	if jsonErr := json.Unmarshal(raw, &input); jsonErr != nil {
		return nil, ErrBadInput
	}

	var decision *Output
	switch input.HookEventName {
	case EventSessionStart:
		decision = d.handleSessionStart(input)
	case EventPreToolUse:
		decision = d.handlePreToolUse(input)
	case EventPostToolUse:
		decision = d.handlePostToolUse(input)
	default:
		d.Log.Printf("ignoring event %q", input.HookEventName)
		return nil, nil
	}

	if decision == nil {
		return nil, nil
	}

	encoded, marshalErr := json.Marshal(decision)
	if marshalErr != nil {
		d.Log.Printf("marshal decision: %v", marshalErr)
		return nil, nil
	}
	return encoded, nil
}
