package flowfmt

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"
)

func structuredRaw(t *testing.T, results []map[string]any) string {
	t.Helper()
	raw, err := json.Marshal(map[string]any{"results": results})
	if err != nil {
		t.Fatal(err)
	}
	return string(raw)
}

func symbol(name string, step int) map[string]any {
	return map[string]any{"name": name, "step_index": step}
}

func TestParseStructured(t *testing.T) {
	raw := structuredRaw(t, []map[string]any{
		{"symbols": []map[string]any{
			symbol("handleAuth", 0),
			symbol("validate", 1),
			symbol("respond", 2),
		}},
	})

	p := Parse(raw)
	if len(p.EntryPoints) != 1 {
		t.Fatalf("entry points = %d, want 1", len(p.EntryPoints))
	}
	e := p.EntryPoints[0]
	if e.Name != "handleAuth" {
		t.Errorf("entry = %q", e.Name)
	}
	if len(e.Flows) != 1 || strings.Join(e.Flows[0], ",") != "validate,respond" {
		t.Errorf("flows = %v", e.Flows)
	}
}

func TestParseStructuredNestedUnderResult(t *testing.T) {
	raw := `{"result":{"results":[{"symbols":[{"name":"login","step_index":0},{"name":"checkPassword","step_index":1}]}]}}`
	p := Parse(raw)
	if len(p.EntryPoints) != 1 || p.EntryPoints[0].Name != "login" {
		t.Fatalf("parsed = %+v", p)
	}
}

func TestParseStructuredSortsByStepIndex(t *testing.T) {
	raw := structuredRaw(t, []map[string]any{
		{"symbols": []map[string]any{
			symbol("respond", 2),
			symbol("handleAuth", 0),
			symbol("validate", 1),
		}},
	})

	p := Parse(raw)
	if p.EntryPoints[0].Name != "handleAuth" {
		t.Errorf("entry = %q, want handleAuth", p.EntryPoints[0].Name)
	}
	if got := strings.Join(p.EntryPoints[0].Flows[0], ","); got != "validate,respond" {
		t.Errorf("flow = %q", got)
	}
}

func TestParseStructuredCapsFlowSteps(t *testing.T) {
	syms := []map[string]any{symbol("entry", 0)}
	for i := 1; i <= 8; i++ {
		syms = append(syms, symbol(fmt.Sprintf("step%d", i), i))
	}
	p := Parse(structuredRaw(t, []map[string]any{{"symbols": syms}}))
	if got := len(p.EntryPoints[0].Flows[0]); got != maxFlowSteps {
		t.Errorf("flow steps = %d, want %d", got, maxFlowSteps)
	}
}

func TestParseStructuredDeduplicatesFlows(t *testing.T) {
	res := map[string]any{"symbols": []map[string]any{
		symbol("entry", 0), symbol("a", 1), symbol("b", 2),
	}}
	p := Parse(structuredRaw(t, []map[string]any{res, res}))
	if len(p.EntryPoints) != 1 {
		t.Fatalf("entry points = %d", len(p.EntryPoints))
	}
	if got := len(p.EntryPoints[0].Flows); got != 1 {
		t.Errorf("flows = %d, want 1 after dedup", got)
	}
}

func TestParseStructuredFTSMatches(t *testing.T) {
	raw := structuredRaw(t, []map[string]any{
		{"symbols": []map[string]any{
			{"name": "hit", "step_index": 0, "is_fts_match": true},
			symbol("next", 1),
		}},
	})
	p := Parse(raw)
	if !p.FTSMatches["hit"] || p.FTSMatches["next"] {
		t.Errorf("FTSMatches = %v", p.FTSMatches)
	}
}

func TestParseStructuredSymbolCap(t *testing.T) {
	var results []map[string]any
	for i := 0; i < 40; i++ {
		results = append(results, map[string]any{"symbols": []map[string]any{
			symbol(fmt.Sprintf("entry%d", i), 0),
			symbol(fmt.Sprintf("step%d", i), 1),
		}})
	}
	p := Parse(structuredRaw(t, results))
	if len(p.Symbols) != maxSymbols {
		t.Errorf("symbols = %d, want cap %d", len(p.Symbols), maxSymbols)
	}
}

func TestParseFreeText(t *testing.T) {
	raw := strings.Join([]string{
		"Process: authentication",
		"  name: handleAuth",
		"  name: validate",
		"  name: respond",
		"",
		"Process: session refresh",
		"  name: refreshSession",
		"  name: unknown",
		"  name: rotateToken",
	}, "\n")

	p := Parse(raw)
	if len(p.EntryPoints) != 2 {
		t.Fatalf("entry points = %d, want 2: %+v", len(p.EntryPoints), p)
	}
	if p.EntryPoints[0].Name != "handleAuth" || p.EntryPoints[1].Name != "refreshSession" {
		t.Errorf("entries = %+v", p.EntryPoints)
	}
	// "unknown" is a stop word and must not appear in the flow.
	if got := strings.Join(p.EntryPoints[1].Flows[0], ","); got != "rotateToken" {
		t.Errorf("second flow = %q", got)
	}
}

func TestParseFreeTextRequiresTwoNames(t *testing.T) {
	p := Parse("Process: x\n  name: lonely\n")
	if len(p.EntryPoints) != 0 {
		t.Errorf("entry points = %+v, want none", p.EntryPoints)
	}
}

func TestParseGarbage(t *testing.T) {
	for _, raw := range []string{"", "no flows here", "{broken json"} {
		p := Parse(raw)
		if len(p.EntryPoints) != 0 || len(p.Symbols) != 0 {
			t.Errorf("Parse(%q) = %+v, want empty", raw, p)
		}
	}
}

func TestRenderFlows(t *testing.T) {
	p := Parse(structuredRaw(t, []map[string]any{
		{"symbols": []map[string]any{
			symbol("handleAuth", 0), symbol("validate", 1), symbol("respond", 2),
		}},
	}))
	out := Render(p, "handleAuth", 120*time.Millisecond)

	for _, want := range []string{"handleAuth", "validate", "respond", "120ms", flowArrow} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTruncatesQuery(t *testing.T) {
	long := strings.Repeat("q", maxQueryDisplay+10)
	out := Render(Parsed{}, long, time.Millisecond)
	if strings.Contains(out, long) {
		t.Error("query not truncated")
	}
	if !strings.Contains(out, "…") {
		t.Error("missing ellipsis")
	}
}

func TestRenderEntryPointOverflow(t *testing.T) {
	var results []map[string]any
	for i := 0; i < maxEntryPoints+3; i++ {
		results = append(results, map[string]any{"symbols": []map[string]any{
			symbol(fmt.Sprintf("entry%02d", i), 0),
			symbol("next", 1),
		}})
	}
	out := Render(Parse(structuredRaw(t, results)), "q", time.Millisecond)
	if !strings.Contains(out, "+3 more entry points") {
		t.Errorf("missing overflow marker:\n%s", out)
	}
}

func TestRenderFlowOverflow(t *testing.T) {
	var results []map[string]any
	for i := 0; i < maxFlowsPerEntry+2; i++ {
		results = append(results, map[string]any{"symbols": []map[string]any{
			symbol("entry", 0),
			symbol(fmt.Sprintf("step%02d", i), 1),
		}})
	}
	out := Render(Parse(structuredRaw(t, results)), "q", time.Millisecond)
	if !strings.Contains(out, "+2 more") {
		t.Errorf("missing flow overflow marker:\n%s", out)
	}
}

func TestRenderSymbolFallback(t *testing.T) {
	p := Parsed{Symbols: []string{"alpha", "beta"}}
	out := Render(p, "q", time.Millisecond)
	if !strings.Contains(out, "alpha") || !strings.Contains(out, "beta") {
		t.Errorf("fallback missing symbols:\n%s", out)
	}
}

func TestRenderBareHeader(t *testing.T) {
	out := Render(Parsed{}, "nothing", 5*time.Millisecond)
	if !strings.Contains(out, "nothing") || strings.Count(out, "\n") != 0 {
		t.Errorf("bare header wrong:\n%s", out)
	}
}
