// Package flowfmt parses the external CLI's search output into entry
// points and execution flows, and renders a bounded human-readable
// summary. Both the CLI's structured JSON shape and its older free-text
// shape are accepted.
package flowfmt

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Display caps. Rendering is bounded no matter how large the raw result
// is: the summary is injected into a model context window.
const (
	maxQueryDisplay  = 35
	maxEntryPoints   = 12
	maxFlowsPerEntry = 6
	maxFlowSteps     = 4
	maxSymbols       = 50
)

// flowArrow joins flow steps in rendered output.
const flowArrow = " → "

// EntryPoint groups the execution flows that start at one symbol.
type EntryPoint struct {
	Name  string
	Flows [][]string
}

// Parsed is the digested form of one search result.
type Parsed struct {
	// EntryPoints preserves first-seen order.
	EntryPoints []EntryPoint
	// Symbols is a global, capped symbol list used as a display
	// fallback when no flows were found.
	Symbols []string
	// FTSMatches holds symbols the CLI flagged as direct full-text
	// hits rather than flow members.
	FTSMatches map[string]bool
}

// structured mirrors the CLI's JSON output. Results may sit at the top
// level or nested under "result".
type structured struct {
	Results []structuredResult `json:"results"`
	Result  *struct {
		Results []structuredResult `json:"results"`
	} `json:"result"`
}

type structuredResult struct {
	Symbols []structuredSymbol `json:"symbols"`
}

type structuredSymbol struct {
	Name       string `json:"name"`
	StepIndex  int    `json:"step_index"`
	IsFTSMatch bool   `json:"is_fts_match"`
}

// freeTextName pulls identifier-shaped names out of "name: Foo" labels
// in the CLI's free-text output.
var freeTextName = regexp.MustCompile(`name:\s*([A-Za-z_][A-Za-z0-9_.]*)`)

// freeTextStopWords are labels that show up after "name:" without being
// symbols.
var freeTextStopWords = map[string]bool{
	"unknown": true,
	"null":    true,
	"none":    true,
	"true":    true,
	"false":   true,
}

// Parse digests raw CLI output. Structured JSON is preferred; anything
// unparsable as JSON goes through the free-text path. Parse never fails:
// unusable input produces an empty Parsed.
func Parse(raw string) Parsed {
	if results, ok := parseStructured(raw); ok {
		return collect(results)
	}
	return parseFreeText(raw)
}

// parseStructured decodes the JSON shape, accepting results both at the
// top level and nested under result.
func parseStructured(raw string) ([]structuredResult, bool) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return nil, false
	}

	var s structured
	if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
		return nil, false
	}
	if s.Results != nil {
		return s.Results, true
	}
	if s.Result != nil && s.Result.Results != nil {
		return s.Result.Results, true
	}
	return nil, false
}

// collect builds a Parsed from structured results: per result, symbols
// sort by step index, the first becomes the entry point and the rest
// (capped) the flow.
func collect(results []structuredResult) Parsed {
	p := Parsed{FTSMatches: make(map[string]bool)}
	entryIdx := make(map[string]int)
	seenFlows := make(map[string]map[string]bool)
	seenSymbols := make(map[string]bool)

	for _, res := range results {
		symbols := make([]structuredSymbol, 0, len(res.Symbols))
		for _, sym := range res.Symbols {
			if sym.Name == "" {
				continue
			}
			symbols = append(symbols, sym)
		}
		if len(symbols) == 0 {
			continue
		}

		sort.SliceStable(symbols, func(i, j int) bool {
			return symbols[i].StepIndex < symbols[j].StepIndex
		})

		for _, sym := range symbols {
			if sym.IsFTSMatch {
				p.FTSMatches[sym.Name] = true
			}
			if !seenSymbols[sym.Name] && len(p.Symbols) < maxSymbols {
				seenSymbols[sym.Name] = true
				p.Symbols = append(p.Symbols, sym.Name)
			}
		}

		entry := symbols[0].Name
		var flow []string
		for _, sym := range symbols[1:] {
			flow = append(flow, sym.Name)
			if len(flow) == maxFlowSteps {
				break
			}
		}

		p.addFlow(entryIdx, seenFlows, entry, flow)
	}

	return p
}

// parseFreeText digests the line-oriented shape: blocks start at a line
// containing "process", and each block's "name:" labels become an entry
// point plus flow when at least two distinct names appear.
func parseFreeText(raw string) Parsed {
	p := Parsed{FTSMatches: make(map[string]bool)}
	entryIdx := make(map[string]int)
	seenFlows := make(map[string]map[string]bool)
	seenSymbols := make(map[string]bool)

	for _, block := range splitProcessBlocks(raw) {
		var names []string
		distinct := make(map[string]bool)
		for _, m := range freeTextName.FindAllStringSubmatch(block, -1) {
			name := m[1]
			if freeTextStopWords[strings.ToLower(name)] || distinct[name] {
				continue
			}
			distinct[name] = true
			names = append(names, name)
		}
		if len(names) < 2 {
			continue
		}

		for _, name := range names {
			if !seenSymbols[name] && len(p.Symbols) < maxSymbols {
				seenSymbols[name] = true
				p.Symbols = append(p.Symbols, name)
			}
		}

		flow := names[1:]
		if len(flow) > maxFlowSteps {
			flow = flow[:maxFlowSteps]
		}
		p.addFlow(entryIdx, seenFlows, names[0], flow)
	}

	return p
}

// addFlow records one entry-point/flow pair, deduplicating flows by
// their joined names.
func (p *Parsed) addFlow(entryIdx map[string]int, seenFlows map[string]map[string]bool, entry string, flow []string) {
	idx, ok := entryIdx[entry]
	if !ok {
		idx = len(p.EntryPoints)
		entryIdx[entry] = idx
		p.EntryPoints = append(p.EntryPoints, EntryPoint{Name: entry})
		seenFlows[entry] = make(map[string]bool)
	}
	if len(flow) == 0 {
		return
	}
	key := strings.Join(flow, flowArrow)
	if seenFlows[entry][key] {
		return
	}
	seenFlows[entry][key] = true
	p.EntryPoints[idx].Flows = append(p.EntryPoints[idx].Flows, flow)
}

// splitProcessBlocks cuts raw text into blocks, each starting at a line
// containing the word "process".
func splitProcessBlocks(raw string) []string {
	lines := strings.Split(raw, "\n")
	var blocks []string
	var cur []string
	inBlock := false

	flush := func() {
		if inBlock && len(cur) > 0 {
			blocks = append(blocks, strings.Join(cur, "\n"))
		}
		cur = nil
	}

	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), "process") {
			flush()
			inBlock = true
		}
		if inBlock {
			cur = append(cur, line)
		}
	}
	flush()

	return blocks
}

// Render builds the bounded summary for a parsed result. With entry
// points it lists flows; without them it falls back to the flat symbol
// list; with nothing at all it returns the bare header.
func Render(p Parsed, query string, elapsed time.Duration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Semantic search for %q (%dms)", truncateQuery(query), elapsed.Milliseconds())

	if len(p.EntryPoints) == 0 {
		if len(p.Symbols) > 0 {
			b.WriteString("\nRelated symbols: ")
			b.WriteString(strings.Join(p.Symbols, ", "))
		}
		return b.String()
	}

	entries := p.EntryPoints
	overflowEntries := 0
	if len(entries) > maxEntryPoints {
		overflowEntries = len(entries) - maxEntryPoints
		entries = entries[:maxEntryPoints]
	}

	for _, entry := range entries {
		fmt.Fprintf(&b, "\n%s", entry.Name)
		if p.FTSMatches[entry.Name] {
			b.WriteString(" (direct match)")
		}
		flows := entry.Flows
		overflowFlows := 0
		if len(flows) > maxFlowsPerEntry {
			overflowFlows = len(flows) - maxFlowsPerEntry
			flows = flows[:maxFlowsPerEntry]
		}
		for _, flow := range flows {
			fmt.Fprintf(&b, "\n  %s%s%s", entry.Name, flowArrow, strings.Join(flow, flowArrow))
		}
		if overflowFlows > 0 {
			fmt.Fprintf(&b, "\n  +%d more", overflowFlows)
		}
	}
	if overflowEntries > 0 {
		fmt.Fprintf(&b, "\n+%d more entry points", overflowEntries)
	}

	return b.String()
}

// truncateQuery bounds the query shown in the header.
func truncateQuery(query string) string {
	runes := []rune(query)
	if len(runes) <= maxQueryDisplay {
		return query
	}
	return string(runes[:maxQueryDisplay]) + "…"
}
