// Package extract turns heterogeneous search-tool inputs (glob patterns,
// grep regexes, shell command lines) into short natural-language queries
// suitable for semantic search. Every extractor is a pure function that
// returns the empty string when the input carries no meaningful topic.
package extract

import (
	"regexp"
	"strings"
)

// minQueryLen is the shortest cleaned query worth sending to semantic
// search. Anything shorter is noise.
const minQueryLen = 3

var (
	doubledWildcards = regexp.MustCompile(`\*{2,}`)
	singleWildcards  = regexp.MustCompile(`[*?]`)
	escapedChars     = regexp.MustCompile(`\\.`)
	bracketExprs     = regexp.MustCompile(`\[[^\]]*\]`)
	parenGroups      = regexp.MustCompile(`\([^)]*\)`)
	braceExprs       = regexp.MustCompile(`\{[^}]*\}`)
	regexMetachars   = regexp.MustCompile(`[\^$.|?+*\\]`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
)

// CleanPattern strips regex and glob syntax from a raw search pattern,
// leaving the human-readable topic of the search. The stripping is lossy
// on purpose. Returns "" when nothing readable survives.
func CleanPattern(pattern string) string {
	s := pattern
	s = doubledWildcards.ReplaceAllString(s, " ")
	s = singleWildcards.ReplaceAllString(s, " ")
	s = escapedChars.ReplaceAllString(s, " ")
	s = bracketExprs.ReplaceAllString(s, " ")
	s = parenGroups.ReplaceAllString(s, " ")
	s = braceExprs.ReplaceAllString(s, " ")
	s = regexMetachars.ReplaceAllString(s, " ")
	s = whitespaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// cleanedQuery applies CleanPattern and enforces the minimum length bar.
func cleanedQuery(pattern string) string {
	cleaned := CleanPattern(pattern)
	if len(cleaned) < minQueryLen {
		return ""
	}
	return cleaned
}

// FromGrep extracts a query from a grep-style regex pattern, e.g. the
// Grep tool's pattern input. Returns "" when the pattern reduces to
// nothing readable.
func FromGrep(pattern string) string {
	return cleanedQuery(pattern)
}
