package extract

import (
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// extensionOnlyGlob matches glob patterns that are nothing but an
// extension filter: any run of "**/" or "segment/**/" prefixes followed
// by "*.ext" or "*.{ext,ext,...}". Searching by extension alone names a
// file type, not a topic, so such patterns yield no query.
var extensionOnlyGlob = regexp.MustCompile(
	`(?i)^(\*\*/|[^/*{}]+/\*\*/)*\*\.(?:[a-z0-9]+|\{[a-z0-9]+(?:,[a-z0-9]+)*\})$`)

// FromGlob extracts a query from a file-glob pattern, e.g. the Glob
// tool's pattern input. Path segments with literal text become the query;
// pure extension filters and syntactically invalid globs yield "".
func FromGlob(pattern string) string {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return ""
	}
	if !doublestar.ValidatePattern(pattern) {
		return ""
	}
	if extensionOnlyGlob.MatchString(pattern) {
		return ""
	}

	var kept []string
	for _, part := range strings.Split(pattern, "/") {
		// Literally hidden names (.github, .vscode) are plumbing, not
		// topics. The check runs before wildcard stripping so that a
		// "*.ts" remnant like ".ts" is not mistaken for one: its
		// extension still carries signal.
		if strings.HasPrefix(part, ".") {
			continue
		}
		part = strings.ReplaceAll(part, "*", "")
		part = braceExprs.ReplaceAllString(part, "")
		for _, seg := range strings.Split(part, ".") {
			if len(seg) > 1 {
				kept = append(kept, seg)
			}
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return strings.Join(kept, " ")
}
