package extract

import (
	"path/filepath"
	"regexp"
	"strings"

	"searchlight/pkg/shellwords"
)

// maxCommandLen bounds the command strings we are willing to inspect.
// Pathological multi-kilobyte commands are never hand-typed searches, and
// the bound keeps any regex work here far away from catastrophic
// backtracking territory.
const maxCommandLen = 1000

var (
	wildcardRuns  = regexp.MustCompile(`\*+`)
	trailingExt   = regexp.MustCompile(`\.[A-Za-z0-9]+$`)
	envAssignment = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*=`)
)

// FromCommand extracts a query from a shell command line, e.g. the Bash
// tool's command input. Only invocations of known search tools (the grep
// family, rg, ag, ack, find) yield a query; everything else returns "".
func FromCommand(command string) string {
	if len(command) > maxCommandLen {
		return ""
	}

	tokens := shellwords.Split(command)

	// Skip leading FOO=bar environment assignments to find the command.
	start := 0
	for start < len(tokens) && envAssignment.MatchString(tokens[start]) {
		start++
	}
	if start >= len(tokens) {
		return ""
	}

	base := filepath.Base(tokens[start])
	rest := tokens[start+1:]

	if base == "find" {
		return fromFind(rest)
	}

	valueFlags, ok := searchToolDialects[base]
	if !ok {
		return ""
	}
	return fromGrepFamily(rest, valueFlags)
}

// fromGrepFamily walks the arguments of a grep-family invocation and
// returns the cleaned search pattern, or "" when none clears the length
// bar. An explicit -e value is taken immediately; otherwise the first
// non-flag argument is the pattern.
func fromGrepFamily(args []string, valueFlags flagSet) string {
	for i := 0; i < len(args); i++ {
		tok := args[i]

		if strings.HasPrefix(tok, "-") && tok != "-" {
			if (tok == "-e" || tok == "--regexp") && i+1 < len(args) {
				if q := cleanedQuery(args[i+1]); q != "" {
					return q
				}
				i++
				continue
			}
			if valueFlags[tok] {
				i++ // consume the flag's value as well
			}
			continue
		}

		// First positional argument is the pattern; later ones are paths.
		return cleanedQuery(tok)
	}
	return ""
}

// fromFind scans a find(1) invocation for a -name/-path/-regex primary
// and extracts its pattern.
func fromFind(args []string) string {
	for i := 0; i < len(args)-1; i++ {
		if !findPatternFlags[args[i]] {
			continue
		}
		pattern := args[i+1]
		pattern = strings.Trim(pattern, "*")
		pattern = trailingExt.ReplaceAllString(pattern, "")
		pattern = wildcardRuns.ReplaceAllString(pattern, " ")
		pattern = strings.TrimSpace(pattern)
		if len(pattern) >= minQueryLen {
			return pattern
		}
	}
	return ""
}
