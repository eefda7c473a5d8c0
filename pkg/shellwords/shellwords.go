// Package shellwords splits command-line strings into tokens the way a
// POSIX shell would, but only for the features that matter when reading a
// command back out of a tool call: single/double quoting and backslash
// escapes. Globbing, variable expansion, subshells, and redirection are
// deliberately not interpreted; their characters pass through as literals.
package shellwords

import "strings"

// Split tokenizes a raw command line.
//
// Rules:
//   - Whitespace outside quotes separates tokens; runs of it collapse.
//   - A backslash outside single quotes escapes the next character (the
//     backslash is dropped, the character is kept), including inside
//     double quotes.
//   - Inside single quotes nothing is special until the closing quote.
//   - Inside double quotes whitespace does not split tokens.
//   - An unterminated quote consumes to end of input as part of the
//     current token. Split never fails.
//
// An empty or all-whitespace command yields a nil slice.
func Split(command string) []string {
	var tokens []string
	var cur strings.Builder
	inToken := false
	escaped := false
	var quote rune // 0 when outside quotes, otherwise '\'' or '"'

	for _, r := range command {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false

		case quote == '\'':
			if r == '\'' {
				quote = 0
			} else {
				cur.WriteRune(r)
			}

		case r == '\\':
			// Escapes apply outside quotes and inside double quotes.
			escaped = true
			inToken = true

		case quote == '"':
			if r == '"' {
				quote = 0
			} else {
				cur.WriteRune(r)
			}

		case r == '\'' || r == '"':
			quote = r
			inToken = true

		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}

		default:
			cur.WriteRune(r)
			inToken = true
		}
	}

	// A trailing backslash escapes nothing; drop it silently.
	if inToken {
		tokens = append(tokens, cur.String())
	}

	return tokens
}
