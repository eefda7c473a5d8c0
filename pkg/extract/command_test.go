package extract

import (
	"strings"
	"testing"
)

func TestFromCommand(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    string
	}{
		{
			name:    "plain grep pattern",
			command: "grep handleAuth src/",
			want:    "handleAuth",
		},
		{
			name:    "grep value flag consumes its argument",
			command: "grep -A 3 needle file.txt",
			want:    "needle",
		},
		{
			name:    "rg glob flag is a value flag",
			command: "rg -g '*.ts' handleAuth",
			want:    "handleAuth",
		},
		{
			name:    "rg boolean flags skipped",
			command: "rg -n --hidden validateToken",
			want:    "validateToken",
		},
		{
			name:    "explicit -e pattern wins",
			command: "grep -r -e 'session.*expiry' src lib",
			want:    "session expiry",
		},
		{
			name:    "ag file-search regex flag consumes value",
			command: "ag -G auth.go refreshToken",
			want:    "refreshToken",
		},
		{
			name:    "env assignments skipped",
			command: "LC_ALL=C GREP_COLORS=mt=31 grep parseConfig .",
			want:    "parseConfig",
		},
		{
			name:    "command path basename resolved",
			command: "/usr/bin/grep parseConfig .",
			want:    "parseConfig",
		},
		{
			name:    "find -name pattern",
			command: "find . -type f -name '*auth*handler*'",
			want:    "auth handler",
		},
		{
			name:    "find -iname strips extension",
			command: "find src -iname '*TokenStore*.go'",
			want:    "TokenStore",
		},
		{
			name:    "find without pattern primary",
			command: "find . -type d",
			want:    "",
		},
		{
			name:    "non-search command",
			command: "ls -la src/",
			want:    "",
		},
		{
			name:    "quoted pattern with spaces",
			command: "grep -n 'token refresh logic' internal/",
			want:    "token refresh logic",
		},
		{
			name:    "pattern too short after cleaning",
			command: "rg '.*'",
			want:    "",
		},
		{
			name:    "empty command",
			command: "",
			want:    "",
		},
		{
			name:    "only env assignments",
			command: "FOO=bar BAZ=qux",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromCommand(tt.command)
			if got != tt.want {
				t.Errorf("FromCommand(%q) = %q, want %q", tt.command, got, tt.want)
			}
		})
	}
}

func TestFromCommandLengthGuard(t *testing.T) {
	long := "grep " + strings.Repeat("a", maxCommandLen)
	if got := FromCommand(long); got != "" {
		t.Errorf("FromCommand(overlong) = %q, want empty", got)
	}
}

func TestFromCommandDialectsAreNotInterchangeable(t *testing.T) {
	// -g consumes a value for rg but not for grep, so the same argument
	// list parses to different patterns per tool.
	if got := FromCommand("rg -g pattern needle"); got != "needle" {
		t.Errorf("rg -g: got %q, want %q", got, "needle")
	}
	if got := FromCommand("grep -g pattern needle"); got != "pattern" {
		t.Errorf("grep -g: got %q, want %q", got, "pattern")
	}
}
