package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/gorewood/gitcc/internal/output"
)

func TestRootCommand_Version(t *testing.T) {
	version = "1.2.3"
	t.Cleanup(func() { version = "dev" })

	stdout, _, err := execute(newRootCmd(), "--version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout, "git-cc version 1.2.3") {
		t.Errorf("--version output = %q", stdout)
	}
}

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := execute(newRootCmd(), "help")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, expected := range []string{
		"git-cc",
		"Usage:",
		"Message Commands:",
		"format",
		"lint",
		"hooks",
		"next-version",
		"serve",
	} {
		if !strings.Contains(stdout, expected) {
			t.Errorf("help output should contain %q: %q", expected, stdout)
		}
	}
}

func TestRootCommand_JSONFlag_Persistence(t *testing.T) {
	cmd := newRootCmd()
	if cmd.PersistentFlags().Lookup("json") == nil {
		t.Fatal("--json flag should be a persistent flag")
	}

	for _, sub := range cmd.Commands() {
		if sub.Name() == "lint" {
			if sub.InheritedFlags().Lookup("json") == nil {
				t.Error("lint should inherit --json")
			}
			return
		}
	}
	t.Fatal("lint command not registered")
}

func TestRootCommand_DoesNotParseGitFlags(t *testing.T) {
	cmd := newRootCmd()
	if !cmd.DisableFlagParsing {
		t.Error("root must forward flags to git untouched")
	}
	if cmd.Args == nil {
		t.Error("root must accept arbitrary arguments")
	}
}

func TestSubcommand_JSONError(t *testing.T) {
	newTestRepo(t)

	stdout, _, err := execute(newRootCmd(), "lint", "--json")
	if output.GetExitCode(err) != output.ExitInputError {
		t.Fatalf("exit code = %d, want %d", output.GetExitCode(err), output.ExitInputError)
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("output should be valid JSON: %v\n%s", err, stdout)
	}
	for _, key := range []string{"error", "code", "kind"} {
		if _, ok := result[key]; !ok {
			t.Errorf("JSON output should contain %q: %s", key, stdout)
		}
	}
}

func TestBuildVersion(t *testing.T) {
	tests := []struct {
		name                 string
		ver, sha, when, want string
	}{
		{"dev build", "dev", "none", "unknown", "dev"},
		{"release", "1.0.0", "abcdef1234567", "2026-01-01", "1.0.0 (abcdef1, 2026-01-01)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldV, oldC, oldD := version, commit, date
			t.Cleanup(func() { version, commit, date = oldV, oldC, oldD })
			version, commit, date = tt.ver, tt.sha, tt.when

			if got := buildVersion(); got != tt.want {
				t.Errorf("buildVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}
