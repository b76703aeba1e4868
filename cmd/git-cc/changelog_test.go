package main

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func seedReleaseHistory(t *testing.T) {
	t.Helper()
	newTestRepo(t)
	stageFile(t, "first.txt")
	runGit(t, ".", "commit", "-q", "-m", "feat: first")
	runGit(t, ".", "tag", "v1.0.0")
	stageFile(t, "second.txt")
	runGit(t, ".", "commit", "-q", "-m", "fix(io): close file")
	stageFile(t, "third.txt")
	runGit(t, ".", "commit", "-q", "-m", "docs: explain hooks")
	stageFile(t, "fourth.txt")
	runGit(t, ".", "commit", "-q", "-m", "feat(api): add login")
}

func TestChangelogCommand(t *testing.T) {
	seedReleaseHistory(t)

	stdout, _, err := execute(newRootCmd(), "changelog")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(stdout, "## v1.1.0 (") {
		t.Errorf("heading = %q", strings.SplitN(stdout, "\n", 2)[0])
	}
	for _, want := range []string{"### Features\n\n- **api:** add login (", "### Bug Fixes\n\n- **io:** close file ("} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
	if strings.Contains(stdout, "explain hooks") || strings.Contains(stdout, "first") {
		t.Errorf("unexpected entries:\n%s", stdout)
	}
}

func TestChangelogCommand_AllAndRelease(t *testing.T) {
	seedReleaseHistory(t)

	stdout, _, err := execute(newRootCmd(), "changelog", "--all", "--release", "v9.9.9")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(stdout, "## v9.9.9 (") {
		t.Errorf("heading = %q", strings.SplitN(stdout, "\n", 2)[0])
	}
	if !strings.Contains(stdout, "### Other Changes\n\n- explain hooks (") {
		t.Errorf("missing other changes:\n%s", stdout)
	}
}

func TestChangelogCommand_Output(t *testing.T) {
	seedReleaseHistory(t)
	if err := os.WriteFile("CHANGELOG.md", []byte("# Changelog\n\n## v1.0.0\n\n- first\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, err := execute(newRootCmd(), "changelog", "-o", "CHANGELOG.md")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr, "Updated CHANGELOG.md (3 commits)") {
		t.Errorf("stderr = %q", stderr)
	}
	data, err := os.ReadFile("CHANGELOG.md")
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if !strings.HasPrefix(got, "# Changelog\n\n## v1.1.0 (") {
		t.Errorf("file starts with %q", got[:min(len(got), 40)])
	}
	if !strings.HasSuffix(got, "## v1.0.0\n\n- first\n") {
		t.Errorf("previous release lost:\n%s", got)
	}
}

func TestChangelogCommand_JSON(t *testing.T) {
	seedReleaseHistory(t)

	stdout, _, err := execute(newRootCmd(), "changelog", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	var doc struct {
		Version  string `json:"version"`
		Sections []struct {
			Title string `json:"title"`
		} `json:"sections"`
	}
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if doc.Version != "v1.1.0" || len(doc.Sections) != 2 {
		t.Errorf("doc = %+v", doc)
	}
}

func TestChangelogCommand_NothingReleasable(t *testing.T) {
	newTestRepo(t)
	stageFile(t, "a.txt")
	runGit(t, ".", "commit", "-q", "-m", "chore: tidy")

	stdout, _, err := execute(newRootCmd(), "changelog")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if stdout != "## Unreleased\n\n" {
		t.Errorf("stdout = %q", stdout)
	}
}
