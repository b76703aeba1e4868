package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/gitcc/internal/output"
)

// newTestRepo creates an empty repository with an identity configured,
// changes into it for the duration of the test and returns its path.
// Skips the test if git is not installed.
func newTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	for _, args := range [][]string{
		{"init", "-q"},
		{"config", "user.name", "Test"},
		{"config", "user.email", "test@example.com"},
		{"config", "commit.gpgsign", "false"},
	} {
		cmd := exec.CommandContext(context.Background(), "git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	t.Chdir(dir)
	return dir
}

// stage writes a file and adds it to the index.
func stage(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(name, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Run("add", name); err != nil {
		t.Fatalf("git add: %v", err)
	}
}

func TestRun(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	tests := []struct {
		name          string
		args          []string
		wantErr       bool
		checkExitCode int
	}{
		{
			name: "git version succeeds",
			args: []string{"version"},
		},
		{
			name:          "invalid git command",
			args:          []string{"invalid-command-that-does-not-exist"},
			wantErr:       true,
			checkExitCode: output.ExitSystemError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			out, runErr := Run(testCase.args...)
			if testCase.wantErr {
				var exitErr *output.ExitError
				if !errors.As(runErr, &exitErr) {
					t.Fatalf("Run() error should be *output.ExitError, got %T", runErr)
				}
				if exitErr.Code != testCase.checkExitCode {
					t.Errorf("Run() exit code = %d, want %d", exitErr.Code, testCase.checkExitCode)
				}
				if !strings.Contains(exitErr.Message, "git command failed") {
					t.Errorf("Run() message = %q", exitErr.Message)
				}
				return
			}
			if runErr != nil {
				t.Fatalf("Run() unexpected error: %v", runErr)
			}
			if out == "" {
				t.Error("Run() expected non-empty output for 'git version'")
			}
		})
	}
}

func TestIsRepoAndRoot(t *testing.T) {
	t.Run("in git repo", func(t *testing.T) {
		dir := newTestRepo(t)

		if !IsRepo() {
			t.Error("IsRepo() = false, expected true in git repo")
		}
		root, err := RepoRoot()
		if err != nil {
			t.Fatalf("RepoRoot() error = %v", err)
		}
		want, _ := filepath.EvalSymlinks(dir)
		got, _ := filepath.EvalSymlinks(root)
		if got != want {
			t.Errorf("RepoRoot() = %q, want %q", root, dir)
		}
	})

	t.Run("not in git repo", func(t *testing.T) {
		if _, err := exec.LookPath("git"); err != nil {
			t.Skip("git not installed")
		}
		t.Setenv("GIT_CEILING_DIRECTORIES", os.TempDir())
		t.Chdir(t.TempDir())

		if IsRepo() {
			t.Error("IsRepo() = true, expected false outside git repo")
		}
		_, err := RepoRoot()
		if output.GetExitCode(err) != output.ExitSystemError {
			t.Errorf("RepoRoot() error = %v, want system error", err)
		}
	})
}

func TestHooksDir(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		newTestRepo(t)

		dir, err := HooksDir()
		if err != nil {
			t.Fatalf("HooksDir() error = %v", err)
		}
		if !filepath.IsAbs(dir) {
			t.Errorf("HooksDir() = %q, want absolute", dir)
		}
		if filepath.Base(dir) != "hooks" || filepath.Base(filepath.Dir(dir)) != ".git" {
			t.Errorf("HooksDir() = %q, want .git/hooks", dir)
		}
	})

	t.Run("core.hooksPath", func(t *testing.T) {
		newTestRepo(t)
		if _, err := Run("config", "core.hooksPath", ".githooks"); err != nil {
			t.Fatal(err)
		}

		dir, err := HooksDir()
		if err != nil {
			t.Fatalf("HooksDir() error = %v", err)
		}
		if filepath.Base(dir) != ".githooks" {
			t.Errorf("HooksDir() = %q, want .githooks", dir)
		}
	})
}

func TestHasStagedChanges(t *testing.T) {
	newTestRepo(t)
	ctx := context.Background()

	staged, err := HasStagedChanges(ctx)
	if err != nil {
		t.Fatalf("HasStagedChanges() error = %v", err)
	}
	if staged {
		t.Error("HasStagedChanges() = true in empty repo")
	}

	stage(t, "a.txt", "a")

	staged, err = HasStagedChanges(ctx)
	if err != nil {
		t.Fatalf("HasStagedChanges() error = %v", err)
	}
	if !staged {
		t.Error("HasStagedChanges() = false after git add")
	}
}
