package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gorewood/gitcc/internal/output"
)

// Run executes a git command with the given arguments.
// It captures stdout and returns it as a trimmed string.
// Returns an *output.ExitError on failure with appropriate exit code.
func Run(args ...string) (string, error) {
	return RunContext(context.Background(), args...)
}

// RunContext executes a git command with the given context and arguments.
// It captures stdout and returns it as a trimmed string.
// Returns an *output.ExitError on failure with appropriate exit code.
func RunContext(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", output.NewSystemError("git not found: ensure git is installed and in PATH")
		}

		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return "", output.NewSystemErrorWithCause("git command failed: "+errMsg, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// IsRepo checks if the current directory is inside a git work tree.
func IsRepo() bool {
	out, err := Run("rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// RepoRoot returns the root directory of the current git repository.
func RepoRoot() (string, error) {
	root, err := Run("rev-parse", "--show-toplevel")
	if err != nil {
		return "", output.NewSystemErrorWithCause("not in a git repository", err)
	}
	return root, nil
}

// HooksDir returns the absolute directory git runs hooks from. It honours
// core.hooksPath and linked worktrees, unlike a hardcoded .git/hooks.
func HooksDir() (string, error) {
	dir, err := Run("rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", output.NewSystemErrorWithCause("cannot locate hooks directory", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", output.NewSystemErrorWithCause("resolving hooks directory", err)
	}
	return abs, nil
}

// HasStagedChanges reports whether the index differs from HEAD. In a
// repository without commits any staged file counts.
func HasStagedChanges(ctx context.Context) (bool, error) {
	cmd := exec.CommandContext(ctx, "git", "diff", "--cached", "--quiet")
	err := cmd.Run()
	if err == nil {
		return false, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return true, nil
	}
	return false, output.NewSystemErrorWithCause("checking staged changes", err)
}
