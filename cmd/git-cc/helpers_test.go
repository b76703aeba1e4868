package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/gorewood/gitcc/internal/config"
	"github.com/gorewood/gitcc/internal/prompt"
)

// newTestRepo creates an empty repository with an identity configured,
// changes into it for the duration of the test and isolates git-cc's global
// config. Skips the test if git is not installed.
func newTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	t.Setenv("GIT_CC_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	runGit(t, dir, "init", "-q")
	runGit(t, dir, "config", "user.name", "Test User")
	runGit(t, dir, "config", "user.email", "test@test.com")
	runGit(t, dir, "config", "commit.gpgsign", "false")
	t.Chdir(dir)
	return dir
}

// runGit runs git in dir and returns its trimmed output.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.CommandContext(context.Background(), "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}

// stageFile writes a file in the current directory and adds it to the index.
func stageFile(t *testing.T, name string) {
	t.Helper()
	if err := os.WriteFile(name, []byte(name+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	runGit(t, ".", "add", name)
}

// lastMessage returns the HEAD commit message.
func lastMessage(t *testing.T) string {
	t.Helper()
	return runGit(t, ".", "log", "-1", "--format=%B")
}

// execute runs cmd with args and returns what it wrote to stdout and stderr.
func execute(cmd *cobra.Command, args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(""))
	if args == nil {
		// A nil slice makes cobra fall back to os.Args (the test binary's flags).
		args = []string{}
	}
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// scripted answers prompt questions in order.
type scripted struct {
	answers []any
	asked   int
}

func (s *scripted) next() (any, error) {
	s.asked++
	if len(s.answers) == 0 {
		return nil, errors.New("unexpected question")
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	if err, ok := a.(error); ok {
		return nil, err
	}
	return a, nil
}

func (s *scripted) str() (string, error) {
	a, err := s.next()
	if err != nil {
		return "", err
	}
	return a.(string), nil
}

func (s *scripted) Select(context.Context, prompt.Question) (string, error) { return s.str() }
func (s *scripted) Input(context.Context, prompt.Question) (string, error)  { return s.str() }
func (s *scripted) Text(context.Context, prompt.Question) (string, error)   { return s.str() }

func (s *scripted) Confirm(context.Context, prompt.Question) (bool, error) {
	a, err := s.next()
	if err != nil {
		return false, err
	}
	return a.(bool), nil
}

// testDeps answers prompts from p and runs the real git.
func testDeps(p prompt.Prompter) deps {
	d := defaultDeps()
	d.prompter = func(*cobra.Command, *config.Config) prompt.Prompter { return p }
	return d
}
