package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorewood/gitcc/internal/output"
)

// fakeGit writes a shell script that records its arguments and exits with
// the given status.
func fakeGit(t *testing.T, status int) (binary, argsFile string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake needs a POSIX shell")
	}
	dir := t.TempDir()
	argsFile = filepath.Join(dir, "args")
	binary = filepath.Join(dir, "git")
	script := "#!/bin/sh\nfor a in \"$@\"; do printf '%s\\n' \"$a\"; done > " + argsFile + "\n" +
		"echo fake-stdout\necho fake-stderr >&2\nexit " + strconv.Itoa(status) + "\n"
	if err := os.WriteFile(binary, []byte(script), 0o700); err != nil { //nolint:gosec // test script
		t.Fatal(err)
	}
	return binary, argsFile
}

// trappingGit writes a shell script that touches ready once its INT trap is
// installed, then waits until interrupted and exits 42.
func trappingGit(t *testing.T) (binary, ready string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake needs a POSIX shell")
	}
	dir := t.TempDir()
	ready = filepath.Join(dir, "ready")
	binary = filepath.Join(dir, "git")
	script := "#!/bin/sh\ntrap 'exit 42' INT\ntouch " + ready + "\n" +
		"i=0\nwhile [ $i -lt 100 ]; do sleep 1 & wait $!; i=$((i+1)); done\nexit 0\n"
	if err := os.WriteFile(binary, []byte(script), 0o700); err != nil { //nolint:gosec // test script
		t.Fatal(err)
	}
	return binary, ready
}

// waitForFile polls until path exists, giving up after five seconds.
func waitForFile(path string) bool {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(path); err == nil {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func readArgs(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestCommitter_Commit_ForwardsArgs(t *testing.T) {
	binary, argsFile := fakeGit(t, 0)
	var stdout, stderr bytes.Buffer
	c := &Committer{Binary: binary, Stdout: &stdout, Stderr: &stderr}

	err := c.Commit(context.Background(), "feat(api): add login", []string{"-a", "--signoff"})
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	want := []string{"commit", "-m", "feat(api): add login", "-a", "--signoff"}
	if got := readArgs(t, argsFile); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("git args = %q, want %q", got, want)
	}
	if stdout.String() != "fake-stdout\n" || stderr.String() != "fake-stderr\n" {
		t.Errorf("streams not inherited: stdout=%q stderr=%q", stdout.String(), stderr.String())
	}
}

func TestCommitter_Passthrough(t *testing.T) {
	binary, argsFile := fakeGit(t, 0)
	c := &Committer{Binary: binary, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	if err := c.Passthrough(context.Background(), []string{"-m", "msg"}); err != nil {
		t.Fatalf("Passthrough() error = %v", err)
	}
	if got := strings.Join(readArgs(t, argsFile), "|"); got != "commit|-m|msg" {
		t.Errorf("git args = %q", got)
	}
}

func TestCommitter_MirrorsExitStatus(t *testing.T) {
	for _, status := range []int{1, 3, 128} {
		binary, _ := fakeGit(t, status)
		c := &Committer{Binary: binary, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

		err := c.Commit(context.Background(), "fix: x", nil)
		if got := output.GetExitCode(err); got != status {
			t.Errorf("exit code = %d, want %d", got, status)
		}
		if !output.IsKind(err, output.KindProcess) {
			t.Errorf("error kind for status %d = %v, want process error", status, err)
		}
	}
}

func TestCommitter_MissingBinary(t *testing.T) {
	c := &Committer{Binary: filepath.Join(t.TempDir(), "no-such-git")}

	err := c.Commit(context.Background(), "fix: x", nil)
	if !output.IsKind(err, output.KindProcess) {
		t.Fatalf("error = %v, want process error", err)
	}
	if output.GetExitCode(err) != output.ExitSystemError {
		t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitSystemError)
	}
}

func TestCommitter_CancelInterruptsGit(t *testing.T) {
	binary, ready := trappingGit(t)
	c := &Committer{Binary: binary, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if !waitForFile(ready) {
			t.Error("fake git never installed its trap")
		}
		cancel()
	}()

	err := c.Commit(ctx, "fix: x", nil)
	if !output.IsKind(err, output.KindProcess) {
		t.Fatalf("error = %v, want process error", err)
	}
	if code := output.GetExitCode(err); code != 42 {
		t.Errorf("exit code = %d, want the trap's 42", code)
	}
}

func TestForward_RelaysSignals(t *testing.T) {
	binary, ready := trappingGit(t)
	cmd := exec.Command(binary) //nolint:gosec // test script
	if err := cmd.Start(); err != nil {
		t.Fatal(err)
	}
	if !waitForFile(ready) {
		_ = cmd.Process.Kill()
		t.Fatal("fake git never installed its trap")
	}

	signals := make(chan os.Signal, 1)
	done := make(chan struct{})
	defer close(done)
	go forward(context.Background(), cmd.Process, signals, done)
	signals <- os.Interrupt

	err := cmd.Wait()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Wait() error = %v, want exit error", err)
	}
	if code := exitErr.ExitCode(); code != 42 {
		t.Errorf("exit code = %d, want the trap's 42", code)
	}
}

func TestCommitter_RealCommit(t *testing.T) {
	dir := newTestRepo(t)
	stage(t, "a.txt", "a")

	msg := "feat(api): add login\n\nBody line.\n\nBREAKING CHANGE: tokens rotate"
	c := &Committer{Dir: dir, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	if err := c.Commit(context.Background(), msg, []string{"--quiet"}); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	got, err := Run("log", "-1", "--format=%B")
	if err != nil {
		t.Fatal(err)
	}
	if got != msg {
		t.Errorf("recorded message = %q, want %q", got, msg)
	}
}

func TestCommitter_RealCommitNothingStaged(t *testing.T) {
	dir := newTestRepo(t)
	c := &Committer{Dir: dir, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	err := c.Commit(context.Background(), "fix: x", nil)
	if err == nil {
		t.Fatal("Commit() with nothing staged should fail")
	}
	if code := output.GetExitCode(err); code != 1 {
		t.Errorf("exit code = %d, want git's status 1", code)
	}
}
