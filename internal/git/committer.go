package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/gorewood/gitcc/internal/logging"
	"github.com/gorewood/gitcc/internal/output"
)

// Committer runs `git commit` as a child process attached to the caller's
// terminal.
type Committer struct {
	// Binary is the git executable; "git" when empty.
	Binary string
	// Dir is the working directory; the current one when empty.
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewCommitter returns a Committer wired to the process's standard streams.
func NewCommitter() *Committer {
	return &Committer{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Commit runs `git commit -m <message> <args...>`.
func (c *Committer) Commit(ctx context.Context, message string, args []string) error {
	argv := make([]string, 0, len(args)+3)
	argv = append(argv, "commit", "-m", message)
	return c.run(ctx, append(argv, args...))
}

// Passthrough runs `git commit <args...>` untouched.
func (c *Committer) Passthrough(ctx context.Context, args []string) error {
	return c.run(ctx, append([]string{"commit"}, args...))
}

// run starts git and waits for it. Interrupts delivered to git-cc while the
// child runs are forwarded to it instead of terminating git-cc, so the exit
// status reported is always git's own.
func (c *Committer) run(ctx context.Context, argv []string) error {
	logger := logging.FromContext(ctx)

	binary := c.Binary
	if binary == "" {
		binary = "git"
	}
	cmd := exec.Command(binary, argv...) //nolint:gosec,noctx // child must outlive ctx cancellation; see forward
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	logger.Debug("running git", "binary", binary, "args", argv, "dir", c.Dir)
	if err := cmd.Start(); err != nil {
		return output.NewProcessError(output.ExitSystemError,
			fmt.Sprintf("failed to run %s: %v", binary, err), err)
	}

	done := make(chan struct{})
	defer close(done)
	go forward(ctx, cmd.Process, signals, done)

	err := cmd.Wait()
	if err == nil {
		logger.Debug("git commit finished")
		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return output.NewProcessError(output.ExitSystemError, "waiting for git: "+err.Error(), err)
	}
	code := exitErr.ExitCode()
	logger.Debug("git commit failed", "status", code)
	if code < 0 {
		return output.NewProcessError(output.ExitSystemError, "git commit was terminated by a signal", err)
	}
	return output.NewProcessError(code, fmt.Sprintf("git commit exited with status %d", code), err)
}

// forward relays signals, and context cancellation as an interrupt, to the
// child until done is closed.
func forward(ctx context.Context, proc *os.Process, signals <-chan os.Signal, done <-chan struct{}) {
	ctxDone := ctx.Done()
	for {
		select {
		case sig := <-signals:
			_ = proc.Signal(sig)
		case <-ctxDone:
			_ = proc.Signal(os.Interrupt)
			ctxDone = nil
		case <-done:
			return
		}
	}
}
