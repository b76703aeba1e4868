// Package output provides structured output and error handling for the git-cc CLI.
package output

import "errors"

// Exit codes used by git-cc itself. A ProcessError bypasses these and
// carries the exit code of the git child process instead.
const (
	ExitSuccess     = 0
	ExitInputError  = 1
	ExitSystemError = 2
	ExitConflict    = 3
)

// Kind classifies an ExitError for JSON output and for callers that need to
// tell user mistakes apart from a failed git invocation.
type Kind string

// Error kinds.
const (
	KindInput    Kind = "input"
	KindProcess  Kind = "process"
	KindSystem   Kind = "system"
	KindConflict Kind = "conflict"
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Kind    Kind
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewInputError creates an error for empty, invalid or aborted input (exit code 1).
func NewInputError(message string) *ExitError {
	return &ExitError{
		Kind:    KindInput,
		Code:    ExitInputError,
		Message: message,
	}
}

// NewInputErrorWithCause creates an input error wrapping an underlying cause.
func NewInputErrorWithCause(message string, cause error) *ExitError {
	err := NewInputError(message)
	err.Cause = cause
	return err
}

// NewProcessError creates an error for a child process that could not run or
// exited non-zero. The code is surfaced as git-cc's own exit code unchanged.
func NewProcessError(code int, message string, cause error) *ExitError {
	return &ExitError{
		Kind:    KindProcess,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewSystemError creates an error for system failures (exit code 2).
// Use for: unreadable config, git queries failing, I/O errors.
func NewSystemError(message string) *ExitError {
	return &ExitError{
		Kind:    KindSystem,
		Code:    ExitSystemError,
		Message: message,
	}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	err := NewSystemError(message)
	err.Cause = cause
	return err
}

// NewConflictError creates an error for conflict situations (exit code 3),
// such as a foreign hook already installed.
func NewConflictError(message string) *ExitError {
	return &ExitError{
		Kind:    KindConflict,
		Code:    ExitConflict,
		Message: message,
	}
}

// IsKind reports whether err is an ExitError of the given kind.
func IsKind(err error, kind Kind) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Kind == kind
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitInputError for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Untyped errors come from cobra argument parsing
	return ExitInputError
}
