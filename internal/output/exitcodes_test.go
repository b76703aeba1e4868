package output

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCodeConstants(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"ExitSuccess", ExitSuccess, 0},
		{"ExitInputError", ExitInputError, 1},
		{"ExitSystemError", ExitSystemError, 2},
		{"ExitConflict", ExitConflict, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.expected {
				t.Errorf("%s = %d, want %d", tt.name, tt.code, tt.expected)
			}
		})
	}
}

func TestExitError(t *testing.T) {
	tests := []struct {
		name        string
		err         *ExitError
		wantKind    Kind
		wantCode    int
		wantMessage string
	}{
		{
			name:        "input error",
			err:         NewInputError("subject must not be empty"),
			wantKind:    KindInput,
			wantCode:    ExitInputError,
			wantMessage: "subject must not be empty",
		},
		{
			name:        "process error keeps child code",
			err:         NewProcessError(128, "git commit exited with status 128", nil),
			wantKind:    KindProcess,
			wantCode:    128,
			wantMessage: "git commit exited with status 128",
		},
		{
			name:        "system error",
			err:         NewSystemError("reading config failed"),
			wantKind:    KindSystem,
			wantCode:    ExitSystemError,
			wantMessage: "reading config failed",
		},
		{
			name:        "conflict error",
			err:         NewConflictError("hook already exists"),
			wantKind:    KindConflict,
			wantCode:    ExitConflict,
			wantMessage: "hook already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", tt.err.Kind, tt.wantKind)
			}
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if tt.err.Error() != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.wantMessage)
			}
		})
	}
}

func TestExitErrorWrapping(t *testing.T) {
	underlying := errors.New("signal: interrupt")
	err := NewProcessError(130, "git commit interrupted", underlying)

	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find underlying error")
	}

	wrapped := fmt.Errorf("committing: %w", err)
	if !IsKind(wrapped, KindProcess) {
		t.Error("IsKind should see through wrapping")
	}
	if IsKind(wrapped, KindInput) {
		t.Error("IsKind(KindInput) should be false for a process error")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, ExitSuccess},
		{"input error", NewInputError("aborted"), ExitInputError},
		{"system error", NewSystemError("git failed"), ExitSystemError},
		{"conflict error", NewConflictError("exists"), ExitConflict},
		{"process error", NewProcessError(42, "exit 42", nil), 42},
		{"wrapped process error", fmt.Errorf("x: %w", NewProcessError(7, "exit 7", nil)), 7},
		{"regular error defaults to input error", errors.New("some error"), ExitInputError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.expected {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}
