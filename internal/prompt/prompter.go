// Package prompt collects commit message fields interactively.
//
// Collector drives the question sequence against a Prompter; the terminal
// implementation is built on charmbracelet/huh.
package prompt

import (
	"context"
	"errors"
)

// ErrAborted is returned by a Prompter when the user cancels a question.
var ErrAborted = errors.New("aborted")

// Option is one choice of a Select question.
type Option struct {
	Label string
	Value string
}

// Question describes a single prompt.
type Question struct {
	Title       string
	Description string
	Placeholder string
	// Suggestions are offered for completion by Input.
	Suggestions []string
	// Options are the choices of a Select; the first is the default.
	Options []Option
	// Validate, when set, is run on the answer before it is accepted.
	Validate func(string) error
}

// Prompter asks questions. Implementations return ErrAborted when the user
// cancels.
type Prompter interface {
	Select(ctx context.Context, q Question) (string, error)
	Input(ctx context.Context, q Question) (string, error)
	Text(ctx context.Context, q Question) (string, error)
	Confirm(ctx context.Context, q Question) (bool, error)
}
