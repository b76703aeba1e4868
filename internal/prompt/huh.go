package prompt

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/huh"
)

// Terminal is a Prompter that renders each question as a one-field huh form.
// In accessible mode huh falls back to plain line-based prompts, which also
// work when input is piped.
type Terminal struct {
	In         io.Reader
	Out        io.Writer
	Accessible bool
}

// NewTerminal creates a terminal prompter.
func NewTerminal(in io.Reader, out io.Writer, accessible bool) *Terminal {
	return &Terminal{In: in, Out: out, Accessible: accessible}
}

// Select asks for one of q.Options, preselecting the first.
func (t *Terminal) Select(ctx context.Context, q Question) (string, error) {
	var value string
	if len(q.Options) > 0 {
		value = q.Options[0].Value
	}
	opts := make([]huh.Option[string], 0, len(q.Options))
	for _, o := range q.Options {
		opts = append(opts, huh.NewOption(o.Label, o.Value))
	}
	field := huh.NewSelect[string]().
		Title(q.Title).
		Description(q.Description).
		Options(opts...).
		Value(&value)
	if err := t.run(ctx, field); err != nil {
		return "", err
	}
	return value, nil
}

// Input asks for a single line, offering q.Suggestions as completions.
func (t *Terminal) Input(ctx context.Context, q Question) (string, error) {
	var value string
	field := huh.NewInput().
		Title(q.Title).
		Description(q.Description).
		Placeholder(q.Placeholder).
		Suggestions(q.Suggestions).
		Value(&value)
	if q.Validate != nil {
		field = field.Validate(q.Validate)
	}
	if err := t.run(ctx, field); err != nil {
		return "", err
	}
	return value, nil
}

// Text asks for free-form multi-line text.
func (t *Terminal) Text(ctx context.Context, q Question) (string, error) {
	var value string
	field := huh.NewText().
		Title(q.Title).
		Description(q.Description).
		Placeholder(q.Placeholder).
		Lines(5).
		Value(&value)
	if q.Validate != nil {
		field = field.Validate(q.Validate)
	}
	if err := t.run(ctx, field); err != nil {
		return "", err
	}
	return value, nil
}

// Confirm asks a yes/no question. The default answer is no.
func (t *Terminal) Confirm(ctx context.Context, q Question) (bool, error) {
	var value bool
	field := huh.NewConfirm().
		Title(q.Title).
		Description(q.Description).
		Affirmative("Yes").
		Negative("No").
		Value(&value)
	if err := t.run(ctx, field); err != nil {
		return false, err
	}
	return value, nil
}

func (t *Terminal) run(ctx context.Context, field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithAccessible(t.Accessible).
		WithShowHelp(!t.Accessible).
		WithInput(t.In).
		WithOutput(t.Out)
	err := form.RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
		return ErrAborted
	}
	return err
}
