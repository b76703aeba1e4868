package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gorewood/gitcc/internal/conventional"
	"github.com/gorewood/gitcc/internal/output"
)

// Collector asks for every field of a conventional commit in order.
type Collector struct {
	Prompter Prompter
	Types    conventional.TypeSet
	// Scopes are offered as completions for the scope question.
	Scopes []string
	// Width is announced before the first question; zero skips the notice.
	Width int
	// Notice receives the wrapping notice. Nil discards it.
	Notice io.Writer
}

// NewCollector creates a collector for the given type set.
func NewCollector(p Prompter, types conventional.TypeSet) *Collector {
	if len(types) == 0 {
		types = conventional.DefaultTypes()
	}
	return &Collector{Prompter: p, Types: types}
}

// Collect runs the prompts and returns the normalized message. An empty
// subject is asked for twice before giving up; cancelling any question is an
// input error.
func (c *Collector) Collect(ctx context.Context) (conventional.Message, error) {
	if c.Notice != nil && c.Width > 0 {
		_, _ = fmt.Fprintf(c.Notice, "\nAll commit message lines will be cropped at %d characters.\n\n", c.Width)
	}

	var (
		msg conventional.Message
		err error
	)

	msg.Type, err = c.Prompter.Select(ctx, Question{
		Title:   "Select the type of change that you're committing",
		Options: c.typeOptions(),
	})
	if err != nil {
		return msg, wrapAbort(err)
	}

	msg.Scope, err = c.Prompter.Input(ctx, Question{
		Title:       "What is the scope of this change (e.g. component or file name)?",
		Description: "Press enter to skip.",
		Suggestions: c.Scopes,
		Validate:    validScope,
	})
	if err != nil {
		return msg, wrapAbort(err)
	}

	if msg.Subject, err = c.subject(ctx); err != nil {
		return msg, err
	}

	msg.Body, err = c.Prompter.Text(ctx, Question{
		Title:       "Provide a longer description of the change",
		Description: "Press enter to skip.",
	})
	if err != nil {
		return msg, wrapAbort(err)
	}

	msg.Breaking, err = c.Prompter.Confirm(ctx, Question{
		Title: "Are there any breaking changes?",
	})
	if err != nil {
		return msg, wrapAbort(err)
	}
	if msg.Breaking {
		msg.BreakingNote, err = c.Prompter.Input(ctx, Question{
			Title:       "Describe the breaking changes",
			Description: "Press enter to reuse the subject.",
		})
		if err != nil {
			return msg, wrapAbort(err)
		}
	}

	msg.Issues, err = c.Prompter.Input(ctx, Question{
		Title:       "Related issues",
		Description: "Press enter to skip.",
		Placeholder: "#123, #456",
	})
	if err != nil {
		return msg, wrapAbort(err)
	}

	return msg.Normalize(), nil
}

func (c *Collector) subject(ctx context.Context) (string, error) {
	q := Question{
		Title:    "Write a short, imperative tense description of the change",
		Validate: singleLine,
	}
	for range 2 {
		subject, err := c.Prompter.Input(ctx, q)
		if err != nil {
			return "", wrapAbort(err)
		}
		if s := strings.TrimSpace(subject); s != "" {
			return s, nil
		}
		q.Description = "The subject is required."
	}
	return "", output.NewInputError("subject is required")
}

// Confirm shows the rendered message and asks whether to commit it.
// Declining is an input error.
func Confirm(ctx context.Context, p Prompter, printer *output.Printer, message string) error {
	printer.Message(message)
	ok, err := p.Confirm(ctx, Question{Title: "Commit with this message?"})
	if err != nil {
		return wrapAbort(err)
	}
	if !ok {
		return output.NewInputError("commit cancelled")
	}
	return nil
}

func (c *Collector) typeOptions() []Option {
	opts := make([]Option, 0, len(c.Types))
	for _, t := range c.Types {
		opts = append(opts, Option{Label: t.Label(), Value: t.Name})
	}
	return opts
}

func wrapAbort(err error) error {
	if errors.Is(err, ErrAborted) {
		return output.NewInputErrorWithCause("aborted", err)
	}
	return output.NewSystemErrorWithCause("prompt failed: "+err.Error(), err)
}

func singleLine(s string) error {
	if strings.ContainsAny(s, "\r\n") {
		return errors.New("must be a single line")
	}
	return nil
}

func validScope(s string) error {
	if strings.ContainsAny(s, "()") {
		return errors.New("scope cannot contain parentheses")
	}
	return singleLine(s)
}
