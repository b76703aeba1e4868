package conventional

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// autoPrefixes are headers git or its tooling write on their own; the
// linter lets them through untouched.
var autoPrefixes = []string{"Merge ", "Revert \"", "fixup! ", "squash! ", "amend! "}

// Linter checks complete commit message texts.
type Linter struct {
	formatter Formatter
	validator *Validator
}

// NewLinter returns a Linter for the given types and options.
func NewLinter(types TypeSet, opts Options) *Linter {
	f := NewFormatter(types, opts)
	return &Linter{formatter: f, validator: NewValidator(f.Types)}
}

// LintResult is the outcome of linting one message.
type LintResult struct {
	Message  Message  `json:"message"`
	Skipped  bool     `json:"skipped,omitempty"`
	Problems []string `json:"problems,omitempty"`
}

// OK reports whether the message passed.
func (r LintResult) OK() bool {
	return len(r.Problems) == 0
}

// Lint parses and validates text. Grammar errors are reported as problems
// rather than returned, so a hook can print them all at once.
func (l *Linter) Lint(text string) LintResult {
	lines := cleanLines(text)
	if len(lines) > 0 && isAutoMessage(lines[0]) {
		return LintResult{Skipped: true}
	}

	msg, err := l.formatter.Parse(text)
	if err != nil {
		return LintResult{Problems: []string{err.Error()}}
	}

	result := LintResult{Message: msg, Problems: l.validator.Problems(msg)}
	if limit := l.formatter.Options.MaxHeaderLength; limit > 0 {
		if width := ansi.StringWidth(lines[0]); width > limit {
			result.Problems = append(result.Problems,
				fmt.Sprintf("header is %d characters long, limit is %d", width, limit))
		}
	}
	return result
}

func isAutoMessage(header string) bool {
	for _, prefix := range autoPrefixes {
		if strings.HasPrefix(header, prefix) {
			return true
		}
	}
	return false
}
