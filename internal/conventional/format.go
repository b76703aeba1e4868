package conventional

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// BreakingToken is the footer token that marks a breaking change.
const BreakingToken = "BREAKING CHANGE"

// Options control rendering. Zero MaxHeaderLength or WrapWidth disables
// truncation or wrapping respectively.
type Options struct {
	MaxHeaderLength int    `json:"max_header_length" koanf:"max_header_length" yaml:"max_header_length" validate:"gte=0"`
	WrapWidth       int    `json:"wrap_width"        koanf:"wrap_width"        yaml:"wrap_width"        validate:"gte=0"`
	Emoji           bool   `json:"emoji"             koanf:"emoji"             yaml:"emoji"`
	BreakingBang    bool   `json:"breaking_bang"     koanf:"breaking_bang"     yaml:"breaking_bang"`
	IssuesToken     string `json:"issues_token"      koanf:"issues_token"      yaml:"issues_token"      validate:"required,trailertoken"`
}

// DefaultOptions returns the rendering defaults: lines capped and wrapped at
// 100 columns, no emoji, no "!" marker, issues under a "Refs" trailer.
func DefaultOptions() Options {
	return Options{
		MaxHeaderLength: 100,
		WrapWidth:       100,
		IssuesToken:     "Refs",
	}
}

// Formatter renders and parses messages for one type set and option set.
type Formatter struct {
	Types   TypeSet
	Options Options
}

// NewFormatter returns a Formatter. A nil type set falls back to DefaultTypes.
func NewFormatter(types TypeSet, opts Options) Formatter {
	if len(types) == 0 {
		types = DefaultTypes()
	}
	return Formatter{Types: types, Options: opts}
}

// Format renders msg with the default types and options.
func Format(msg Message) string {
	return NewFormatter(nil, DefaultOptions()).Format(msg)
}

// Format renders msg. It is a pure function of msg and the formatter.
func (f Formatter) Format(msg Message) string {
	var b strings.Builder
	b.WriteString(f.Header(msg))

	if msg.Body != "" {
		b.WriteString("\n\n")
		b.WriteString(f.wrap(msg.Body))
	}

	if footers := f.footers(msg); len(footers) > 0 {
		lines := make([]string, 0, len(footers))
		for _, footer := range footers {
			lines = append(lines, footer.String())
		}
		b.WriteString("\n\n")
		b.WriteString(f.wrap(strings.Join(lines, "\n")))
	}

	return b.String()
}

// Header renders the first line only.
func (f Formatter) Header(msg Message) string {
	var b strings.Builder
	b.WriteString(msg.Type)
	if msg.Scope != "" {
		b.WriteString("(" + msg.Scope + ")")
	}
	if msg.Breaking && f.Options.BreakingBang {
		b.WriteString("!")
	}
	b.WriteString(": ")
	if f.Options.Emoji {
		if t, ok := f.Types.Lookup(msg.Type); ok && t.Emoji != "" {
			b.WriteString(t.Emoji + " ")
		}
	}
	b.WriteString(msg.Subject)

	header := b.String()
	if f.Options.MaxHeaderLength > 0 {
		header = ansi.Truncate(header, f.Options.MaxHeaderLength, "")
	}
	return header
}

// footers lists the trailers in render order: breaking change, issues, then
// any trailers carried over from a parsed message.
func (f Formatter) footers(msg Message) []Footer {
	var out []Footer
	if msg.Breaking {
		note := msg.BreakingNote
		if note == "" {
			note = msg.Subject
		}
		out = append(out, Footer{Token: BreakingToken, Value: note})
	}
	if msg.Issues != "" {
		out = append(out, Footer{Token: f.issuesToken(), Value: msg.Issues})
	}
	return append(out, msg.Footers...)
}

func (f Formatter) issuesToken() string {
	if f.Options.IssuesToken == "" {
		return DefaultOptions().IssuesToken
	}
	return f.Options.IssuesToken
}

func (f Formatter) wrap(s string) string {
	if f.Options.WrapWidth <= 0 {
		return s
	}
	return ansi.Wordwrap(s, f.Options.WrapWidth, "")
}
