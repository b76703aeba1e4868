package conventional

import "strings"

// Footer is a git trailer in the footer block, e.g. "Signed-off-by: A <a@b>".
type Footer struct {
	Token string `json:"token"`
	Value string `json:"value"`
	// Separator is ": " or " #".
	Separator string `json:"separator,omitempty"`
}

// String renders the footer line.
func (f Footer) String() string {
	sep := f.Separator
	if sep == "" {
		sep = ": "
	}
	return f.Token + sep + f.Value
}

// Message holds the fields of one conventional commit.
type Message struct {
	Type         string   `json:"type"                    validate:"required,committype"`
	Scope        string   `json:"scope,omitempty"         validate:"omitempty,singleline,excludesall=()"`
	Subject      string   `json:"subject"                 validate:"required,singleline"`
	Body         string   `json:"body,omitempty"`
	Breaking     bool     `json:"breaking"`
	BreakingNote string   `json:"breaking_note,omitempty"`
	Issues       string   `json:"issues,omitempty"        validate:"omitempty,singleline"`
	Footers      []Footer `json:"footers,omitempty"`
}

// Normalize trims surrounding whitespace from every field. Input from the
// prompts and from MCP callers goes through it before validation.
func (m Message) Normalize() Message {
	m.Type = strings.TrimSpace(m.Type)
	m.Scope = strings.TrimSpace(m.Scope)
	m.Subject = strings.TrimSpace(m.Subject)
	m.Body = strings.TrimSpace(m.Body)
	m.BreakingNote = strings.TrimSpace(m.BreakingNote)
	m.Issues = strings.TrimSpace(m.Issues)
	return m
}
