package conventional

import (
	"errors"
	"regexp"
	"strings"
)

// Parse errors. They describe grammar violations, not validation failures.
var (
	ErrEmptyMessage     = errors.New("commit message is empty")
	ErrMalformedHeader  = errors.New("header must match <type>[(<scope>)][!]: <subject>")
	ErrMissingSeparator = errors.New("body must be separated from the header by a blank line")
)

var (
	headerPattern = regexp.MustCompile(`^([A-Za-z][\w-]*)(?:\(([^()\r\n]*)\))?(!)?:(?: (.*))?$`)
	footerPattern = regexp.MustCompile(`^(BREAKING[ -]CHANGE|[\w-]+)(: | #)(.*)$`)
)

// scissorsPrefix starts the line git inserts for --cleanup=scissors and
// commit -v; everything from it on is discarded.
const scissorsPrefix = "# ------------------------ >8 ------------------------"

// Parse splits a commit message into its conventional parts. Git comment
// lines are dropped first. A "!" in the header or a BREAKING CHANGE footer
// marks the message as breaking.
func Parse(text string) (Message, error) {
	lines := cleanLines(text)
	if len(lines) == 0 {
		return Message{}, ErrEmptyMessage
	}

	match := headerPattern.FindStringSubmatch(lines[0])
	if match == nil {
		return Message{}, ErrMalformedHeader
	}
	msg := Message{
		Type:     match[1],
		Scope:    match[2],
		Breaking: match[3] == "!",
		Subject:  strings.TrimSpace(match[4]),
	}

	if len(lines) == 1 {
		return msg, nil
	}
	if strings.TrimSpace(lines[1]) != "" {
		return Message{}, ErrMissingSeparator
	}

	paragraphs := splitParagraphs(lines[2:])
	if n := len(paragraphs); n > 0 && isFooterBlock(paragraphs[n-1]) {
		msg.Footers = parseFooters(paragraphs[n-1])
		paragraphs = paragraphs[:n-1]
	}
	msg.Body = strings.Join(paragraphs, "\n\n")

	kept := msg.Footers[:0]
	for _, footer := range msg.Footers {
		if isBreakingToken(footer.Token) {
			msg.Breaking = true
			msg.BreakingNote = footer.Value
			continue
		}
		kept = append(kept, footer)
	}
	msg.Footers = kept
	if len(msg.Footers) == 0 {
		msg.Footers = nil
	}

	return msg, nil
}

// Parse is the package Parse plus the formatter's own conventions: a type
// emoji in front of the subject is removed and the issues trailer is lifted
// into Message.Issues.
func (f Formatter) Parse(text string) (Message, error) {
	msg, err := Parse(text)
	if err != nil {
		return msg, err
	}
	msg.Subject = f.Types.stripEmoji(msg.Type, msg.Subject)

	token := f.issuesToken()
	kept := msg.Footers[:0]
	for _, footer := range msg.Footers {
		if msg.Issues == "" && strings.EqualFold(footer.Token, token) {
			msg.Issues = footer.Value
			continue
		}
		kept = append(kept, footer)
	}
	msg.Footers = kept
	if len(msg.Footers) == 0 {
		msg.Footers = nil
	}
	return msg, nil
}

// cleanLines drops comment lines, anything below the scissors line and
// trailing blank lines.
func cleanLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var lines []string
	for line := range strings.SplitSeq(text, "\n") {
		if strings.HasPrefix(line, scissorsPrefix) {
			break
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, strings.TrimRight(line, " \t"))
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func splitParagraphs(lines []string) []string {
	var (
		paragraphs []string
		current    []string
	)
	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, "\n"))
			current = nil
		}
	}
	for _, line := range lines {
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return paragraphs
}

func isFooterBlock(paragraph string) bool {
	first, _, _ := strings.Cut(paragraph, "\n")
	return footerPattern.MatchString(first)
}

// parseFooters reads a footer paragraph. Lines that do not start a new
// trailer continue the value of the previous one.
func parseFooters(paragraph string) []Footer {
	var footers []Footer
	for line := range strings.SplitSeq(paragraph, "\n") {
		match := footerPattern.FindStringSubmatch(line)
		if match == nil {
			if n := len(footers); n > 0 {
				footers[n-1].Value += "\n" + line
			}
			continue
		}
		footers = append(footers, Footer{Token: match[1], Separator: match[2], Value: match[3]})
	}
	return footers
}

func isBreakingToken(token string) bool {
	return token == BreakingToken || token == "BREAKING-CHANGE"
}
