package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/gorewood/gitcc/internal/conventional"
	"github.com/gorewood/gitcc/internal/history"
	"github.com/gorewood/gitcc/internal/output"
)

// Notes is one release worth of changes.
type Notes struct {
	Version string
	Date    time.Time
	Changes []history.Change
	All     bool
}

// Section is a titled group of changes.
type Section struct {
	Title   string           `json:"title"`
	Changes []history.Change `json:"changes"`
}

var titledTypes = []struct {
	name  string
	title string
}{
	{"feat", "Features"},
	{"fix", "Bug Fixes"},
	{"perf", "Performance Improvements"},
	{"revert", "Reverts"},
}

const otherTitle = "Other Changes"

// Sections groups the changes in display order. Empty sections are omitted.
func (n Notes) Sections() []Section {
	byType := map[string][]history.Change{}
	var other []history.Change
	for _, change := range n.Changes {
		if isTitled(change.Message.Type) {
			byType[change.Message.Type] = append(byType[change.Message.Type], change)
			continue
		}
		other = append(other, change)
	}

	var sections []Section
	for _, tt := range titledTypes {
		if changes := byType[tt.name]; len(changes) > 0 {
			sections = append(sections, Section{Title: tt.title, Changes: changes})
		}
	}
	if n.All && len(other) > 0 {
		sections = append(sections, Section{Title: otherTitle, Changes: other})
	}
	return sections
}

// Breaking returns the breaking changes, regardless of type.
func (n Notes) Breaking() []history.Change {
	var breaking []history.Change
	for _, change := range n.Changes {
		if change.Message.Breaking {
			breaking = append(breaking, change)
		}
	}
	return breaking
}

func isTitled(name string) bool {
	for _, tt := range titledTypes {
		if tt.name == name {
			return true
		}
	}
	return false
}

// FormatMarkdown renders the notes as a changelog section.
func FormatMarkdown(notes Notes) string {
	var builder strings.Builder

	writeHeading(&builder, notes)
	writeBreaking(&builder, notes.Breaking())
	for _, section := range notes.Sections() {
		fmt.Fprintf(&builder, "### %s\n\n", section.Title)
		for _, change := range section.Changes {
			writeItem(&builder, change.Message, change.Message.Subject, shortHash(change.Hash))
		}
		builder.WriteString("\n")
	}

	return builder.String()
}

// writeHeading writes the release heading. Unversioned notes are not dated.
func writeHeading(builder *strings.Builder, notes Notes) {
	if notes.Version == "" {
		builder.WriteString("## Unreleased\n\n")
		return
	}
	if notes.Date.IsZero() {
		fmt.Fprintf(builder, "## %s\n\n", notes.Version)
		return
	}
	fmt.Fprintf(builder, "## %s (%s)\n\n", notes.Version, notes.Date.Format("2006-01-02"))
}

func writeBreaking(builder *strings.Builder, breaking []history.Change) {
	if len(breaking) == 0 {
		return
	}
	builder.WriteString("### BREAKING CHANGES\n\n")
	for _, change := range breaking {
		note := change.Message.BreakingNote
		if note == "" {
			note = change.Message.Subject
		}
		writeItem(builder, change.Message, note, "")
	}
	builder.WriteString("\n")
}

// writeItem writes one list entry; multi-line text is indented under it.
func writeItem(builder *strings.Builder, msg conventional.Message, text, hash string) {
	builder.WriteString("- ")
	if msg.Scope != "" {
		fmt.Fprintf(builder, "**%s:** ", msg.Scope)
	}
	builder.WriteString(strings.ReplaceAll(strings.TrimSpace(text), "\n", "\n  "))
	if hash != "" {
		fmt.Fprintf(builder, " (%s)", hash)
	}
	builder.WriteString("\n")
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

// PrependFile inserts content at the top of the changelog at path, below a
// leading "# " title line when there is one. A missing file is created.
func PrependFile(path, content string) error {
	existing, err := os.ReadFile(path) //nolint:gosec // path is chosen by the user
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return output.NewSystemErrorWithCause(fmt.Sprintf("failed to read %s: %v", path, err), err)
	}

	var builder strings.Builder
	rest := string(existing)
	if strings.HasPrefix(rest, "# ") {
		title, after, _ := strings.Cut(rest, "\n")
		builder.WriteString(title + "\n\n")
		rest = strings.TrimLeft(after, "\n")
	}
	builder.WriteString(strings.TrimRight(content, "\n") + "\n")
	if rest != "" {
		builder.WriteString("\n" + rest)
	}

	//nolint:gosec // changelogs are tracked files and keep the usual mode
	if err := os.WriteFile(path, []byte(builder.String()), 0o644); err != nil {
		return output.NewSystemErrorWithCause(fmt.Sprintf("failed to write %s: %v", path, err), err)
	}
	return nil
}
