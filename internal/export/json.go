package export

import (
	"github.com/gorewood/gitcc/internal/history"
	"github.com/gorewood/gitcc/internal/output"
)

type notesJSON struct {
	Version  string           `json:"version"`
	Date     string           `json:"date,omitempty"`
	Breaking []history.Change `json:"breaking"`
	Sections []Section        `json:"sections"`
}

// FormatJSON writes the notes as a single JSON document to the printer.
func FormatJSON(printer *output.Printer, notes Notes) error {
	doc := notesJSON{
		Version:  notes.Version,
		Breaking: notes.Breaking(),
		Sections: notes.Sections(),
	}
	if !notes.Date.IsZero() {
		doc.Date = notes.Date.Format("2006-01-02")
	}
	if doc.Breaking == nil {
		doc.Breaking = []history.Change{}
	}
	if doc.Sections == nil {
		doc.Sections = []Section{}
	}
	return printer.WriteJSON(doc)
}
