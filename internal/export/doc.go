// Package export renders release notes from Conventional Commits history.
//
// The input is the list of changes made since the latest release tag, as
// returned by history.Repo.Unreleased. Changes are grouped by type:
//
//   - BREAKING CHANGES: every breaking change, with its note
//   - Features: feat
//   - Bug Fixes: fix
//   - Performance Improvements: perf
//   - Reverts: revert
//
// Other types are left out unless Notes.All is set, in which case they are
// collected under "Other Changes".
//
// # Markdown
//
//	text := export.FormatMarkdown(notes)
//	export.PrependFile("CHANGELOG.md", text)
//
// PrependFile keeps a leading "# Title" line of an existing changelog at the
// top and inserts the new release below it.
//
// # JSON
//
//	export.FormatJSON(printer, notes)
//
// The JSON document carries the same sections as the markdown output.
package export
