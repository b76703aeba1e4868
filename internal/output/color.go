package output

import (
	"io"
	"os"

	"golang.org/x/term"
)

// ResolveColorMode determines the effective isTTY value based on the --color
// flag and actual TTY detection. The colorMode parameter accepts "never",
// "always", or "auto".
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch colorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return isTTY
	}
}

// IsTTY checks if a writer is a terminal.
// Returns true only for an *os.File attached to a terminal.
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return IsTerminal(file)
}

// IsTerminal reports whether f is attached to a terminal. The prompt layer
// uses it on stdin to pick between the full-screen and accessible forms.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int on all supported platforms
}
