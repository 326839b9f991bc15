// Package detector picks the report format from the output environment.
package detector

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Format is the rendering of a report.
type Format int

const (
	// FormatAuto picks a format from the destination.
	FormatAuto Format = iota
	// FormatTable renders the human-readable table.
	FormatTable
	// FormatJSON renders machine-readable JSON.
	FormatJSON
)

// String returns the flag spelling of the format.
func (f Format) String() string {
	switch f {
	case FormatTable:
		return "table"
	case FormatJSON:
		return "json"
	case FormatAuto:
		return "auto"
	default:
		return "auto"
	}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// DetectFormat returns FormatTable for terminals and FormatJSON otherwise.
func DetectFormat(w io.Writer) Format {
	if IsTerminal(w) {
		return FormatTable
	}
	return FormatJSON
}

// ResolveFormat applies the user's --output flag to the detected format.
// userFlag should be one of: "auto", "table", "json", or empty.
func ResolveFormat(detected Format, userFlag string) Format {
	switch userFlag {
	case "table":
		return FormatTable
	case "json":
		return FormatJSON
	case "auto", "":
		return detected
	default:
		return detected
	}
}
