package domain

import (
	"fmt"
	"strings"
)

// Diagnostic is a compiler message with an optional source location.
type Diagnostic struct {
	Text     string
	File     string
	Line     int
	Column   int
	LineText string
	Notes    []string
	Plugin   string
}

// Location renders file:line:col, omitting the parts that are unknown.
func (d Diagnostic) Location() string {
	switch {
	case d.File == "":
		return ""
	case d.Line == 0:
		return d.File
	default:
		return fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column)
	}
}

func (d Diagnostic) String() string {
	var b strings.Builder
	if loc := d.Location(); loc != "" {
		b.WriteString(loc)
		b.WriteString(": ")
	}
	if d.Plugin != "" {
		fmt.Fprintf(&b, "[plugin %s] ", d.Plugin)
	}
	b.WriteString(d.Text)
	return b.String()
}

// CompileResult is the structured report of a compilation that ran to completion.
type CompileResult struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Stats    *Stats
}

// DiagnosticsSummary is the normalized, user-facing view of a compilation.
type DiagnosticsSummary struct {
	// Errors holds at most one formatted error.
	Errors   []string
	Warnings []string
	// Dropped counts the errors discarded by truncation.
	Dropped int
	Stats   *Stats
}

// Failed reports whether the compilation produced an error.
func (s DiagnosticsSummary) Failed() bool {
	return len(s.Errors) > 0
}

// HasWarnings reports whether the compilation produced warnings.
func (s DiagnosticsSummary) HasWarnings() bool {
	return len(s.Warnings) > 0
}
