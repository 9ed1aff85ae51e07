// Package diagnostics turns engine diagnostics into user-facing messages.
package diagnostics

import (
	"fmt"
	"strings"

	"go.trai.ch/assetpipe/internal/core/domain"
)

// Summarize normalizes the diagnostics of r.
//
// Only the first error is kept: later errors are usually cascades of the
// first one. Warnings are kept in full, in engine order.
func Summarize(r *domain.CompileResult) domain.DiagnosticsSummary {
	if r == nil {
		return domain.DiagnosticsSummary{}
	}

	s := domain.DiagnosticsSummary{Stats: r.Stats}
	if len(r.Errors) > 0 {
		s.Errors = []string{Format(r.Errors[0])}
		s.Dropped = len(r.Errors) - 1
	}
	if len(r.Warnings) > 0 {
		s.Warnings = make([]string, 0, len(r.Warnings))
		for _, w := range r.Warnings {
			s.Warnings = append(s.Warnings, Format(w))
		}
	}
	return s
}

// Format renders d as its location and text, followed by the offending source
// line and any notes.
func Format(d domain.Diagnostic) string {
	var b strings.Builder
	b.WriteString(d.String())

	if d.LineText != "" {
		fmt.Fprintf(&b, "\n\n%5d | %s", d.Line, d.LineText)
		if d.Column >= 0 {
			fmt.Fprintf(&b, "\n      | %s^", strings.Repeat(" ", d.Column))
		}
	}
	for _, n := range d.Notes {
		b.WriteString("\n\n")
		b.WriteString(n)
	}

	return b.String()
}
