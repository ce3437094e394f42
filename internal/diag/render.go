package diag

import (
	"fmt"
	"strings"
)

// Render formats a diagnostic as the host is expected to: one
// `file:line:col: message` line per primary span, followed by a source
// excerpt, followed by any related spans. The core does not call this
// itself — rendering is left to the caller — it exists so tests
// and simple hosts don't need to reimplement it.
func Render(d Diagnostic, sources *Set) string {
	var b strings.Builder
	writeLocated(&b, d.Kind.String(), d.Span, d.Message, sources)
	for _, r := range d.Related {
		writeLocated(&b, "note", r.Span, r.Message, sources)
	}
	return b.String()
}

func writeLocated(b *strings.Builder, label string, span Span, message string, sources *Set) {
	src := sources.Get(span.Source)
	if src == nil {
		fmt.Fprintf(b, "<unknown>: %s: %s\n", label, message)
		return
	}
	pos := src.LineCol(span.Start, UTF8Columns)
	fmt.Fprintf(b, "%s:%d:%d: %s: %s\n", src.Name, pos.Line, pos.Col, label, message)
	fmt.Fprintf(b, "  %s\n", src.Excerpt(span.Start))
	if pos.Col > 0 {
		fmt.Fprintf(b, "  %s^\n", strings.Repeat(" ", pos.Col-1))
	}
}

// RenderAll renders every diagnostic in l, separated by blank lines.
func RenderAll(l *List, sources *Set) string {
	parts := make([]string, 0, l.Len())
	for _, d := range l.All() {
		parts = append(parts, Render(d, sources))
	}
	return strings.Join(parts, "\n")
}
