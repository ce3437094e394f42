package diag

import "fmt"

// Kind classifies a diagnostic. The core never emits Warning-level
// diagnostics distinct from Info.
type Kind int

const (
	Error Kind = iota
	Info
)

func (k Kind) String() string {
	if k == Error {
		return "error"
	}
	return "info"
}

// Related is a secondary span attached to a Diagnostic, e.g. "previously
// defined here" pointing at an earlier declaration.
type Related struct {
	Span    Span
	Message string
}

// Diagnostic is one machine-readable entry in the compiler's diagnostic
// stream. The core never formats these for a terminal; Render (below) is
// a reference implementation a host can use or ignore.
type Diagnostic struct {
	Kind    Kind
	Span    Span
	Message string
	Related []Related
}

// List accumulates diagnostics produced while compiling one or more
// sources. It is the single append-only resource shared across scopes
// during lowering: every Add call is expected from a single
// borrower at a time, so List itself does no locking.
type List struct {
	diags []Diagnostic
}

// NewList returns an empty diagnostics list.
func NewList() *List {
	return &List{}
}

// Add appends a diagnostic.
func (l *List) Add(d Diagnostic) {
	l.diags = append(l.diags, d)
}

// Errorf appends an Error diagnostic at span.
func (l *List) Errorf(span Span, format string, args ...any) {
	l.Add(Diagnostic{Kind: Error, Span: span, Message: sprintf(format, args...)})
}

// ErrorWithRelated appends an Error diagnostic with a "previously defined
// here"-style related span.
func (l *List) ErrorWithRelated(span Span, message string, related Span, relatedMessage string) {
	l.Add(Diagnostic{
		Kind:    Error,
		Span:    span,
		Message: message,
		Related: []Related{{Span: related, Message: relatedMessage}},
	})
}

// Infof appends an Info diagnostic at span.
func (l *List) Infof(span Span, format string, args ...any) {
	l.Add(Diagnostic{Kind: Info, Span: span, Message: sprintf(format, args...)})
}

// All returns every diagnostic recorded so far, in recording order.
func (l *List) All() []Diagnostic {
	return l.diags
}

// HasErrors reports whether any Error-kind diagnostic has been recorded.
// The host's exit status is non-zero iff this is true.
func (l *List) HasErrors() bool {
	for _, d := range l.diags {
		if d.Kind == Error {
			return true
		}
	}
	return false
}

// Len returns the number of diagnostics recorded.
func (l *List) Len() int {
	return len(l.diags)
}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
