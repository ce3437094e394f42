// Package ast defines the span-annotated abstract syntax tree produced by
// the parser. AST nodes are short-lived: they are consumed by lowering
// (internal/lower) and never retained afterwards.
package ast

import "github.com/reproto/reproto/internal/diag"

// Located is an alias of diag.Located, used throughout the AST so every
// node — down to individual path segments and attribute items — carries
// its span.
type Located[T any] = diag.Located[T]

// Modifier marks whether a field is required or may be absent.
type Modifier int

const (
	Required Modifier = iota
	Optional
)

// At wraps value with span, matching diag.At's signature for AST call
// sites that don't want to import internal/diag directly.
func At[T any](span diag.Span, value T) Located[T] {
	return diag.At(span, value)
}
