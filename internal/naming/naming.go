// Package naming implements the pluggable wire-naming conventions used
// to derive a field's or endpoint's wire name from its declared
// identifier when no explicit `as "..."` override is present. The case
// conversion follows the token-splitting approach in
// goadesign-goa-ai's codegen/naming package, generalized from a single
// snake_case target into the four conventions reproto historically
// supports.
package naming

import (
	"strings"
	"unicode"
)

// Convention converts a lower_snake_case identifier, as written in
// source, into a wire-format name.
type Convention interface {
	Convert(ident string) string
}

// LowerSnake leaves the identifier unchanged: `foo_bar` -> `foo_bar`.
type LowerSnake struct{}

func (LowerSnake) Convert(ident string) string { return ident }

// UpperSnake upper-cases every token: `foo_bar` -> `FOO_BAR`.
type UpperSnake struct{}

func (UpperSnake) Convert(ident string) string { return strings.ToUpper(ident) }

// LowerCamel joins tokens, capitalizing every token except the first:
// `foo_bar` -> `fooBar`.
type LowerCamel struct{}

func (LowerCamel) Convert(ident string) string {
	toks := tokenize(ident)
	if len(toks) == 0 {
		return ident
	}
	var b strings.Builder
	b.WriteString(toks[0])
	for _, t := range toks[1:] {
		b.WriteString(capitalize(t))
	}
	return b.String()
}

// UpperCamel capitalizes every token: `foo_bar` -> `FooBar`.
type UpperCamel struct{}

func (UpperCamel) Convert(ident string) string {
	toks := tokenize(ident)
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(capitalize(t))
	}
	return b.String()
}

func tokenize(ident string) []string {
	var toks []string
	for _, part := range strings.Split(ident, "_") {
		if part != "" {
			toks = append(toks, part)
		}
	}
	return toks
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// ByKeyword resolves the naming-convention keyword recognized in
// `option field_naming = ...;` (and `option endpoint_naming = ...;`)
// to a Convention. An unrecognized keyword reports ok=false so the
// caller can raise a diagnostic rather than silently falling back.
func ByKeyword(keyword string) (Convention, bool) {
	switch keyword {
	case "lower_snake":
		return LowerSnake{}, true
	case "upper_snake":
		return UpperSnake{}, true
	case "lower_camel":
		return LowerCamel{}, true
	case "upper_camel":
		return UpperCamel{}, true
	default:
		return nil, false
	}
}
