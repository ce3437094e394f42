package ast

import "github.com/reproto/reproto/internal/diag"

// Package is an ordered sequence of identifier parts, e.g. `a.b.c`.
type Package struct {
	Parts []string
}

func (p Package) String() string {
	s := ""
	for i, part := range p.Parts {
		if i > 0 {
			s += "."
		}
		s += part
	}
	return s
}

// Name is a type or value reference as written in source, before package
// resolution. `foo::Bar.Baz` parses to Prefix="foo", Parts=["Bar","Baz"].
// A name with no `::` has Prefix == nil and is resolved relative to the
// current package.
type Name struct {
	Span   diag.Span
	Prefix *string
	Parts  []string
}
