// Package scope implements the persistent name-resolution chain walked
// during lowering. It mirrors backend/src/scope.rs from the original
// reproto sources: a Scope is an immutable cons-list node sharing a
// single Root, so creating a child scope for a nested declaration never
// mutates the parent and is cheap to fork across sibling declarations.
package scope

import (
	"sync/atomic"

	"github.com/reproto/reproto/internal/ir"
)

// root holds the state shared by every Scope descended from the same
// file: the type-ID allocator, the global package prefix, the file's
// own package, and its `use ... as alias` prefix table.
type root struct {
	nextTypeID    uint64
	packagePrefix *ir.Package
	pkg           ir.Package
	prefixes      map[string]ir.Package
}

// Scope is one node in the persistent name-resolution chain: either the
// file root or a named child pushed when lowering descends into a
// declaration or sub-type body.
type Scope struct {
	root   *root
	name   string // empty at the root
	parent *Scope
}

// New creates a root scope for one file.
func New(packagePrefix *ir.Package, pkg ir.Package, prefixes map[string]ir.Package) *Scope {
	return &Scope{root: &root{packagePrefix: packagePrefix, pkg: pkg, prefixes: prefixes}}
}

// Child returns a new scope nested one level under s, named name. s
// itself is never modified, so sibling declarations can each derive
// their own child from the same parent scope.
func (s *Scope) Child(name string) *Scope {
	return &Scope{root: s.root, name: name, parent: s}
}

// LookupPrefix resolves a `use ... as alias` prefix to the package it
// refers to.
func (s *Scope) LookupPrefix(prefix string) (ir.Package, bool) {
	pkg, ok := s.root.prefixes[prefix]
	return pkg, ok
}

// Package returns this scope's file package, with the global package
// prefix (if any) prepended.
func (s *Scope) Package() ir.Package {
	if s.root.packagePrefix == nil {
		return s.root.pkg
	}
	joined := *s.root.packagePrefix
	joined.Parts = append(append([]string{}, joined.Parts...), s.root.pkg.Parts...)
	joined.Version = s.root.pkg.Version
	return joined
}

// NextTypeID allocates the next globally unique type ID for this
// scope's root. IDs start at 0 and are unique across every Scope sharing
// that root.
func (s *Scope) NextTypeID() uint64 {
	return atomic.AddUint64(&s.root.nextTypeID, 1) - 1
}

// Path returns the dotted sequence of names from the file root down to
// this scope, e.g. ["Shape", "Circle"] for a sub-type nested in an
// interface declaration.
func (s *Scope) Path() []string {
	var parts []string
	for cur := s; cur.parent != nil; cur = cur.parent {
		parts = append(parts, cur.name)
	}
	// parts was built innermost-first; reverse in place.
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return parts
}

// AsName builds the fully qualified ir.AbsoluteName this scope refers
// to: the scope's package plus its dotted Path.
func (s *Scope) AsName() ir.AbsoluteName {
	return ir.AbsoluteName{Package: s.Package(), Parts: s.Path()}
}
