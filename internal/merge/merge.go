// Package merge combines the lowered declarations of every file sharing
// one package into a single set, so a type, interface, or enum can be
// split across files the way reproto permits. It generalizes
// core/src/merge.rs's per-kind `Merge` trait implementations (originally
// one impl per RpDecl variant plus a BTreeMap<K, T> blanket impl) into a
// single Merger walking declarations keyed by name.
package merge

import (
	"github.com/reproto/reproto/internal/diag"
	"github.com/reproto/reproto/internal/ir"
)

// Merger combines the per-file declarations of one package into a single
// ir.File, reporting a diagnostic (rather than failing outright) for
// every conflict it finds so a caller can still inspect the rest.
type Merger struct {
	Diags *diag.List
}

// New returns a Merger reporting into diags.
func New(diags *diag.List) *Merger {
	return &Merger{Diags: diags}
}

// Merge combines files sharing one package into a single ir.File. Files
// are merged in argument order: the first file to declare a name owns
// its position for conflict reporting, and later files are folded into
// it declaration by declaration.
func (m *Merger) Merge(pkg ir.Package, files []*ir.File) *ir.File {
	out := &ir.File{Package: pkg, Options: map[string][]ir.Value{}}

	byName := map[string]*ir.Decl{}
	var order []string

	for _, f := range files {
		for k, v := range f.Options {
			if _, dup := out.Options[k]; dup {
				m.Diags.Infof(diag.Span{}, "option `%s` is declared in more than one file; the last value wins", k)
			}
			out.Options[k] = append(out.Options[k], v...)
		}

		for _, d := range f.Decls {
			existing, ok := byName[d.LocalName]
			if !ok {
				byName[d.LocalName] = d
				order = append(order, d.LocalName)
				continue
			}
			m.mergeDecl(existing, d)
		}
	}

	for _, name := range order {
		out.Decls = append(out.Decls, byName[name])
	}

	return out
}

// mergeDecl folds src into dst in place. A decl-kind mismatch (e.g. a
// `type Foo` in one file and an `enum Foo` in another) is reported and
// src is dropped; every other combination dispatches to the kind's own
// merge rule.
func (m *Merger) mergeDecl(dst, src *ir.Decl) {
	if dst.Kind != src.Kind {
		m.Diags.Errorf(diag.Span{}, "cannot merge `%s`: declared as different kinds across files", dst.LocalName)
		return
	}

	switch dst.Kind {
	case ir.DeclType:
		m.mergeFields(dst.LocalName, dst.Type, src.Type)
	case ir.DeclTuple:
		m.mergeFields(dst.LocalName, dst.Tuple, src.Tuple)
	case ir.DeclInterface:
		m.mergeInterface(dst.Interface, src.Interface)
	case ir.DeclEnum:
		// Variants are fixed by the enum's first declaration: extending
		// an enum with additional variants from another file is
		// rejected outright, matching the original model's restriction.
		if len(src.Enum.Variants) > 0 {
			m.Diags.Errorf(diag.Span{}, "cannot extend enum `%s` with additional variants", dst.LocalName)
			return
		}
		dst.Enum.Codes = append(dst.Enum.Codes, src.Enum.Codes...)
		dst.Enum.Inner = append(dst.Enum.Inner, src.Enum.Inner...)
	case ir.DeclService:
		// A service's endpoints are likewise fixed by its first
		// declaration; a later file redeclaring the same service name
		// contributes nothing, matching RpServiceBody's no-op merge.
	}
}

func (m *Merger) mergeFields(name string, dst, src *ir.TypeBody) {
	for _, f := range src.Fields {
		if conflict := findFieldConflict(dst.Fields, f); conflict != nil {
			m.Diags.Errorf(diag.Span{}, "conflict in field `%s` of `%s`", f.Name, name)
			continue
		}
		dst.Fields = append(dst.Fields, f)
	}
	dst.Codes = append(dst.Codes, src.Codes...)
	dst.Inner = append(dst.Inner, src.Inner...)
}

func (m *Merger) mergeInterface(dst, src *ir.InterfaceBody) {
	for _, f := range src.Fields {
		if conflict := findFieldConflict(dst.Fields, f); conflict != nil {
			m.Diags.Errorf(diag.Span{}, "conflict in shared field `%s`", f.Name)
			continue
		}
		dst.Fields = append(dst.Fields, f)
	}
	dst.Inner = append(dst.Inner, src.Inner...)

	bySubName := map[string]*ir.SubType{}
	for _, st := range dst.SubTypes {
		bySubName[st.LocalName] = st
	}

	for _, st := range src.SubTypes {
		existing, ok := bySubName[st.LocalName]
		if !ok {
			dst.SubTypes = append(dst.SubTypes, st)
			bySubName[st.LocalName] = st
			continue
		}
		for _, f := range st.Fields {
			if conflict := findFieldConflict(existing.Fields, f); conflict != nil {
				m.Diags.Errorf(diag.Span{}, "conflict in field `%s` of sub-type `%s`", f.Name, st.LocalName)
				continue
			}
			existing.Fields = append(existing.Fields, f)
		}
	}
}

// findFieldConflict reports a field in fields that conflicts with f, on
// either ident or wire name, or nil if there is none. An empty wire name
// (a tuple field) never conflicts.
func findFieldConflict(fields []ir.Field, f ir.Field) *ir.Field {
	for i := range fields {
		if fields[i].Name == f.Name || (f.WireName != "" && fields[i].WireName == f.WireName) {
			return &fields[i]
		}
	}
	return nil
}
