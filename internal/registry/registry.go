// Package registry flattens the merged, per-package IR produced by
// internal/merge into a single symbol table addressable by its
// canonical dotted name, and answers the lookup/field/assignability
// questions the rest of the compiler needs. It plays the role of
// core/src/rp_registered.rs's RpRegistered enum and
// src/backend/environment.rs's Environment.types map in the original
// reproto sources, generalized from an Rc-pointer-equality scheme (the
// original compares Rc::ptr_eq to decide if two references name the
// same declaration) into Go pointer equality on the IR nodes
// themselves, since Go's IR is already shared by pointer
// (internal/ir's doc comment).
package registry

import (
	"github.com/reproto/reproto/internal/ir"
)

// Kind discriminates the seven shapes a registered symbol can take.
type Kind int

const (
	KindType Kind = iota
	KindInterface
	KindEnum
	KindTuple
	KindSubType
	KindEnumConstant
	KindService
)

// Entry is one flattened, addressable symbol: a top-level declaration,
// or a sub-type/enum-constant nested inside one.
type Entry struct {
	Kind Kind
	Name ir.AbsoluteName

	Type      *ir.TypeBody
	Interface *ir.InterfaceBody
	Enum      *ir.EnumBody
	Tuple     *ir.TypeBody
	Service   *ir.ServiceBody

	// Parent is set for KindSubType and KindEnumConstant: the
	// enclosing interface or enum's Entry.
	Parent *Entry

	SubType *ir.SubType
	Variant *ir.EnumVariant
}

// Registry is the flattened symbol table for a whole compilation: every
// package's merged declarations, addressed by their absolute name.
type Registry struct {
	entries map[string]*Entry
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{entries: map[string]*Entry{}}
}

// Register flattens one merged package file's declarations into the
// registry, descending into nested (Inner), sub-type, and enum-variant
// names.
func (r *Registry) Register(f *ir.File) {
	for _, d := range f.Decls {
		r.registerDecl(f.Package, ir.AbsoluteName{Package: f.Package, Parts: []string{d.LocalName}}, d)
	}
}

func (r *Registry) registerDecl(pkg ir.Package, name ir.AbsoluteName, d *ir.Decl) *Entry {
	entry := &Entry{Name: name}

	switch d.Kind {
	case ir.DeclType:
		entry.Kind = KindType
		entry.Type = d.Type
		r.registerInner(pkg, name, d.Type.Inner)
	case ir.DeclTuple:
		entry.Kind = KindTuple
		entry.Tuple = d.Tuple
		r.registerInner(pkg, name, d.Tuple.Inner)
	case ir.DeclInterface:
		entry.Kind = KindInterface
		entry.Interface = d.Interface
		r.registerInner(pkg, name, d.Interface.Inner)
		for _, st := range d.Interface.SubTypes {
			subName := ir.AbsoluteName{Package: pkg, Parts: append(append([]string{}, name.Parts...), st.LocalName)}
			r.entries[subName.String()] = &Entry{
				Kind: KindSubType, Name: subName, Parent: entry, SubType: st,
			}
		}
	case ir.DeclEnum:
		entry.Kind = KindEnum
		entry.Enum = d.Enum
		r.registerInner(pkg, name, d.Enum.Inner)
		for i := range d.Enum.Variants {
			v := &d.Enum.Variants[i]
			varName := ir.AbsoluteName{Package: pkg, Parts: append(append([]string{}, name.Parts...), v.LocalName)}
			r.entries[varName.String()] = &Entry{
				Kind: KindEnumConstant, Name: varName, Parent: entry, Variant: v,
			}
		}
	case ir.DeclService:
		entry.Kind = KindService
		entry.Service = d.Service
		r.registerInner(pkg, name, d.Service.Inner)
	}

	r.entries[name.String()] = entry
	return entry
}

func (r *Registry) registerInner(pkg ir.Package, parent ir.AbsoluteName, inner []*ir.Decl) {
	for _, d := range inner {
		name := ir.AbsoluteName{Package: pkg, Parts: append(append([]string{}, parent.Parts...), d.LocalName)}
		r.registerDecl(pkg, name, d)
	}
}

// Lookup resolves an absolute name to its registered Entry.
func (r *Registry) Lookup(name ir.AbsoluteName) (*Entry, bool) {
	e, ok := r.entries[name.String()]
	return e, ok
}

// Resolve implements the original model's relative-name resolution
// order: a bare reference is first tried nested under the current
// declaration's own path (so a sub-type body can refer to a sibling
// declared in the same enclosing type without qualification), and only
// falls back to the bare name directly in the current package if that
// fails. This is where internal/lower/type.go's simplification (which
// always resolves bare names directly against the file's package) is
// corrected once the full registry is available.
func (r *Registry) Resolve(pkg ir.Package, nestingPath []string, parts []string) (ir.AbsoluteName, bool) {
	for depth := len(nestingPath); depth > 0; depth-- {
		candidate := ir.AbsoluteName{Package: pkg, Parts: append(append([]string{}, nestingPath[:depth]...), parts...)}
		if _, ok := r.entries[candidate.String()]; ok {
			return candidate, true
		}
	}

	direct := ir.AbsoluteName{Package: pkg, Parts: parts}
	if _, ok := r.entries[direct.String()]; ok {
		return direct, true
	}

	return direct, false
}

// Fields returns the fields accessible on e: a type/tuple's own fields,
// or a sub-type's parent fields followed by its own. Every other kind
// has no fields.
func (e *Entry) Fields() ([]ir.Field, bool) {
	switch e.Kind {
	case KindType:
		return e.Type.Fields, true
	case KindTuple:
		return e.Tuple.Fields, true
	case KindSubType:
		fields := append(append([]ir.Field{}, e.Parent.Interface.Fields...), e.SubType.Fields...)
		return fields, true
	default:
		return nil, false
	}
}

// FieldByIdent returns the first field named ident accessible on e.
func (e *Entry) FieldByIdent(ident string) (*ir.Field, bool) {
	fields, ok := e.Fields()
	if !ok {
		return nil, false
	}
	for i := range fields {
		if fields[i].Name == ident {
			return &fields[i], true
		}
	}
	return nil, false
}

// LocalName composes a language-visible path for e using two joiners:
// packageFn joins a top-level declaration's dotted path, innerFn joins
// the parent/child pair a sub-type or enum constant hangs off of. A
// top-level kind (type/interface/enum/tuple/service) is simply
// packageFn(e.Name.Parts); a SubType or EnumConstant instead folds its
// last two path segments (parent, child) through innerFn first, then
// folds the result back in with whatever path preceded it, also through
// innerFn — matching RpRegistered::local_name's split_off(len-2) scheme.
func (e *Entry) LocalName(packageFn, innerFn func([]string) string) string {
	parts := e.Name.Parts

	switch e.Kind {
	case KindSubType, KindEnumConstant:
		at := len(parts) - 2
		if at < 0 {
			at = 0
		}
		head := append([]string{}, parts[:at]...)
		last := innerFn(append([]string{}, parts[at:]...))
		return innerFn(append(head, last))
	default:
		return packageFn(parts)
	}
}

// IsAssignableFrom reports whether a value of kind source may be used
// where target is expected: an exact match of the same declaration, a
// sub-type where its parent interface is expected, or an enum constant
// where its parent enum is expected. Pointer identity on the underlying
// IR nodes stands in for the original's Rc::ptr_eq.
func (target *Entry) IsAssignableFrom(source *Entry) bool {
	switch {
	case target.Kind == KindType && source.Kind == KindType:
		return target.Type == source.Type
	case target.Kind == KindTuple && source.Kind == KindTuple:
		return target.Tuple == source.Tuple
	case target.Kind == KindService && source.Kind == KindService:
		return target.Service == source.Service
	case target.Kind == KindInterface && source.Kind == KindInterface:
		return target.Interface == source.Interface
	case target.Kind == KindEnum && source.Kind == KindEnum:
		return target.Enum == source.Enum
	case target.Kind == KindInterface && source.Kind == KindSubType:
		return target.Interface == source.Parent.Interface
	case target.Kind == KindEnum && source.Kind == KindEnumConstant:
		return target.Enum == source.Parent.Enum
	case target.Kind == KindSubType && source.Kind == KindSubType:
		return target.Parent.Interface == source.Parent.Interface && target.SubType == source.SubType
	case target.Kind == KindEnumConstant && source.Kind == KindEnumConstant:
		return target.Parent.Enum == source.Parent.Enum && target.Variant == source.Variant
	default:
		return false
	}
}
