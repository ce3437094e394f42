// Package ir defines the lowered, fully resolved intermediate
// representation produced by internal/lower and consumed by
// internal/merge and internal/registry. Unlike the AST, IR nodes are
// retained for the lifetime of a compilation and are shared by pointer
// rather than copied: an interface holds its sub-types by pointer, and a
// sub-type holds no reference back to its parent interface, so the graph
// has no reference cycles.
package ir

import "github.com/reproto/reproto/internal/rpnumber"

// Package is a fully versioned package path, e.g. `foo.bar-1.0.0`.
type Package struct {
	Parts   []string
	Version string // empty if unversioned
}

func (p Package) String() string {
	s := ""
	for i, part := range p.Parts {
		if i > 0 {
			s += "."
		}
		s += part
	}
	if p.Version != "" {
		s += "-" + p.Version
	}
	return s
}

// File is one lowered source file's declarations, merged with any other
// files sharing the same package by internal/merge.
type File struct {
	Package Package
	Options map[string][]Value
	Decls   []*Decl
}

// DeclKind discriminates the five declaration shapes.
type DeclKind int

const (
	DeclType DeclKind = iota
	DeclTuple
	DeclInterface
	DeclEnum
	DeclService
)

// Decl is a fully lowered declaration: its local name is resolved to a
// canonical, package-qualified path by internal/registry.
type Decl struct {
	Kind       DeclKind
	LocalName  string
	Comment    []string
	Attributes map[string]Value

	Type      *TypeBody
	Tuple     *TypeBody
	Interface *InterfaceBody
	Enum      *EnumBody
	Service   *ServiceBody
}

// TypeBody is the lowered body of a type or tuple declaration.
type TypeBody struct {
	Fields []Field
	Codes  []Code
	Inner  []*Decl
}

// Field is a lowered, conflict-checked member of a type/tuple/sub-type.
type Field struct {
	Name     string // as written
	WireName string // FieldAs, the naming-convention transform, or Name
	Required bool
	Type     Type
	Comment  []string
}

// Code is a verbatim code block routed to one backend context.
type Code struct {
	Context string
	Lines   []string
}

// SubTypeStrategy selects how a discriminated union tags its variants on
// the wire.
type SubTypeStrategy int

const (
	// TagContaining embeds a type-tag field inside the same object as
	// the variant's own fields (the default).
	TagContaining SubTypeStrategy = iota
	// TagNested wraps the variant's fields under a tag-named key.
	TagNested
)

// InterfaceBody is the lowered body of an interface declaration.
type InterfaceBody struct {
	Fields     []Field // fields shared by every sub-type
	Strategy   SubTypeStrategy
	TagField   string // the discriminator field name, defaults to "type"
	SubTypes   []*SubType
	Inner      []*Decl
}

// SubType is one lowered variant of an interface.
type SubType struct {
	LocalName string
	WireName  string // the `as "..."` alias, or the naming-convention transform of LocalName
	Comment   []string
	Fields    []Field
}

// VariantType discriminates how an enum variant's wire value is derived.
type VariantType int

const (
	// VariantGenerated means the ordinal comes from a running counter
	// that starts at 0 and resumes one past the highest explicit ordinal
	// seen so far, or is the variant name itself when AsType is string.
	VariantGenerated VariantType = iota
	// VariantExplicit means the ordinal came from an explicit `as
	// value` literal.
	VariantExplicit
)

// EnumBody is the lowered body of an enum declaration.
type EnumBody struct {
	AsType   Type
	Variants []EnumVariant
	Codes    []Code
	Inner    []*Decl
}

// EnumVariant is one lowered, ordinal-assigned enum member.
type EnumVariant struct {
	LocalName string
	Type      VariantType
	Ordinal   Value // the assigned wire value, always of kind matching AsType
	Comment   []string
}

// ServiceBody is the lowered body of a service declaration. Endpoints
// preserve declaration order, so a plain slice is used rather than a map
// (Go maps do not preserve insertion order).
type ServiceBody struct {
	Endpoints []Endpoint
	Inner     []*Decl
}

// Endpoint is one lowered RPC entry.
type Endpoint struct {
	Name      string
	Comment   []string
	Arguments []Argument
	Response  *Channel
	HTTP      *EndpointHTTP
}

// Argument is one named, channel-typed parameter.
type Argument struct {
	Name    string
	Channel Channel
}

// Channel is a unary or streaming typed value passed over an endpoint.
type Channel struct {
	Streaming bool
	Type      Type
}

// EndpointHTTP is the resolved HTTP binding for an endpoint, built from
// its `#[http(...)]` attribute.
type EndpointHTTP struct {
	Method string
	Path   PathSpec
	Body   string // the argument name bound to the HTTP request body, or ""
	Accept string // the negotiated response media type, or "" if unset
}

// PathSpec is a parsed, variable-aware HTTP path template.
type PathSpec struct {
	Steps []PathStep
}

// PathStep is the content between two `/` separators.
type PathStep struct {
	Parts []PathPart
}

// PathPartKind discriminates a literal path segment from a bound
// argument reference.
type PathPartKind int

const (
	PathLiteral PathPartKind = iota
	PathVariable
)

// PathPart is one literal or `{name}` fragment of a PathStep.
type PathPart struct {
	Kind     PathPartKind
	Literal  string
	Variable string
}

// ValueKind discriminates the shapes a lowered constant Value can take.
type ValueKind int

const (
	VString ValueKind = iota
	VNumber
	VBoolean
	VIdentifier
	VArray
)

// Value is a fully lowered constant: by the time lowering is done, a
// Value can no longer denote a type or an unresolved object reference
// (those are rejected or resolved into a concrete shape earlier).
type Value struct {
	Kind  ValueKind
	Str   string
	Num   rpnumber.Number
	Bool  bool
	Ident string
	Array []Value
}

// TypeKind discriminates the shapes a lowered Type can take. Unlike the
// AST's Type, a lowered TName always carries the resolved absolute
// package of its target, not a raw alias prefix.
type TypeKind int

const (
	TDouble TypeKind = iota
	TFloat
	TSigned
	TUnsigned
	TBoolean
	TString
	TBytes
	TAny
	TDateTime
	TArray
	TMap
	TName
)

// Type is a fully resolved field/channel/argument type.
type Type struct {
	Kind    TypeKind
	Size    *uint32
	Element *Type
	Key     *Type
	Value   *Type
	Name    *AbsoluteName
}

// AbsoluteName is a resolved reference to a declared type: the package
// it lives in (fully versioned) and its dotted local path within that
// package, e.g. `Shape.Circle`. Prefix is the local alias the name was
// written with (from `use X as Y`), or "" for a reference written
// without one; it plays no part in equality or registry lookup (two
// names are the same symbol regardless of the alias used to reach it)
// but is restored for display.
type AbsoluteName struct {
	Package Package
	Parts   []string
	Prefix  string
}

// String renders the fully qualified, prefix-independent name used as a
// registry lookup key, e.g. "foo.bar.Shape.Circle".
func (n AbsoluteName) String() string {
	s := n.Package.String()
	for _, part := range n.Parts {
		s += "." + part
	}
	return s
}

// Display renders the name as it was written at the reference site: with
// its alias prefix, e.g. "o::Thing", falling back to String() when no
// prefix was recorded.
func (n AbsoluteName) Display() string {
	if n.Prefix == "" {
		return n.String()
	}
	s := n.Prefix + "::"
	for i, part := range n.Parts {
		if i > 0 {
			s += "."
		}
		s += part
	}
	return s
}
