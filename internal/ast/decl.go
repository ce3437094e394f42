package ast

import "github.com/reproto/reproto/internal/diag"

// File is the root AST node for a single parsed source.
type File struct {
	Package *Located[Package]
	Options []OptionDecl
	Uses    []Located[UseDecl]
	Decls   []*Decl
}

// UseDecl is a `use a.b.c [@version] [as alias];` import.
type UseDecl struct {
	Package Package
	Version *string // raw version-requirement text, parsed by internal/resolve
	Alias   *string
}

// OptionDecl is a top-level `option key = value;` declaration, merged
// across a package's files during lowering.
type OptionDecl struct {
	Span  diag.Span
	Key   string
	Value Value
}

// DeclKind discriminates the five declaration shapes: type, tuple,
// interface, enum, and service.
type DeclKind int

const (
	DeclType DeclKind = iota
	DeclTuple
	DeclInterface
	DeclEnum
	DeclService
)

// Decl wraps a declaration's `Item<Body> = (comment, attributes, body)`
// together with its local name and span. Exactly one of the
// body pointer fields is non-nil, matching Kind.
type Decl struct {
	DeclSpan   diag.Span
	Kind       DeclKind
	Name       string
	Comment    []string
	Attributes []Located[Attribute]

	Type      *TypeBody
	Tuple     *TupleBody
	Interface *InterfaceBody
	Enum      *EnumBody
	Service   *ServiceBody
}

// TypeBody is the body of a `type` declaration.
type TypeBody struct {
	Members []Member
}

// TupleBody is the body of a `tuple` declaration. Tuple fields have no
// wire names: position is the wire format.
type TupleBody struct {
	Members []Member
}

// InterfaceBody is the body of an `interface` declaration.
type InterfaceBody struct {
	Members  []Member
	SubTypes []SubType
}

// SubType is one variant of an interface (a discriminated-union arm).
type SubType struct {
	SubSpan    diag.Span
	Name       string
	Comment    []string
	Attributes []Located[Attribute]
	Alias      *string // `as "wire_name"` override
	Members    []Member
}

func (s *SubType) Span() diag.Span { return s.SubSpan }

// EnumBody is the body of an `enum` declaration.
type EnumBody struct {
	AsType   *Type // optional `as <type>`
	Variants []EnumVariant
	Members  []Member // Option/Code/InnerDecl only; fields are rejected by the lowerer
}

// EnumVariant is one named member of an enum.
type EnumVariant struct {
	VariantSpan diag.Span
	Name        string
	Comment     []string
	Attributes  []Located[Attribute]
	Argument    *Value // explicit ordinal literal, or nil for Generated
}

func (v *EnumVariant) Span() diag.Span { return v.VariantSpan }

// ServiceBody is the body of a `service` declaration.
type ServiceBody struct {
	Members []ServiceMember
}

// ServiceMember is one entry inside a service body: an endpoint, a
// backend option, or a nested declaration.
type ServiceMember interface {
	serviceMemberNode()
	Span() diag.Span
}

func (o *OptionMember) serviceMemberNode() {}
func (i *InnerDecl) serviceMemberNode()    {}

// Endpoint is one RPC entry inside a service.
type Endpoint struct {
	EndpointSpan diag.Span
	Name         string
	Comment      []string
	Attributes   []Located[Attribute]
	Arguments    []Argument
	Response     *Channel
}

func (e *Endpoint) serviceMemberNode() {}
func (e *Endpoint) Span() diag.Span    { return e.EndpointSpan }

// Argument is one named, channel-typed parameter of an endpoint.
type Argument struct {
	ArgSpan diag.Span
	Name    string
	Channel Channel
}

// Channel is a unary or streaming request/response type, at the AST
// level (lowered into an IR RpChannel).
type Channel struct {
	Span      diag.Span
	Streaming bool
	Type      Type
}

// PathSpec is a parsed HTTP path template: a sequence of steps, each a
// mix of literal text and `{variable}` references.
type PathSpec struct {
	Span  diag.Span
	Steps []PathStep
}

// PathStep is the content between two `/` separators in a path.
type PathStep struct {
	Span  diag.Span
	Parts []PathPart
}

// PathPartKind discriminates a literal path segment from a `{variable}`.
type PathPartKind int

const (
	PathLiteral PathPartKind = iota
	PathVariable
)

// PathPart is one literal or variable fragment of a PathStep.
type PathPart struct {
	Kind    PathPartKind
	Literal string
	Variable string
}
