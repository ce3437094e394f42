package ast

import "github.com/reproto/reproto/internal/diag"

// Member is one entry inside a type/tuple/interface/sub-type/enum body:
// a field, a verbatim code block, a backend option, or a nested
// declaration: a Field, a CodeBlock, an OptionMember, or an InnerDecl.
type Member interface {
	memberNode()
	Span() diag.Span
}

// Field is a named, typed member of a type/tuple/sub-type body.
type Field struct {
	FieldSpan  diag.Span
	Modifier   Modifier
	Name       string // the identifier as written
	FieldAs    *string // explicit `as "wire_name"` override
	Comment    []string
	Attributes []Located[Attribute]
	Type       Type
}

func (f *Field) memberNode()        {}
func (f *Field) Span() diag.Span    { return f.FieldSpan }

// CodeBlock is a verbatim `context {{ ... }}` block attached to the
// containing declaration.
type CodeBlock struct {
	CodeSpan diag.Span
	Context  string
	Lines    []string
}

func (c *CodeBlock) memberNode()     {}
func (c *CodeBlock) Span() diag.Span { return c.CodeSpan }

// OptionMember is a backend-agnostic `option key = value;` declaration.
type OptionMember struct {
	OptSpan diag.Span
	Key     string
	Value   Value
}

func (o *OptionMember) memberNode()     {}
func (o *OptionMember) Span() diag.Span { return o.OptSpan }

// InnerDecl is a declaration nested inside another declaration's body.
type InnerDecl struct {
	Decl *Decl
}

func (i *InnerDecl) memberNode()     {}
func (i *InnerDecl) Span() diag.Span { return i.Decl.DeclSpan }
