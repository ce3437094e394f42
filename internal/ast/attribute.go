package ast

import "github.com/reproto/reproto/internal/diag"

// AttributeKind discriminates a bare `#[word]` from a `#[key(...)]` list
// form.
type AttributeKind int

const (
	AttrWord AttributeKind = iota
	AttrList
)

// Attribute is one `#[...]` annotation attached to a declaration, member,
// or endpoint.
type Attribute struct {
	Span diag.Span
	Kind AttributeKind
	Key  string
	Items []AttributeItem // AttrList only
}

// AttributeItemKind discriminates a bare word item from a `name = value`
// item inside an attribute's parenthesized list.
type AttributeItemKind int

const (
	ItemWord AttributeItemKind = iota
	ItemNameValue
)

// AttributeItem is one entry inside a list-form Attribute's parentheses.
type AttributeItem struct {
	Span  diag.Span
	Kind  AttributeItemKind
	Word  string // ItemWord
	Name  string // ItemNameValue: key
	Value Value  // ItemNameValue: value
}
