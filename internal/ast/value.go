package ast

import (
	"github.com/reproto/reproto/internal/diag"
	"github.com/reproto/reproto/internal/rpnumber"
)

// ValueKind discriminates the shapes a literal Value can take.
type ValueKind int

const (
	VString ValueKind = iota
	VNumber
	VBoolean
	VIdentifier
	VArray
	VObject
	VType
)

// Value is a constant value as written in source: a field default, an
// enum variant's ordinal argument, or an attribute item's value.
type Value struct {
	Span diag.Span
	Kind ValueKind

	Str   string          // String
	Num   rpnumber.Number // Number
	Bool  bool            // Boolean
	Ident string          // Identifier

	Array []Value // Array

	Object *Object // Object: a Name reference or an Instance (Name + field inits)

	Type *Type // Type: a bare type used as a value (e.g. match-on, reserved for future use)
}

// Object is either a plain Name constant reference (len(Fields) == 0) or
// an Instance construction `Name(field: value, ...)`.
type Object struct {
	Span   diag.Span
	Name   Name
	Fields []FieldInit
}

// FieldInit is one `name: value` pair inside an Instance value.
type FieldInit struct {
	Span  diag.Span
	Name  string
	Value Value
}
