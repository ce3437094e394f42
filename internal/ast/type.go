package ast

import "github.com/reproto/reproto/internal/diag"

// TypeKind discriminates the shapes a Type can take.
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

// Type is a type reference as written in source.
type Type struct {
	Span diag.Span
	Kind TypeKind

	Size *uint32 // Signed/Unsigned: optional explicit bit width

	Element *Type // Array: element type

	Key   *Type // Map: key type
	Value *Type // Map: value type

	Name *Name // Name: a reference to a declared type
}
