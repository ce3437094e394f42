package lower

import (
	"github.com/reproto/reproto/internal/ast"
	"github.com/reproto/reproto/internal/ir"
	"github.com/reproto/reproto/internal/scope"
)

// lowerValue lowers a literal constant. Object/instance and bare Type
// values (ast.VObject, ast.VType) have no place in the fully lowered
// Value shape — a VObject naming a constant reference is reduced to its
// identifier form, and a VType is rejected, since by lowering time every
// context that can accept a type-as-value (e.g. `#[on(String)]`) has
// already consumed it directly off the AST via internal/attr.
func (l *Lowerer) lowerValue(v ast.Value, s *scope.Scope) ir.Value {
	switch v.Kind {
	case ast.VString:
		return ir.Value{Kind: ir.VString, Str: v.Str}
	case ast.VNumber:
		return ir.Value{Kind: ir.VNumber, Num: v.Num}
	case ast.VBoolean:
		return ir.Value{Kind: ir.VBoolean, Bool: v.Bool}
	case ast.VIdentifier:
		return ir.Value{Kind: ir.VIdentifier, Ident: v.Ident}
	case ast.VArray:
		out := ir.Value{Kind: ir.VArray}
		for _, elem := range v.Array {
			out.Array = append(out.Array, l.lowerValue(elem, s))
		}
		return out
	case ast.VObject:
		if len(v.Object.Fields) > 0 {
			l.Diags.Errorf(v.Span, "instance construction is not a valid constant value here")
		}
		last := v.Object.Name.Parts[len(v.Object.Name.Parts)-1]
		return ir.Value{Kind: ir.VIdentifier, Ident: last}
	case ast.VType:
		l.Diags.Errorf(v.Span, "a type cannot be used as a value here")
		return ir.Value{Kind: ir.VIdentifier}
	default:
		return ir.Value{Kind: ir.VIdentifier}
	}
}
