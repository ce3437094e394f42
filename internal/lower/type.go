package lower

import (
	"github.com/reproto/reproto/internal/ast"
	"github.com/reproto/reproto/internal/ir"
	"github.com/reproto/reproto/internal/scope"
)

// lowerType resolves an AST type into its IR form. A bare (unprefixed)
// name resolves against the current file's package; a `prefix::Name`
// reference resolves the prefix against the scope's alias table.
//
// This is a deliberate simplification of the original name-resolution
// model, which resolves a relative reference against the *declaration's*
// nesting path first and falls back to enclosing scopes only once the
// symbol registry is consulted. Since the registry here is built after
// every file in a package has been lowered and merged, nested-vs-sibling
// disambiguation is left entirely to internal/registry's lookup, and
// lowering always records the package-qualified name as written.
func (l *Lowerer) lowerType(t ast.Type, s *scope.Scope) ir.Type {
	switch t.Kind {
	case ast.TDouble:
		return ir.Type{Kind: ir.TDouble}
	case ast.TFloat:
		return ir.Type{Kind: ir.TFloat}
	case ast.TSigned:
		return ir.Type{Kind: ir.TSigned, Size: t.Size}
	case ast.TUnsigned:
		return ir.Type{Kind: ir.TUnsigned, Size: t.Size}
	case ast.TBoolean:
		return ir.Type{Kind: ir.TBoolean}
	case ast.TString:
		return ir.Type{Kind: ir.TString}
	case ast.TBytes:
		return ir.Type{Kind: ir.TBytes}
	case ast.TAny:
		return ir.Type{Kind: ir.TAny}
	case ast.TDateTime:
		return ir.Type{Kind: ir.TDateTime}
	case ast.TArray:
		elem := l.lowerType(*t.Element, s)
		return ir.Type{Kind: ir.TArray, Element: &elem}
	case ast.TMap:
		key := l.lowerType(*t.Key, s)
		value := l.lowerType(*t.Value, s)
		return ir.Type{Kind: ir.TMap, Key: &key, Value: &value}
	case ast.TName:
		name := l.lowerName(*t.Name, s)
		return ir.Type{Kind: ir.TName, Name: &name}
	default:
		return ir.Type{Kind: ir.TAny}
	}
}

func (l *Lowerer) lowerName(n ast.Name, s *scope.Scope) ir.AbsoluteName {
	if n.Prefix == nil {
		return ir.AbsoluteName{Package: s.Package(), Parts: n.Parts}
	}

	pkg, ok := s.LookupPrefix(*n.Prefix)
	if !ok {
		l.Diags.Errorf(n.Span, "missing prefix: %s", *n.Prefix)
		return ir.AbsoluteName{Package: s.Package(), Parts: n.Parts}
	}
	return ir.AbsoluteName{Package: pkg, Parts: n.Parts, Prefix: *n.Prefix}
}
