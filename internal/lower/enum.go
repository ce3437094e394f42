package lower

import (
	"github.com/reproto/reproto/internal/ast"
	"github.com/reproto/reproto/internal/attr"
	"github.com/reproto/reproto/internal/ir"
	"github.com/reproto/reproto/internal/rpnumber"
	"github.com/reproto/reproto/internal/scope"
)

// lowerEnum lowers an enum declaration. AsType defaults to string when
// absent, matching the original grammar's "expected string or absent"
// constraint on the `as <type>` clause.
func (l *Lowerer) lowerEnum(body *ast.EnumBody, s *scope.Scope, set *attr.Set) *ir.EnumBody {
	asType := ir.Type{Kind: ir.TString}
	if body.AsType != nil {
		asType = l.lowerType(*body.AsType, s)
		if asType.Kind != ir.TString && !isIntegerKind(asType.Kind) {
			l.Diags.Errorf(body.AsType.Span, "enum type must be string or an integer type")
		}
	}

	out := &ir.EnumBody{AsType: asType}

	seenNames := map[string]bool{}
	seenOrdinals := map[string]bool{}

	// next tracks the auto-ordinal generator: it starts at 0 and advances
	// to one past the highest explicit ordinal seen so far, so that
	// `A = 2; B; C;` yields B=3, C=4 rather than restarting from the
	// variant's declaration index.
	var next int64

	for _, v := range body.Variants {
		variant, ordinalKey := l.lowerEnumVariant(v, &next, asType, s)
		if seenNames[variant.LocalName] {
			l.Diags.Errorf(v.VariantSpan, "conflict in variant `%s`", variant.LocalName)
			continue
		}
		seenNames[variant.LocalName] = true

		if seenOrdinals[ordinalKey] {
			l.Diags.Errorf(v.VariantSpan, "conflict in variant ordinal for `%s`", variant.LocalName)
			continue
		}
		seenOrdinals[ordinalKey] = true

		out.Variants = append(out.Variants, variant)
	}

	for _, m := range body.Members {
		switch v := m.(type) {
		case *ast.CodeBlock:
			out.Codes = append(out.Codes, ir.Code{Context: v.Context, Lines: v.Lines})
		case *ast.InnerDecl:
			out.Inner = append(out.Inner, l.lowerDecl(v.Decl, s))
		case *ast.OptionMember:
		}
	}

	return out
}

func isIntegerKind(k ir.TypeKind) bool {
	return k == ir.TSigned || k == ir.TUnsigned
}

func (l *Lowerer) lowerEnumVariant(v ast.EnumVariant, next *int64, asType ir.Type, s *scope.Scope) (ir.EnumVariant, string) {
	vset := attr.NewSet(v.VariantSpan, v.Attributes, l.Diags)

	// Legacy `#[serialized_as(value = "...")]` is a deprecated spelling
	// of an explicit `as "..."` ordinal; honored for compatibility, with
	// an Info diagnostic steering authors to the current syntax.
	var legacyOrdinal *ast.Value
	if sel, ok := vset.TakeSelection("serialized_as"); ok {
		if val, ok := sel.Take("value"); ok {
			l.Diags.Infof(v.VariantSpan, "`serialized_as` is deprecated; use `as %s` instead", quoteIfString(val))
			legacyOrdinal = &val
		}
		sel.CheckUnused("serialized_as", l.Diags)
	}
	vset.CheckUnused(l.Diags)

	arg := v.Argument
	if arg == nil {
		arg = legacyOrdinal
	}

	variant := ir.EnumVariant{LocalName: v.Name, Comment: v.Comment}

	if arg == nil {
		variant.Type = ir.VariantGenerated
		if asType.Kind == ir.TString {
			variant.Ordinal = ir.Value{Kind: ir.VString, Str: v.Name}
			return variant, variant.Ordinal.Str
		}
		variant.Ordinal = ir.Value{Kind: ir.VNumber, Num: rpnumber.FromInt64(*next)}
		*next++
		return variant, variant.Ordinal.Num.String()
	}

	variant.Type = ir.VariantExplicit
	lowered := l.lowerValue(*arg, s)
	if !assignableToEnumType(asType, lowered) {
		l.Diags.Errorf(v.VariantSpan, "variant value does not match enum type")
	}
	variant.Ordinal = lowered

	key := lowered.Str
	if lowered.Kind == ir.VNumber {
		key = lowered.Num.String()
		if n, ok := lowered.Num.ToInt64(); ok && n+1 > *next {
			*next = n + 1
		}
	}
	return variant, key
}

func assignableToEnumType(asType ir.Type, v ir.Value) bool {
	switch asType.Kind {
	case ir.TString:
		return v.Kind == ir.VString
	default:
		return v.Kind == ir.VNumber
	}
}

func quoteIfString(v ast.Value) string {
	if v.Kind == ast.VString {
		return `"` + v.Str + `"`
	}
	return v.Str
}
