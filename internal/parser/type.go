package parser

import (
	"github.com/reproto/reproto/internal/ast"
	"github.com/reproto/reproto/internal/token"
)

// parseType implements:
//
//	type := primitive | "[" type "]" | "{" type ":" type "}" | name
//
// where primitive is any of the keyword-led scalar types, and `signed`/
// `unsigned` optionally carry an explicit bit width via `/size`, e.g.
// `unsigned/64` (grounded in original_source/parser/src/lib.rs's
// `{string: unsigned/123}` test).
func (p *Parser) parseType() ast.Type {
	start := p.peek()

	switch start.Tok.Kind {
	case token.KwDouble:
		p.advance()
		return ast.Type{Span: start.Span, Kind: ast.TDouble}
	case token.KwFloat:
		p.advance()
		return ast.Type{Span: start.Span, Kind: ast.TFloat}
	case token.KwBoolean:
		p.advance()
		return ast.Type{Span: start.Span, Kind: ast.TBoolean}
	case token.KwString:
		p.advance()
		return ast.Type{Span: start.Span, Kind: ast.TString}
	case token.KwBytes:
		p.advance()
		return ast.Type{Span: start.Span, Kind: ast.TBytes}
	case token.KwAny:
		p.advance()
		return ast.Type{Span: start.Span, Kind: ast.TAny}
	case token.KwDatetime:
		p.advance()
		return ast.Type{Span: start.Span, Kind: ast.TDateTime}
	case token.KwSigned:
		p.advance()
		size := p.parseOptionalSize()
		return ast.Type{Span: start.Span.Join(p.lastSpan()), Kind: ast.TSigned, Size: size}
	case token.KwUnsigned:
		p.advance()
		size := p.parseOptionalSize()
		return ast.Type{Span: start.Span.Join(p.lastSpan()), Kind: ast.TUnsigned, Size: size}
	case token.LeftBracket:
		p.advance()
		elem := p.parseType()
		p.expect(token.RightBracket)
		return ast.Type{Span: start.Span.Join(p.lastSpan()), Kind: ast.TArray, Element: &elem}
	case token.LeftCurly:
		p.advance()
		key := p.parseType()
		p.expect(token.Colon)
		value := p.parseType()
		p.expect(token.RightCurly)
		return ast.Type{Span: start.Span.Join(p.lastSpan()), Kind: ast.TMap, Key: &key, Value: &value}
	case token.TypeIdent:
		name := p.parseName()
		return ast.Type{Span: name.Span, Kind: ast.TName, Name: &name}
	case token.Ident:
		if p.peekAhead(1).Tok.Kind == token.Scope {
			name := p.parseName()
			return ast.Type{Span: name.Span, Kind: ast.TName, Name: &name}
		}
		fallthrough
	default:
		p.errorf(start.Span, "expected type, got %s", start.Tok.Kind)
		p.advance()
		return ast.Type{Span: start.Span, Kind: ast.TAny}
	}
}

// parseOptionalSize implements the optional `/size` suffix on `signed`
// and `unsigned`.
func (p *Parser) parseOptionalSize() *uint32 {
	if _, ok := p.accept(token.Slash); !ok {
		return nil
	}
	num, ok := p.expect(token.Number)
	if !ok {
		return nil
	}
	v, ok := num.Tok.Num.ToU32()
	if !ok {
		p.errorf(num.Span, "expected integer bit width")
		return nil
	}
	return &v
}

// parseName implements a (possibly prefixed) path to a declared type:
// `("alias" "::")? TypeIdent ("." TypeIdent)*`.
func (p *Parser) parseName() ast.Name {
	start := p.peek()

	var prefix *string
	if p.at(token.Ident) && p.peekAhead(1).Tok.Kind == token.Scope {
		id := p.advance()
		p.advance() // '::'
		text := id.Tok.Text
		prefix = &text
	}

	var parts []string
	first, _ := p.expect(token.TypeIdent)
	parts = append(parts, first.Tok.Text)

	for {
		if _, ok := p.accept(token.Dot); !ok {
			break
		}
		id, ok := p.expect(token.TypeIdent)
		if !ok {
			break
		}
		parts = append(parts, id.Tok.Text)
	}

	return ast.Name{Span: start.Span.Join(p.lastSpan()), Prefix: prefix, Parts: parts}
}
