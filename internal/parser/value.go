package parser

import (
	"github.com/reproto/reproto/internal/ast"
	"github.com/reproto/reproto/internal/token"
)

// parseValue implements:
//
//	value := string | number | "true" | "false" | ident
//	       | "[" (value ("," value)*)? "]"
//	       | name ("(" field-init ("," field-init)* ")")?
//
// Array-typed values use '[' exclusively for value sequences; type
// values (used inside attribute items such as `#[on(String)]`) are
// recognized by the primitive keywords and by map-type syntax, since
// those cannot otherwise start a value.
func (p *Parser) parseValue() ast.Value {
	start := p.peek()

	switch start.Tok.Kind {
	case token.String:
		p.advance()
		return ast.Value{Span: start.Span, Kind: ast.VString, Str: start.Tok.Str}
	case token.Number:
		p.advance()
		return ast.Value{Span: start.Span, Kind: ast.VNumber, Num: start.Tok.Num}
	case token.KwTrue:
		p.advance()
		return ast.Value{Span: start.Span, Kind: ast.VBoolean, Bool: true}
	case token.KwFalse:
		p.advance()
		return ast.Value{Span: start.Span, Kind: ast.VBoolean, Bool: false}
	case token.LeftBracket:
		return p.parseArrayValue()
	case token.TypeIdent:
		return p.parseObjectValue()
	case token.KwAny, token.KwFloat, token.KwDouble, token.KwSigned, token.KwUnsigned,
		token.KwBoolean, token.KwString, token.KwBytes, token.KwDatetime, token.LeftCurly:
		ty := p.parseType()
		return ast.Value{Span: ty.Span, Kind: ast.VType, Type: &ty}
	case token.Ident:
		if p.peekAhead(1).Tok.Kind == token.Scope {
			return p.parseObjectValue()
		}
		p.advance()
		return ast.Value{Span: start.Span, Kind: ast.VIdentifier, Ident: start.Tok.Text}
	default:
		p.errorf(start.Span, "expected value, got %s", start.Tok.Kind)
		p.advance()
		return ast.Value{Span: start.Span, Kind: ast.VIdentifier}
	}
}

// parseArrayValue implements `"[" (value ("," value)*)? "]"`.
func (p *Parser) parseArrayValue() ast.Value {
	start := p.advance() // '['

	var values []ast.Value
	if !p.at(token.RightBracket) {
		values = append(values, p.parseValue())
		for {
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
			if p.at(token.RightBracket) {
				break
			}
			values = append(values, p.parseValue())
		}
	}
	p.expect(token.RightBracket)

	return ast.Value{Span: start.Span.Join(p.lastSpan()), Kind: ast.VArray, Array: values}
}

// parseObjectValue implements `name ("(" field-init ("," field-init)*
// ")")?`: either a bare constant reference or an instance construction.
func (p *Parser) parseObjectValue() ast.Value {
	name := p.parseName()
	obj := &ast.Object{Span: name.Span, Name: name}

	if _, ok := p.accept(token.LeftParen); ok {
		if !p.at(token.RightParen) {
			obj.Fields = append(obj.Fields, p.parseFieldInit())
			for {
				if _, ok := p.accept(token.Comma); !ok {
					break
				}
				if p.at(token.RightParen) {
					break
				}
				obj.Fields = append(obj.Fields, p.parseFieldInit())
			}
		}
		p.expect(token.RightParen)
		obj.Span = name.Span.Join(p.lastSpan())
	}

	return ast.Value{Span: obj.Span, Kind: ast.VObject, Object: obj}
}

// parseFieldInit implements `field-init := ident ":" value`.
func (p *Parser) parseFieldInit() ast.FieldInit {
	start := p.peek()
	name, _ := p.expect(token.Ident)
	p.expect(token.Colon)
	value := p.parseValue()

	return ast.FieldInit{
		Span:  start.Span.Join(p.lastSpan()),
		Name:  name.Tok.Text,
		Value: value,
	}
}
