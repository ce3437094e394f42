package parser

import (
	"github.com/reproto/reproto/internal/ast"
	"github.com/reproto/reproto/internal/token"
)

// parseAttributes consumes a run of `#[...]` attributes preceding a
// declaration, member, sub-type, or endpoint.
func (p *Parser) parseAttributes() []ast.Located[ast.Attribute] {
	var attrs []ast.Located[ast.Attribute]
	for p.at(token.HashOpen) && !p.failed {
		attrs = append(attrs, p.parseAttribute())
	}
	return attrs
}

// parseAttribute implements:
//
//	attribute := "#[" key "]" | "#[" key "(" item ("," item)* ")" "]"
func (p *Parser) parseAttribute() ast.Located[ast.Attribute] {
	start := p.advance() // '#['
	key := p.expectAttrWord()

	attr := ast.Attribute{Key: key.Tok.Text}

	if _, ok := p.accept(token.LeftParen); ok {
		attr.Kind = ast.AttrList
		if !p.at(token.RightParen) {
			attr.Items = append(attr.Items, p.parseAttributeItem())
			for {
				if _, ok := p.accept(token.Comma); !ok {
					break
				}
				if p.at(token.RightParen) {
					break
				}
				attr.Items = append(attr.Items, p.parseAttributeItem())
			}
		}
		p.expect(token.RightParen)
	} else {
		attr.Kind = ast.AttrWord
	}

	p.expect(token.RightBracket)

	attr.Span = start.Span.Join(p.lastSpan())
	return ast.At(attr.Span, attr)
}

// parseAttributeItem implements `item := word | name "=" value`.
func (p *Parser) parseAttributeItem() ast.AttributeItem {
	start := p.peek()

	next := p.peekAhead(1).Tok.Kind
	isWordStart := p.at(token.Ident) || p.at(token.TypeIdent) || start.Tok.Kind.IsKeyword()
	if isWordStart && next != token.Equals {
		id := p.advance()
		return ast.AttributeItem{Span: id.Span, Kind: ast.ItemWord, Word: id.Tok.Text}
	}

	name := p.expectAttrWord()
	p.expect(token.Equals)
	value := p.parseValue()

	return ast.AttributeItem{
		Span:  start.Span.Join(p.lastSpan()),
		Kind:  ast.ItemNameValue,
		Name:  name.Tok.Text,
		Value: value,
	}
}

// expectAttrWord consumes an identifier or keyword token, since
// attribute and item names (e.g. `http`, `on`) may collide with reserved
// words that are only meaningful inside the main grammar.
func (p *Parser) expectAttrWord() tokSpan {
	if p.at(token.Ident) || p.peek().Tok.Kind.IsKeyword() {
		return p.advance()
	}
	got := p.peek()
	p.errorf(got.Span, "expected identifier, got %s", got.Tok.Kind)
	return tokSpan{}
}

func (p *Parser) peekAhead(n int) tokSpan {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return tokSpan{Tok: token.Token{Kind: token.EOF}, Span: p.eofSpan()}
	}
	return p.toks[idx]
}
