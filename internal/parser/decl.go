package parser

import (
	"github.com/reproto/reproto/internal/ast"
	"github.com/reproto/reproto/internal/token"
)

// parseDecl implements:
//
//	decl := "type" TypeIdent "{" member* "}"
//	      | "tuple" TypeIdent "{" member* "}"
//	      | "interface" TypeIdent "{" (member | sub-type)* "}"
//	      | "enum" TypeIdent ("as" type)? "{" variant* member* "}"
//	      | "service" TypeIdent "{" service-member* "}"
//
// attrs were already consumed by the caller.
func (p *Parser) parseDecl(attrs []ast.Located[ast.Attribute]) *ast.Decl {
	start := p.peek()
	doc := start.Tok.Doc

	switch start.Tok.Kind {
	case token.KwType:
		p.advance()
		name, _ := p.expect(token.TypeIdent)
		body := p.parseTypeBody()
		return &ast.Decl{
			DeclSpan: start.Span.Join(p.lastSpan()), Kind: ast.DeclType,
			Name: name.Tok.Text, Comment: doc, Attributes: attrs, Type: &body,
		}
	case token.KwTuple:
		p.advance()
		name, _ := p.expect(token.TypeIdent)
		body := p.parseTupleBody()
		return &ast.Decl{
			DeclSpan: start.Span.Join(p.lastSpan()), Kind: ast.DeclTuple,
			Name: name.Tok.Text, Comment: doc, Attributes: attrs, Tuple: &body,
		}
	case token.KwInterface:
		p.advance()
		name, _ := p.expect(token.TypeIdent)
		body := p.parseInterfaceBody()
		return &ast.Decl{
			DeclSpan: start.Span.Join(p.lastSpan()), Kind: ast.DeclInterface,
			Name: name.Tok.Text, Comment: doc, Attributes: attrs, Interface: &body,
		}
	case token.KwEnum:
		p.advance()
		name, _ := p.expect(token.TypeIdent)
		body := p.parseEnumBody()
		return &ast.Decl{
			DeclSpan: start.Span.Join(p.lastSpan()), Kind: ast.DeclEnum,
			Name: name.Tok.Text, Comment: doc, Attributes: attrs, Enum: &body,
		}
	case token.KwService:
		p.advance()
		name, _ := p.expect(token.TypeIdent)
		body := p.parseServiceBody()
		return &ast.Decl{
			DeclSpan: start.Span.Join(p.lastSpan()), Kind: ast.DeclService,
			Name: name.Tok.Text, Comment: doc, Attributes: attrs, Service: &body,
		}
	default:
		p.errorf(start.Span, "expected declaration, got %s", start.Tok.Kind)
		p.advance()
		return nil
	}
}

func (p *Parser) parseTypeBody() ast.TypeBody {
	p.expect(token.LeftCurly)
	var members []ast.Member
	for !p.failed && !p.at(token.RightCurly) && !p.at(token.EOF) {
		members = append(members, p.parseMember())
	}
	p.expect(token.RightCurly)
	return ast.TypeBody{Members: members}
}

func (p *Parser) parseTupleBody() ast.TupleBody {
	p.expect(token.LeftCurly)
	var members []ast.Member
	for !p.failed && !p.at(token.RightCurly) && !p.at(token.EOF) {
		members = append(members, p.parseMember())
	}
	p.expect(token.RightCurly)
	return ast.TupleBody{Members: members}
}

// parseInterfaceBody parses a body made of ordinary members interleaved
// with sub-type declarations; a sub-type is introduced by a bare
// TypeIdent followed by '{' or 'as'.
func (p *Parser) parseInterfaceBody() ast.InterfaceBody {
	p.expect(token.LeftCurly)
	var body ast.InterfaceBody
	for !p.failed && !p.at(token.RightCurly) && !p.at(token.EOF) {
		attrs := p.parseAttributes()
		if p.failed {
			break
		}
		if p.at(token.TypeIdent) {
			body.SubTypes = append(body.SubTypes, p.parseSubType(attrs))
			continue
		}
		body.Members = append(body.Members, p.parseMemberWithAttrs(attrs))
	}
	p.expect(token.RightCurly)
	return body
}

func (p *Parser) parseSubType(attrs []ast.Located[ast.Attribute]) ast.SubType {
	start := p.peek()
	doc := start.Tok.Doc
	name, _ := p.expect(token.TypeIdent)

	var alias *string
	if _, ok := p.accept(token.KwAs); ok {
		s, _ := p.expect(token.String)
		alias = &s.Tok.Str
	}

	p.expect(token.LeftCurly)
	var members []ast.Member
	for !p.failed && !p.at(token.RightCurly) && !p.at(token.EOF) {
		members = append(members, p.parseMember())
	}
	p.expect(token.RightCurly)

	return ast.SubType{
		SubSpan: start.Span.Join(p.lastSpan()), Name: name.Tok.Text,
		Comment: doc, Attributes: attrs, Alias: alias, Members: members,
	}
}

// parseEnumBody implements `("as" type)? "{" variant-or-member* "}"`.
// Variants precede any Option/Code/InnerDecl members in source order, but
// the grammar allows either to be empty.
func (p *Parser) parseEnumBody() ast.EnumBody {
	var body ast.EnumBody
	if _, ok := p.accept(token.KwAs); ok {
		ty := p.parseType()
		body.AsType = &ty
	}

	p.expect(token.LeftCurly)

	for !p.failed && !p.at(token.RightCurly) && !p.at(token.EOF) {
		attrs := p.parseAttributes()
		if p.failed {
			break
		}
		if p.at(token.TypeIdent) {
			body.Variants = append(body.Variants, p.parseEnumVariant(attrs))
			continue
		}
		body.Members = append(body.Members, p.parseMemberWithAttrs(attrs))
	}
	p.expect(token.RightCurly)
	return body
}

// parseEnumVariant implements `TypeIdent ("as" value)? ";"`.
func (p *Parser) parseEnumVariant(attrs []ast.Located[ast.Attribute]) ast.EnumVariant {
	start := p.peek()
	doc := start.Tok.Doc
	name, _ := p.expect(token.TypeIdent)

	var arg *ast.Value
	if _, ok := p.accept(token.KwAs); ok {
		v := p.parseValue()
		arg = &v
	}
	p.expect(token.Semicolon)

	return ast.EnumVariant{
		VariantSpan: start.Span.Join(p.lastSpan()), Name: name.Tok.Text,
		Comment: doc, Attributes: attrs, Argument: arg,
	}
}

func (p *Parser) parseServiceBody() ast.ServiceBody {
	p.expect(token.LeftCurly)
	var body ast.ServiceBody
	for !p.failed && !p.at(token.RightCurly) && !p.at(token.EOF) {
		if p.at(token.Ident) && p.peek().Tok.Text == "option" {
			opt := p.parseOptionDecl()
			body.Members = append(body.Members, &ast.OptionMember{OptSpan: opt.Span, Key: opt.Key, Value: opt.Value})
			continue
		}

		attrs := p.parseAttributes()
		if p.failed {
			break
		}

		if p.at(token.KwEndpoint) {
			body.Members = append(body.Members, p.parseEndpoint(attrs))
			continue
		}

		decl := p.parseDecl(attrs)
		if decl == nil || p.failed {
			break
		}
		body.Members = append(body.Members, &ast.InnerDecl{Decl: decl})
	}
	p.expect(token.RightCurly)
	return body
}

// parseEndpoint implements:
//
//	"endpoint" Ident "(" argument ("," argument)* ")"
//	  ("returns" channel)? ";"
func (p *Parser) parseEndpoint(attrs []ast.Located[ast.Attribute]) *ast.Endpoint {
	start := p.advance() // 'endpoint'
	doc := start.Tok.Doc
	name, _ := p.expect(token.Ident)

	ep := &ast.Endpoint{Name: name.Tok.Text, Comment: doc, Attributes: attrs}

	p.expect(token.LeftParen)
	if !p.at(token.RightParen) {
		ep.Arguments = append(ep.Arguments, p.parseArgument())
		for {
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
			if p.at(token.RightParen) {
				break
			}
			ep.Arguments = append(ep.Arguments, p.parseArgument())
		}
	}
	p.expect(token.RightParen)

	if _, ok := p.accept(token.KwReturns); ok {
		ch := p.parseChannel()
		ep.Response = &ch
	}
	p.expect(token.Semicolon)

	ep.EndpointSpan = start.Span.Join(p.lastSpan())
	return ep
}

func (p *Parser) parseArgument() ast.Argument {
	start := p.peek()
	name, _ := p.expect(token.Ident)
	p.expect(token.Colon)
	ch := p.parseChannel()
	return ast.Argument{ArgSpan: start.Span.Join(p.lastSpan()), Name: name.Tok.Text, Channel: ch}
}

// parseChannel implements `channel := "stream"? type`.
func (p *Parser) parseChannel() ast.Channel {
	start := p.peek()
	streaming := false
	if _, ok := p.accept(token.KwStream); ok {
		streaming = true
	}
	ty := p.parseType()
	return ast.Channel{Span: start.Span.Join(p.lastSpan()), Streaming: streaming, Type: ty}
}

// parseMember consumes leading attributes then dispatches.
func (p *Parser) parseMember() ast.Member {
	attrs := p.parseAttributes()
	return p.parseMemberWithAttrs(attrs)
}

// parseMemberWithAttrs implements:
//
//	member := field | code-block | option-decl | decl
func (p *Parser) parseMemberWithAttrs(attrs []ast.Located[ast.Attribute]) ast.Member {
	start := p.peek()

	if p.at(token.Ident) && p.peek().Tok.Text == "option" {
		opt := p.parseOptionDecl()
		return &ast.OptionMember{OptSpan: opt.Span, Key: opt.Key, Value: opt.Value}
	}

	if p.at(token.Ident) {
		return p.parseField(attrs)
	}

	switch start.Tok.Kind {
	case token.KwType, token.KwTuple, token.KwInterface, token.KwEnum, token.KwService:
		decl := p.parseDecl(attrs)
		return &ast.InnerDecl{Decl: decl}
	default:
		p.errorf(start.Span, "expected member, got %s", start.Tok.Kind)
		p.advance()
		return &ast.OptionMember{OptSpan: start.Span}
	}
}

// parseField implements:
//
//	field := ident "?"? ":" type ("as" string)? ";"
//
// or, when followed directly by a CodeOpen, the member is instead a code
// block and is dispatched to parseCodeBlock.
func (p *Parser) parseField(attrs []ast.Located[ast.Attribute]) ast.Member {
	if p.peekAhead(1).Tok.Kind == token.CodeOpen {
		return p.parseCodeBlock()
	}

	start := p.peek()
	doc := start.Tok.Doc
	name, _ := p.expect(token.Ident)

	modifier := ast.Required
	if _, ok := p.accept(token.Optional); ok {
		modifier = ast.Optional
	}

	p.expect(token.Colon)
	ty := p.parseType()

	var fieldAs *string
	if _, ok := p.accept(token.KwAs); ok {
		s, _ := p.expect(token.String)
		fieldAs = &s.Tok.Str
	}

	p.expect(token.Semicolon)

	return &ast.Field{
		FieldSpan: start.Span.Join(p.lastSpan()), Modifier: modifier,
		Name: name.Tok.Text, FieldAs: fieldAs, Comment: doc,
		Attributes: attrs, Type: ty,
	}
}

// parseCodeBlock implements `context "{{" code-content "}}"`.
func (p *Parser) parseCodeBlock() ast.Member {
	start := p.peek()
	ctx, _ := p.expect(token.Ident)
	p.expect(token.CodeOpen)
	content, _ := p.expect(token.CodeContent)
	p.expect(token.CodeClose)

	return &ast.CodeBlock{
		CodeSpan: start.Span.Join(p.lastSpan()),
		Context:  ctx.Tok.Text,
		Lines:    content.Tok.Lines,
	}
}
