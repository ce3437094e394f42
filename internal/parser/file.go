package parser

import (
	"github.com/reproto/reproto/internal/ast"
	"github.com/reproto/reproto/internal/diag"
	"github.com/reproto/reproto/internal/token"
)

// parseFile implements `file := package-decl? use-decl* (option-decl |
// decl)*`, including the optional leading package declaration and
// top-level file options.
func (p *Parser) parseFile() *ast.File {
	f := &ast.File{}

	if p.at(token.KwPackage) {
		pkg := p.parsePackageDecl()
		if p.failed {
			return f
		}
		f.Package = &pkg
	}

	for p.at(token.KwUse) && !p.failed {
		use := p.parseUseDecl()
		f.Uses = append(f.Uses, use)
	}

	for !p.failed && !p.at(token.EOF) {
		if p.at(token.Ident) && p.peek().Tok.Text == "option" {
			f.Options = append(f.Options, p.parseOptionDecl())
			continue
		}

		attrs := p.parseAttributes()
		if p.failed {
			return f
		}

		decl := p.parseDecl(attrs)
		if decl == nil || p.failed {
			return f
		}
		f.Decls = append(f.Decls, decl)
	}

	return f
}

func (p *Parser) parsePackageDecl() diag.Located[ast.Package] {
	kw := p.advance()
	pkg := p.parsePackagePath()
	p.expect(token.Semicolon)
	return diag.At(kw.Span.Join(p.lastSpan()), pkg)
}

func (p *Parser) lastSpan() diag.Span {
	if p.pos == 0 {
		return p.eofSpan()
	}
	return p.toks[p.pos-1].Span
}

// parsePackagePath implements `package-ident := ident ("." ident)*`.
func (p *Parser) parsePackagePath() ast.Package {
	var parts []string
	id, _ := p.expect(token.Ident)
	parts = append(parts, id.Tok.Text)
	for {
		if _, ok := p.accept(token.Dot); !ok {
			break
		}
		id, ok := p.expect(token.Ident)
		if !ok {
			break
		}
		parts = append(parts, id.Tok.Text)
	}
	return ast.Package{Parts: parts}
}

// parseUseDecl implements `use-decl := "use" package-ident version-req?
// ("as" ident)? ";"`.
func (p *Parser) parseUseDecl() diag.Located[ast.UseDecl] {
	start := p.advance() // 'use'

	pkg := p.parsePackagePath()

	var version *string
	if v, ok := p.accept(token.Version); ok {
		text := v.Tok.Text
		version = &text
	}

	var alias *string
	if _, ok := p.accept(token.KwAs); ok {
		id, _ := p.expect(token.Ident)
		alias = &id.Tok.Text
	}

	p.expect(token.Semicolon)

	return diag.At(start.Span.Join(p.lastSpan()), ast.UseDecl{
		Package: pkg,
		Version: version,
		Alias:   alias,
	})
}

// parseOptionDecl implements `option-decl := "option" ident "=" value
// ";"`.
func (p *Parser) parseOptionDecl() ast.OptionDecl {
	start := p.advance() // 'option' (a contextual keyword, lexed as Ident)
	key, _ := p.expect(token.Ident)
	p.expect(token.Equals)
	value := p.parseValue()
	p.expect(token.Semicolon)

	return ast.OptionDecl{
		Span:  start.Span.Join(p.lastSpan()),
		Key:   key.Tok.Text,
		Value: value,
	}
}
