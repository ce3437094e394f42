// Package parser turns a token stream into a position-annotated AST.
// Recovery is limited: the first syntax error terminates parsing of
// that file; other files continue independently.
package parser

import (
	"github.com/reproto/reproto/internal/ast"
	"github.com/reproto/reproto/internal/diag"
	"github.com/reproto/reproto/internal/lexer"
	"github.com/reproto/reproto/internal/token"
)

type tokSpan struct {
	Tok  token.Token
	Span diag.Span
}

// Parser holds the buffered token stream for one source and the shared
// diagnostics sink.
type Parser struct {
	source diag.SourceID
	toks   []tokSpan
	pos    int
	diags  *diag.List
	failed bool
}

// ParseFile lexes and parses a single source's contents. It returns the
// parsed File and true on success; on a lex or syntax error it appends a
// diagnostic to diags and returns (nil, false).
func ParseFile(source diag.SourceID, input string, diags *diag.List) (*ast.File, bool) {
	toks, ok := bufferTokens(source, input, diags)
	if !ok {
		return nil, false
	}

	p := &Parser{source: source, toks: toks, diags: diags}
	f := p.parseFile()
	return f, !p.failed
}

func bufferTokens(source diag.SourceID, input string, diags *diag.List) ([]tokSpan, bool) {
	l := lexer.New(source, input)
	var toks []tokSpan
	for {
		tok, span, ok, err := l.Next()
		if err != nil {
			diags.Add(*err)
			return nil, false
		}
		if !ok {
			break
		}
		toks = append(toks, tokSpan{Tok: tok, Span: span})
	}
	return toks, true
}

func (p *Parser) eofSpan() diag.Span {
	if len(p.toks) == 0 {
		return diag.Span{Source: p.source}
	}
	last := p.toks[len(p.toks)-1]
	return diag.Span{Source: p.source, Start: last.Span.End, End: last.Span.End}
}

func (p *Parser) peek() tokSpan {
	if p.pos >= len(p.toks) {
		return tokSpan{Tok: token.Token{Kind: token.EOF}, Span: p.eofSpan()}
	}
	return p.toks[p.pos]
}

func (p *Parser) at(kind token.Kind) bool {
	return p.peek().Tok.Kind == kind
}

func (p *Parser) advance() tokSpan {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) accept(kind token.Kind) (tokSpan, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	return tokSpan{}, false
}

// expect consumes a token of the given kind or records a syntax error and
// marks the parse as failed.
func (p *Parser) expect(kind token.Kind) (tokSpan, bool) {
	if t, ok := p.accept(kind); ok {
		return t, true
	}
	got := p.peek()
	p.errorf(got.Span, "expected %s, got %s", kind, got.Tok.Kind)
	return tokSpan{}, false
}

func (p *Parser) errorf(span diag.Span, format string, args ...any) {
	p.diags.Errorf(span, format, args...)
	p.failed = true
}
