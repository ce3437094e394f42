// Package lexer turns IDL source bytes into a token stream.
//
// The design mirrors the two-character lookahead scanner in reproto's
// original Rust lexer (see _examples/original_source/src/parser/lexer.rs):
// a rolling pair of decoded runes (n0, n1) lets every rule decide with at
// most one character of lookahead beyond the current one.
package lexer

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/reproto/reproto/internal/diag"
	"github.com/reproto/reproto/internal/rpnumber"
	"github.com/reproto/reproto/internal/token"
)

// Lexer turns a single source's bytes into a stream of tokens.
type Lexer struct {
	source   diag.SourceID
	input    string
	pos      int // byte offset of the rune at n0
	n0Valid  bool
	n0       rune
	n0Size   int
	n1Valid  bool
	n1       rune
	n1Size   int

	illegal   bool
	codeBlock bool

	pendingDoc []string // accumulated doc-comment lines, attached to next token
}

// New constructs a Lexer over the given source content.
func New(source diag.SourceID, input string) *Lexer {
	l := &Lexer{source: source, input: input}
	l.n0Valid, l.n0, l.n0Size = decodeAt(input, 0)
	l.n1Valid, l.n1, l.n1Size = decodeAt(input, l.n0Size)
	return l
}

func decodeAt(input string, off int) (valid bool, r rune, size int) {
	if off >= len(input) {
		return false, 0, 0
	}
	r, size = utf8.DecodeRuneInString(input[off:])
	return true, r, size
}

func (l *Lexer) one() (int, rune, bool) {
	if !l.n0Valid {
		return l.pos, 0, false
	}
	return l.pos, l.n0, true
}

func (l *Lexer) two() (int, rune, rune, bool) {
	if !l.n0Valid || !l.n1Valid {
		return l.pos, 0, 0, false
	}
	return l.pos, l.n0, l.n1, true
}

// step consumes n0, advancing pos past it and shifting the window.
func (l *Lexer) step() {
	if l.n0Valid {
		l.pos += l.n0Size
	}
	l.n0Valid, l.n0, l.n0Size = l.n1Valid, l.n1, l.n1Size
	l.n1Valid, l.n1, l.n1Size = decodeAt(l.input, l.pos+l.n0Size)
}

func (l *Lexer) span(start, end int) diag.Span {
	return diag.Span{Source: l.source, Start: start, End: end}
}

// Next returns the next token, or ok=false at end of input. err is
// non-nil (and ok is false) on a lex error; the lexer produces no further
// tokens after an error: the lexer stops producing further
// tokens for that source").
func (l *Lexer) Next() (tok token.Token, span diag.Span, ok bool, err *diag.Diagnostic) {
	if l.illegal {
		return token.Token{}, diag.Span{}, false, nil
	}

	if l.codeBlock {
		return l.lexCodeBlock()
	}

	for {
		if start, a, b, has2 := l.two(); has2 {
			switch {
			case a == '/' && b == '/':
				l.skipLineComment()
				continue
			case a == '/' && b == '*':
				l.skipBlockComment()
				continue
			case a == '}' && b == '}':
				l.step()
				l.step()
				l.codeBlock = false
				return l.emit(token.CodeClose, start, start+2, "}}")
			case a == '{' && b == '{':
				l.step()
				l.step()
				l.codeBlock = true
				return l.emit(token.CodeOpen, start, start+2, "{{")
			case a == ':' && b == ':':
				l.step()
				l.step()
				return l.emit(token.Scope, start, start+2, "::")
			case a == '=' && b == '>':
				l.step()
				l.step()
				return l.emit(token.HashRocket, start, start+2, "=>")
			case a == '-' && b == '>':
				l.step()
				l.step()
				return l.emit(token.Arrow, start, start+2, "->")
			case a == '#' && b == '[':
				l.step()
				l.step()
				return l.emit(token.HashOpen, start, start+2, "#[")
			}
		}

		start, c, has1 := l.one()
		if !has1 {
			return token.Token{}, diag.Span{}, false, nil
		}

		switch {
		case c == '{':
			l.step()
			return l.emit(token.LeftCurly, start, start+1, "{")
		case c == '}':
			l.step()
			return l.emit(token.RightCurly, start, start+1, "}")
		case c == '[':
			l.step()
			return l.emit(token.LeftBracket, start, start+1, "[")
		case c == ']':
			l.step()
			return l.emit(token.RightBracket, start, start+1, "]")
		case c == '(':
			l.step()
			return l.emit(token.LeftParen, start, start+1, "(")
		case c == ')':
			l.step()
			return l.emit(token.RightParen, start, start+1, ")")
		case c == ';':
			l.step()
			return l.emit(token.Semicolon, start, start+1, ";")
		case c == ':':
			l.step()
			return l.emit(token.Colon, start, start+1, ":")
		case c == ',':
			l.step()
			return l.emit(token.Comma, start, start+1, ",")
		case c == '.':
			l.step()
			return l.emit(token.Dot, start, start+1, ".")
		case c == '?':
			l.step()
			return l.emit(token.Optional, start, start+1, "?")
		case c == '&':
			l.step()
			return l.emit(token.Amp, start, start+1, "&")
		case c == '/':
			l.step()
			return l.emit(token.Slash, start, start+1, "/")
		case c == '=':
			l.step()
			return l.emit(token.Equals, start, start+1, "=")
		case c == '*':
			l.step()
			return l.emit(token.Star, start, start+1, "*")
		case c == '@':
			l.step()
			return l.lexVersion(start)
		case c >= 'a' && c <= 'z', c == '_':
			return l.lexIdentifier(start)
		case c >= 'A' && c <= 'Z':
			return l.lexTypeIdentifier(start)
		case c == '"':
			return l.lexString(start)
		case c == '-' || (c >= '0' && c <= '9'):
			return l.lexNumber(start)
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			l.step()
			continue
		default:
			l.illegal = true
			return token.Token{}, diag.Span{}, false, &diag.Diagnostic{
				Kind:    diag.Error,
				Span:    l.span(start, start+1),
				Message: fmt.Sprintf("illegal character %q", c),
			}
		}
	}
}

func (l *Lexer) emit(kind token.Kind, start, end int, text string) (token.Token, diag.Span, bool, *diag.Diagnostic) {
	doc := l.takeDoc()
	return token.Token{Kind: kind, Text: text, Doc: doc}, l.span(start, end), true, nil
}

func (l *Lexer) takeDoc() []string {
	if len(l.pendingDoc) == 0 {
		return nil
	}
	doc := l.pendingDoc
	l.pendingDoc = nil
	return doc
}

// skipLineComment consumes a `// ...` comment up to (not including) the
// line terminator, and appends its text to the pending doc-comment run.
// A run of line comments immediately preceding a declaration attaches to
// it; any non-comment, non-whitespace token clears the run.
func (l *Lexer) skipLineComment() {
	l.step()
	l.step()

	start := l.pos
	for {
		_, c, has := l.one()
		if !has || c == '\n' || c == '\r' {
			break
		}
		l.step()
	}
	text := l.input[start:l.pos]
	l.pendingDoc = append(l.pendingDoc, strings.TrimPrefix(text, " "))

	if _, c, has := l.one(); has && (c == '\n' || c == '\r') {
		l.step()
	}
}

// skipBlockComment consumes a `/* ... */` comment. Block comments are
// ignored entirely, including as doc-comments.
func (l *Lexer) skipBlockComment() {
	l.step()
	l.step()
	for {
		if _, a, b, has2 := l.two(); has2 && a == '*' && b == '/' {
			l.step()
			l.step()
			return
		}
		if _, _, has1 := l.one(); !has1 {
			return
		}
		l.step()
	}
}

func (l *Lexer) lexIdentifier(start int) (token.Token, diag.Span, bool, *diag.Diagnostic) {
	var b strings.Builder
	suppressKeyword := false
	end := start
	first := true
	for {
		_, c, has := l.one()
		if !has || !(c >= 'a' && c <= 'z' || c == '_' || c >= '0' && c <= '9') {
			break
		}
		if first && c == '_' {
			suppressKeyword = true
		}
		first = false
		b.WriteRune(c)
		end = l.pos + l.n0Size
		l.step()
	}

	word := b.String()
	if !suppressKeyword {
		if kw, ok := token.Lookup(word); ok {
			doc := l.takeDoc()
			return token.Token{Kind: kw, Text: word, Doc: doc}, l.span(start, end), true, nil
		}
	}

	doc := l.takeDoc()
	return token.Token{Kind: token.Ident, Text: word, Doc: doc}, l.span(start, end), true, nil
}

func (l *Lexer) lexTypeIdentifier(start int) (token.Token, diag.Span, bool, *diag.Diagnostic) {
	var b strings.Builder
	end := start
	for {
		_, c, has := l.one()
		if !has || !(c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c == '_' || c >= '0' && c <= '9') {
			break
		}
		b.WriteRune(c)
		end = l.pos + l.n0Size
		l.step()
	}
	doc := l.takeDoc()
	return token.Token{Kind: token.TypeIdent, Text: b.String(), Doc: doc}, l.span(start, end), true, nil
}

func (l *Lexer) lexVersion(start int) (token.Token, diag.Span, bool, *diag.Diagnostic) {
	var b strings.Builder
	end := start
	for {
		_, c, has := l.one()
		if !has {
			break
		}
		isVersionRune := c == '^' || c == '<' || c == '>' || c == '=' || c == '.' || c == '-' ||
			(c >= '0' && c <= '9') || (c >= 'a' && c <= 'z')
		if !isVersionRune {
			break
		}
		b.WriteRune(c)
		end = l.pos + l.n0Size
		l.step()
	}
	doc := l.takeDoc()
	return token.Token{Kind: token.Version, Text: b.String(), Doc: doc}, l.span(start, end), true, nil
}

func (l *Lexer) lexNumber(start int) (token.Token, diag.Span, bool, *diag.Diagnostic) {
	negative := false
	if _, c, has := l.one(); has && c == '-' {
		negative = true
		l.step()
	}

	var whole strings.Builder
	end := start
	for {
		_, c, has := l.one()
		if !has || c < '0' || c > '9' {
			break
		}
		whole.WriteRune(c)
		end = l.pos + l.n0Size
		l.step()
	}
	if whole.Len() == 0 {
		whole.WriteByte('0')
	}

	digits := new(big.Int)
	if _, ok := digits.SetString(whole.String(), 10); !ok {
		l.illegal = true
		return token.Token{}, diag.Span{}, false, &diag.Diagnostic{Kind: diag.Error, Span: l.span(start, end), Message: "malformed number"}
	}
	var decimal uint32

	if _, c, has := l.one(); has && c == '.' {
		l.step()

		var frac strings.Builder
		for {
			_, c, has := l.one()
			if !has || c < '0' || c > '9' {
				break
			}
			frac.WriteRune(c)
			end = l.pos + l.n0Size
			l.step()
		}
		if frac.Len() == 0 {
			l.illegal = true
			return token.Token{}, diag.Span{}, false, &diag.Diagnostic{Kind: diag.Error, Span: l.span(start, end), Message: "malformed number: expected digits after '.'"}
		}

		fracStr := frac.String()
		decimal = uint32(len(fracStr))
		shift := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimal)), nil)
		digits.Mul(digits, shift)
		fracVal := new(big.Int)
		fracVal.SetString(fracStr, 10)
		digits.Add(digits, fracVal)

		if _, c, has := l.one(); has && c == 'e' {
			l.step()

			expNeg := false
			if _, c, has := l.one(); has && c == '-' {
				expNeg = true
				l.step()
			}
			var expStr strings.Builder
			for {
				_, c, has := l.one()
				if !has || c < '0' || c > '9' {
					break
				}
				expStr.WriteRune(c)
				end = l.pos + l.n0Size
				l.step()
			}
			if expStr.Len() == 0 {
				l.illegal = true
				return token.Token{}, diag.Span{}, false, &diag.Diagnostic{Kind: diag.Error, Span: l.span(start, end), Message: "malformed number: expected exponent digits"}
			}
			exp, _ := strconv.Atoi(expStr.String())
			if expNeg {
				decimal += uint32(exp)
			} else {
				for i := 0; i < exp; i++ {
					if decimal > 0 {
						decimal--
					} else {
						digits.Mul(digits, big.NewInt(10))
					}
				}
			}
		}
	}

	if negative {
		digits.Neg(digits)
	}

	num := rpnumber.Number{Digits: digits, Decimal: decimal}
	doc := l.takeDoc()
	return token.Token{Kind: token.Number, Num: num, Doc: doc}, l.span(start, end), true, nil
}

func (l *Lexer) lexString(start int) (token.Token, diag.Span, bool, *diag.Diagnostic) {
	l.step() // consume opening quote

	var b strings.Builder
	for {
		p, c, has := l.one()
		if !has {
			l.illegal = true
			return token.Token{}, diag.Span{}, false, &diag.Diagnostic{Kind: diag.Error, Span: l.span(start, p), Message: "unterminated string"}
		}

		if c == '\\' {
			escStart := p
			l.step()
			_, escape, hasEsc := l.one()
			if !hasEsc {
				l.illegal = true
				return token.Token{}, diag.Span{}, false, &diag.Diagnostic{Kind: diag.Error, Span: l.span(escStart, l.pos), Message: "unterminated escape sequence"}
			}

			switch escape {
			case 'n':
				b.WriteRune('\n')
				l.step()
			case 'r':
				b.WriteRune('\r')
				l.step()
			case 't':
				b.WriteRune('\t')
				l.step()
			case '\\':
				b.WriteRune('\\')
				l.step()
			case '"':
				b.WriteRune('"')
				l.step()
			case '/':
				b.WriteRune('/')
				l.step()
			case 'u':
				l.step()
				r, perr := l.decodeUnicode4(escStart)
				if perr != nil {
					l.illegal = true
					return token.Token{}, diag.Span{}, false, perr
				}
				b.WriteRune(r)
			default:
				l.illegal = true
				return token.Token{}, diag.Span{}, false, &diag.Diagnostic{Kind: diag.Error, Span: l.span(escStart, l.pos+1), Message: fmt.Sprintf("invalid escape sequence '\\%c'", escape)}
			}
			continue
		}

		if c == '"' {
			l.step()
			doc := l.takeDoc()
			return token.Token{Kind: token.String, Str: b.String(), Doc: doc}, l.span(start, p+1), true, nil
		}

		b.WriteRune(c)
		l.step()
	}
}

func (l *Lexer) decodeUnicode4(escStart int) (rune, *diag.Diagnostic) {
	var hex strings.Builder
	for i := 0; i < 4; i++ {
		_, c, has := l.one()
		if !has {
			return 0, &diag.Diagnostic{Kind: diag.Error, Span: l.span(escStart, l.pos), Message: "unterminated \\u escape"}
		}
		hex.WriteRune(c)
		l.step()
	}
	v, err := strconv.ParseUint(hex.String(), 16, 32)
	if err != nil {
		return 0, &diag.Diagnostic{Kind: diag.Error, Span: l.span(escStart, l.pos), Message: fmt.Sprintf("invalid \\u escape: %q", hex.String())}
	}
	return rune(v), nil
}

// lexCodeBlock consumes raw bytes up to (not including) the next `}}`,
// strips common leading indentation and leading blank lines, and returns
// the result as CodeContent.
func (l *Lexer) lexCodeBlock() (token.Token, diag.Span, bool, *diag.Diagnostic) {
	start := l.pos
	var raw strings.Builder
	for {
		if _, a, b, has2 := l.two(); has2 && a == '}' && b == '}' {
			break
		}
		_, c, has := l.one()
		if !has {
			l.illegal = true
			return token.Token{}, diag.Span{}, false, &diag.Diagnostic{Kind: diag.Error, Span: l.span(start, l.pos), Message: "unterminated code block"}
		}
		raw.WriteRune(c)
		l.step()
	}
	end := l.pos
	l.codeBlock = false // the next call emits the closing `}}`

	lines := dedent(raw.String())
	return token.Token{Kind: token.CodeContent, Lines: lines}, l.span(start, end), true, nil
}

// dedent splits s into lines, drops leading blank lines, and strips the
// minimum common leading whitespace of the remaining non-blank lines.
func dedent(s string) []string {
	lines := strings.Split(s, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil
	}

	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return lines
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) >= minIndent {
			out[i] = line[minIndent:]
		} else {
			out[i] = strings.TrimLeft(line, " \t")
		}
	}
	return out
}
