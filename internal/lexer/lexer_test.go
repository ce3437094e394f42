package lexer

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/reproto/reproto/internal/token"
)

func tokenize(t *testing.T, input string) []token.Token {
	t.Helper()
	l := New(0, input)
	var out []token.Token
	for {
		tok, _, ok, err := l.Next()
		if err != nil {
			t.Fatalf("lex error: %s", err.Message)
		}
		if !ok {
			break
		}
		out = append(out, tok)
	}
	return out
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestLexerKeywordsAndIdents(t *testing.T) {
	c := qt.New(t)

	toks := tokenize(t, `hello World { use as }`)
	c.Assert(kinds(toks), qt.DeepEquals, []token.Kind{
		token.Ident, token.TypeIdent, token.LeftCurly, token.KwUse, token.KwAs, token.RightCurly,
	})
	c.Assert(toks[0].Text, qt.Equals, "hello")
	c.Assert(toks[1].Text, qt.Equals, "World")
}

func TestLexerLeadingUnderscoreSuppressesKeyword(t *testing.T) {
	c := qt.New(t)

	toks := tokenize(t, `_type`)
	c.Assert(toks, qt.HasLen, 1)
	c.Assert(toks[0].Kind, qt.Equals, token.Ident)
	c.Assert(toks[0].Text, qt.Equals, "_type")
}

func TestLexerString(t *testing.T) {
	c := qt.New(t)

	toks := tokenize(t, `"hello world"`)
	c.Assert(toks, qt.HasLen, 1)
	c.Assert(toks[0].Kind, qt.Equals, token.String)
	c.Assert(toks[0].Str, qt.Equals, "hello world")
}

func TestLexerStringEscapes(t *testing.T) {
	c := qt.New(t)

	toks := tokenize(t, `"a\nb\tcé"`)
	c.Assert(toks, qt.HasLen, 1)
	c.Assert(toks[0].Str, qt.Equals, "a\nb\tcé")
}

func TestLexerUnterminatedString(t *testing.T) {
	c := qt.New(t)

	l := New(0, `"hello`)
	_, _, _, err := l.Next()
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestLexerCodeBlock(t *testing.T) {
	c := qt.New(t)

	toks := tokenize(t, "{{ foo bar baz \n zing }}")
	c.Assert(kinds(toks), qt.DeepEquals, []token.Kind{token.CodeOpen, token.CodeContent, token.CodeClose})
	c.Assert(toks[1].Lines, qt.DeepEquals, []string{"foo bar baz ", "zing "})
}

func TestLexerNumberPreservesPrecision(t *testing.T) {
	c := qt.New(t)

	toks := tokenize(t, "-12.42e-4")
	c.Assert(toks, qt.HasLen, 1)
	c.Assert(toks[0].Kind, qt.Equals, token.Number)
	c.Assert(toks[0].Num.Digits.Int64(), qt.Equals, int64(-1242))
	c.Assert(toks[0].Num.Decimal, qt.Equals, uint32(6))
}

func TestLexerInteger(t *testing.T) {
	c := qt.New(t)

	toks := tokenize(t, "12")
	c.Assert(toks, qt.HasLen, 1)
	v, ok := toks[0].Num.ToU32()
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, uint32(12))
}

func TestLexerScopedName(t *testing.T) {
	c := qt.New(t)

	toks := tokenize(t, "foo::Bar.Baz")
	c.Assert(kinds(toks), qt.DeepEquals, []token.Kind{
		token.Ident, token.Scope, token.TypeIdent, token.Dot, token.TypeIdent,
	})
}

func TestLexerComments(t *testing.T) {
	c := qt.New(t)

	toks := tokenize(t, "// hello \n world")
	c.Assert(toks, qt.HasLen, 1)
	c.Assert(toks[0].Text, qt.Equals, "world")
	c.Assert(toks[0].Doc, qt.DeepEquals, []string{"hello "})
}

func TestLexerAttributeOpen(t *testing.T) {
	c := qt.New(t)

	toks := tokenize(t, `#[http(method = "GET")]`)
	c.Assert(toks[0].Kind, qt.Equals, token.HashOpen)
}

func TestLexerArrowAndHashRocket(t *testing.T) {
	c := qt.New(t)

	toks := tokenize(t, "-> =>")
	c.Assert(kinds(toks), qt.DeepEquals, []token.Kind{token.Arrow, token.HashRocket})
}

func TestLexerVersion(t *testing.T) {
	c := qt.New(t)

	toks := tokenize(t, "@^1.2.3 ")
	c.Assert(toks, qt.HasLen, 1)
	c.Assert(toks[0].Kind, qt.Equals, token.Version)
	c.Assert(toks[0].Text, qt.Equals, "^1.2.3")
}

func TestLexerIllegalCharacterStopsStream(t *testing.T) {
	c := qt.New(t)

	l := New(0, "foo $ bar")
	_, _, ok, _ := l.Next() // foo
	c.Assert(ok, qt.IsTrue)

	_, _, ok, err := l.Next() // $
	c.Assert(ok, qt.IsFalse)
	c.Assert(err, qt.Not(qt.IsNil))

	_, _, ok, err = l.Next() // no further tokens
	c.Assert(ok, qt.IsFalse)
	c.Assert(err, qt.IsNil)
}
