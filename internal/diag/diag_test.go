package diag

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestSourceLineCol(t *testing.T) {
	c := qt.New(t)

	src := NewSource(0, "foo.reproto", []byte("type Foo {\n  id: u64;\n}\n"), false)

	c.Assert(src.LineCol(0, UTF8Columns), qt.Equals, LineCol{Line: 1, Col: 1})
	c.Assert(src.LineCol(11, UTF8Columns), qt.Equals, LineCol{Line: 2, Col: 1})
	c.Assert(src.LineCol(14, UTF8Columns), qt.Equals, LineCol{Line: 2, Col: 4})
}

func TestSourceLineColUTF16(t *testing.T) {
	c := qt.New(t)

	// "emoji 😀 here" — the emoji is 4 bytes in UTF-8 but a surrogate pair
	// (2 units) in UTF-16, so UTF-16 columns diverge from UTF-8 columns
	// once past it.
	content := []byte("emoji 😀 here")
	src := NewSource(0, "f.reproto", content, false)

	afterEmoji := len("emoji 😀")
	utf8Col := src.LineCol(afterEmoji, UTF8Columns).Col
	utf16Col := src.LineCol(afterEmoji, UTF16Columns).Col

	c.Assert(utf16Col < utf8Col, qt.IsTrue)
}

func TestListHasErrors(t *testing.T) {
	c := qt.New(t)

	l := NewList()
	c.Assert(l.HasErrors(), qt.IsFalse)

	l.Infof(Pos(0, 0), "informational")
	c.Assert(l.HasErrors(), qt.IsFalse)

	l.Errorf(Pos(0, 0), "boom: %s", "reason")
	c.Assert(l.HasErrors(), qt.IsTrue)
	c.Assert(l.Len(), qt.Equals, 2)
	c.Assert(l.All()[1].Message, qt.Equals, "boom: reason")
}

func TestSpanJoin(t *testing.T) {
	c := qt.New(t)

	a := Span{Source: 0, Start: 5, End: 10}
	b := Span{Source: 0, Start: 2, End: 7}
	joined := a.Join(b)
	c.Assert(joined, qt.Equals, Span{Source: 0, Start: 2, End: 10})
}

func TestRender(t *testing.T) {
	c := qt.New(t)

	var set Set
	set.Add("foo.reproto", []byte("type Foo { a: u32; a: string; }\n"), false)

	d := Diagnostic{
		Kind:    Error,
		Span:    Span{Source: 0, Start: 19, End: 20},
		Message: "duplicate field `a`",
		Related: []Related{{Span: Span{Source: 0, Start: 11, End: 12}, Message: "previously defined here"}},
	}

	out := Render(d, &set)
	c.Assert(out, qt.Contains, "foo.reproto:1:20: error: duplicate field `a`")
	c.Assert(out, qt.Contains, "note: previously defined here")
}
