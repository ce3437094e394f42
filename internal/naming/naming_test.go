package naming

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestConventions(t *testing.T) {
	c := qt.New(t)
	c.Assert(LowerSnake{}.Convert("foo_bar"), qt.Equals, "foo_bar")
	c.Assert(UpperSnake{}.Convert("foo_bar"), qt.Equals, "FOO_BAR")
	c.Assert(LowerCamel{}.Convert("foo_bar"), qt.Equals, "fooBar")
	c.Assert(UpperCamel{}.Convert("foo_bar"), qt.Equals, "FooBar")
}

func TestByKeywordUnknown(t *testing.T) {
	c := qt.New(t)
	_, ok := ByKeyword("kebab")
	c.Assert(ok, qt.IsFalse)
}
