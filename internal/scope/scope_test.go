package scope

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/reproto/reproto/internal/ir"
)

func TestScopeChildWalk(t *testing.T) {
	c := qt.New(t)
	root := New(nil, ir.Package{}, map[string]ir.Package{})

	s2 := root.Child("foo")
	s3 := s2.Child("bar")

	c.Assert(s3.Path(), qt.DeepEquals, []string{"foo", "bar"})
	c.Assert(root.Path(), qt.HasLen, 0)
}

func TestScopePackagePrefix(t *testing.T) {
	c := qt.New(t)
	prefix := ir.Package{Parts: []string{"com", "example"}}
	s := New(&prefix, ir.Package{Parts: []string{"foo"}}, nil)

	c.Assert(s.Package().Parts, qt.DeepEquals, []string{"com", "example", "foo"})
}

func TestScopeNextTypeIDMonotonic(t *testing.T) {
	c := qt.New(t)
	s := New(nil, ir.Package{}, nil)
	a := s.NextTypeID()
	b := s.Child("x").NextTypeID()
	c.Assert(b, qt.Equals, a+1)
}
