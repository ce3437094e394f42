package registry

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/reproto/reproto/internal/ir"
)

func TestRegisterAndLookupType(t *testing.T) {
	c := qt.New(t)
	pkg := ir.Package{Parts: []string{"foo"}}
	f := &ir.File{Package: pkg, Decls: []*ir.Decl{
		{Kind: ir.DeclType, LocalName: "Entity", Type: &ir.TypeBody{
			Fields: []ir.Field{{Name: "id"}},
		}},
	}}

	r := New()
	r.Register(f)

	e, ok := r.Lookup(ir.AbsoluteName{Package: pkg, Parts: []string{"Entity"}})
	c.Assert(ok, qt.IsTrue)
	c.Assert(e.Kind, qt.Equals, KindType)
	fields, ok := e.Fields()
	c.Assert(ok, qt.IsTrue)
	c.Assert(fields, qt.HasLen, 1)
}

func TestSubTypeFieldsIncludeParent(t *testing.T) {
	c := qt.New(t)
	pkg := ir.Package{Parts: []string{"foo"}}
	f := &ir.File{Package: pkg, Decls: []*ir.Decl{
		{Kind: ir.DeclInterface, LocalName: "Shape", Interface: &ir.InterfaceBody{
			Fields: []ir.Field{{Name: "id"}},
			SubTypes: []*ir.SubType{
				{LocalName: "Circle", Fields: []ir.Field{{Name: "radius"}}},
			},
		}},
	}}

	r := New()
	r.Register(f)

	e, ok := r.Lookup(ir.AbsoluteName{Package: pkg, Parts: []string{"Shape", "Circle"}})
	c.Assert(ok, qt.IsTrue)
	c.Assert(e.Kind, qt.Equals, KindSubType)
	fields, ok := e.Fields()
	c.Assert(ok, qt.IsTrue)
	c.Assert(fields, qt.HasLen, 2)

	_, ok = e.FieldByIdent("radius")
	c.Assert(ok, qt.IsTrue)
}

func TestIsAssignableFromSubTypeToParent(t *testing.T) {
	c := qt.New(t)
	pkg := ir.Package{Parts: []string{"foo"}}
	f := &ir.File{Package: pkg, Decls: []*ir.Decl{
		{Kind: ir.DeclInterface, LocalName: "Shape", Interface: &ir.InterfaceBody{
			SubTypes: []*ir.SubType{{LocalName: "Circle"}},
		}},
	}}

	r := New()
	r.Register(f)

	parent, _ := r.Lookup(ir.AbsoluteName{Package: pkg, Parts: []string{"Shape"}})
	sub, _ := r.Lookup(ir.AbsoluteName{Package: pkg, Parts: []string{"Shape", "Circle"}})

	c.Assert(parent.IsAssignableFrom(sub), qt.IsTrue)
	c.Assert(sub.IsAssignableFrom(parent), qt.IsFalse)
}

func TestLocalNameForTopLevelDecl(t *testing.T) {
	c := qt.New(t)
	pkg := ir.Package{Parts: []string{"foo"}}
	f := &ir.File{Package: pkg, Decls: []*ir.Decl{
		{Kind: ir.DeclType, LocalName: "Entity", Type: &ir.TypeBody{}},
	}}

	r := New()
	r.Register(f)

	e, _ := r.Lookup(ir.AbsoluteName{Package: pkg, Parts: []string{"Entity"}})
	join := func(parts []string) string { return joinWith(parts, ".") }
	c.Assert(e.LocalName(join, join), qt.Equals, "Entity")
}

func TestLocalNameForSubTypeFoldsParentAndChild(t *testing.T) {
	c := qt.New(t)
	pkg := ir.Package{Parts: []string{"foo"}}
	f := &ir.File{Package: pkg, Decls: []*ir.Decl{
		{Kind: ir.DeclInterface, LocalName: "Shape", Interface: &ir.InterfaceBody{
			SubTypes: []*ir.SubType{{LocalName: "Circle"}},
		}},
	}}

	r := New()
	r.Register(f)

	e, _ := r.Lookup(ir.AbsoluteName{Package: pkg, Parts: []string{"Shape", "Circle"}})
	join := func(parts []string) string { return joinWith(parts, "_") }
	c.Assert(e.LocalName(join, join), qt.Equals, "Shape_Circle")
}

func joinWith(parts []string, sep string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += sep
		}
		out += p
	}
	return out
}

func TestResolveNestedBeforeSibling(t *testing.T) {
	c := qt.New(t)
	pkg := ir.Package{Parts: []string{"foo"}}
	f := &ir.File{Package: pkg, Decls: []*ir.Decl{
		{Kind: ir.DeclType, LocalName: "Outer", Type: &ir.TypeBody{
			Inner: []*ir.Decl{
				{Kind: ir.DeclType, LocalName: "Inner", Type: &ir.TypeBody{}},
			},
		}},
		{Kind: ir.DeclType, LocalName: "Inner", Type: &ir.TypeBody{}},
	}}

	r := New()
	r.Register(f)

	name, ok := r.Resolve(pkg, []string{"Outer"}, []string{"Inner"})
	c.Assert(ok, qt.IsTrue)
	c.Assert(name.Parts, qt.DeepEquals, []string{"Outer", "Inner"})
}

func TestResolveFallsBackToPackageLevel(t *testing.T) {
	c := qt.New(t)
	pkg := ir.Package{Parts: []string{"foo"}}
	f := &ir.File{Package: pkg, Decls: []*ir.Decl{
		{Kind: ir.DeclType, LocalName: "Other", Type: &ir.TypeBody{}},
	}}

	r := New()
	r.Register(f)

	name, ok := r.Resolve(pkg, []string{"Outer"}, []string{"Other"})
	c.Assert(ok, qt.IsTrue)
	c.Assert(name.Parts, qt.DeepEquals, []string{"Other"})
}
