package lower

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/reproto/reproto/internal/ast"
	"github.com/reproto/reproto/internal/diag"
	"github.com/reproto/reproto/internal/ir"
	"github.com/reproto/reproto/internal/parser"
	"github.com/reproto/reproto/internal/scope"
)

func lowerSource(t *testing.T, input string) (*ir.File, *diag.List) {
	t.Helper()
	diags := diag.NewList()
	f, ok := parser.ParseFile(1, input, diags)
	if !ok {
		t.Fatalf("parse failed: %v", diags.All())
	}
	s := scope.New(nil, ir.Package{Parts: []string{"foo"}}, map[string]ir.Package{})
	return New(diags).LowerFile(f, s), diags
}

func TestLowerNameCarriesAliasPrefixForDisplay(t *testing.T) {
	c := qt.New(t)
	diags := diag.NewList()

	other := ir.Package{Parts: []string{"other", "pkg"}}
	s := scope.New(nil, ir.Package{Parts: []string{"foo"}}, map[string]ir.Package{"o": other})

	name := New(diags).lowerName(ast.Name{Prefix: strPtr("o"), Parts: []string{"Thing"}}, s)
	c.Assert(diags.HasErrors(), qt.IsFalse)

	c.Assert(name.String(), qt.Equals, "other.pkg.Thing")
	c.Assert(name.Display(), qt.Equals, "o::Thing")

	// Equality (as used for registry lookup) ignores the prefix used to
	// reach the name.
	unprefixed := ir.AbsoluteName{Package: other, Parts: []string{"Thing"}}
	c.Assert(name.String(), qt.Equals, unprefixed.String())
}

func strPtr(s string) *string { return &s }

func TestLowerFieldWireNaming(t *testing.T) {
	c := qt.New(t)
	out, diags := lowerSource(t, `
package foo;

option field_naming = upper_snake;

type Entity {
	user_id: unsigned/64;
}
`)
	c.Assert(diags.HasErrors(), qt.IsFalse)
	c.Assert(out.Decls, qt.HasLen, 1)
	field := out.Decls[0].Type.Fields[0]
	c.Assert(field.Name, qt.Equals, "user_id")
	c.Assert(field.WireName, qt.Equals, "USER_ID")
}

func TestLowerFieldConflictReported(t *testing.T) {
	c := qt.New(t)
	_, diags := lowerSource(t, `
package foo;

type Entity {
	id: unsigned/64;
	id: string;
}
`)
	c.Assert(diags.HasErrors(), qt.IsTrue)
}

func TestLowerFieldWireNameConflictReported(t *testing.T) {
	c := qt.New(t)
	_, diags := lowerSource(t, `
package foo;

type Entity {
	a: unsigned/64 as "x";
	b: string as "x";
}
`)
	c.Assert(diags.HasErrors(), qt.IsTrue)
}

func TestLowerTupleDropsWireNames(t *testing.T) {
	c := qt.New(t)
	out, diags := lowerSource(t, `
package foo;

tuple Point {
	x: double;
	y: double;
}
`)
	c.Assert(diags.HasErrors(), qt.IsFalse)
	for _, f := range out.Decls[0].Tuple.Fields {
		c.Assert(f.WireName, qt.Equals, "")
	}
}

func TestLowerEnumGeneratedOrdinals(t *testing.T) {
	c := qt.New(t)
	out, diags := lowerSource(t, `
package foo;

enum Color {
	RED;
	GREEN;
	BLUE;
}
`)
	c.Assert(diags.HasErrors(), qt.IsFalse)
	enum := out.Decls[0].Enum
	c.Assert(enum.Variants, qt.HasLen, 3)
	c.Assert(enum.Variants[0].Type, qt.Equals, ir.VariantGenerated)
	c.Assert(enum.Variants[0].Ordinal.Str, qt.Equals, "RED")
	c.Assert(enum.Variants[1].Ordinal.Str, qt.Equals, "GREEN")
}

func TestLowerEnumGeneratedOrdinalsResumeAfterExplicit(t *testing.T) {
	c := qt.New(t)
	out, diags := lowerSource(t, `
package foo;

enum E as unsigned/32 {
	A as 2;
	B;
	C;
}
`)
	c.Assert(diags.HasErrors(), qt.IsFalse)
	enum := out.Decls[0].Enum
	c.Assert(enum.Variants, qt.HasLen, 3)

	a, aOK := enum.Variants[0].Ordinal.Num.ToInt64()
	c.Assert(aOK, qt.IsTrue)
	c.Assert(a, qt.Equals, int64(2))

	b, bOK := enum.Variants[1].Ordinal.Num.ToInt64()
	c.Assert(bOK, qt.IsTrue)
	c.Assert(b, qt.Equals, int64(3))

	cc, ccOK := enum.Variants[2].Ordinal.Num.ToInt64()
	c.Assert(ccOK, qt.IsTrue)
	c.Assert(cc, qt.Equals, int64(4))
}

func TestLowerEnumExplicitOrdinalConflict(t *testing.T) {
	c := qt.New(t)
	_, diags := lowerSource(t, `
package foo;

enum Status {
	OK as 1;
	FAILED as 1;
}
`)
	c.Assert(diags.HasErrors(), qt.IsTrue)
}

func TestLowerInterfaceSubTypeStrategy(t *testing.T) {
	c := qt.New(t)
	out, diags := lowerSource(t, `
package foo;

#[type_info(strategy = "nested", tag = "kind")]
interface Shape {
	Circle {
		radius: double;
	}

	Square as "sq" {
		side: double;
	}
}
`)
	c.Assert(diags.HasErrors(), qt.IsFalse)
	iface := out.Decls[0].Interface
	c.Assert(iface.Strategy, qt.Equals, ir.TagNested)
	c.Assert(iface.TagField, qt.Equals, "kind")
	c.Assert(iface.SubTypes, qt.HasLen, 2)
	c.Assert(iface.SubTypes[0].WireName, qt.Equals, "Circle")
	c.Assert(iface.SubTypes[1].WireName, qt.Equals, "sq")
}

func TestLowerInterfaceSubTypeWireNameConflictReported(t *testing.T) {
	c := qt.New(t)
	_, diags := lowerSource(t, `
package foo;

interface Shape {
	Circle as "shape" {
		radius: double;
	}

	Square as "shape" {
		side: double;
	}
}
`)
	c.Assert(diags.HasErrors(), qt.IsTrue)
}

func TestLowerServiceEndpointConflict(t *testing.T) {
	c := qt.New(t)
	_, diags := lowerSource(t, `
package foo;

service Entities {
	endpoint get_entity(id: unsigned/64) returns string;
	endpoint get_entity(name: string) returns string;
}
`)
	c.Assert(diags.HasErrors(), qt.IsTrue)
}

func TestLowerServiceHTTPBinding(t *testing.T) {
	c := qt.New(t)
	out, diags := lowerSource(t, `
package foo;

service Entities {
	#[http(method = "GET", path = "/entities/{id}", accept = "text/plain")]
	endpoint get_entity(id: unsigned/64) returns string;
}
`)
	c.Assert(diags.HasErrors(), qt.IsFalse)
	ep := out.Decls[0].Service.Endpoints[0]
	c.Assert(ep.HTTP, qt.Not(qt.IsNil))
	c.Assert(ep.HTTP.Method, qt.Equals, "GET")
	c.Assert(ep.HTTP.Path.Steps, qt.HasLen, 2)
	c.Assert(ep.HTTP.Path.Steps[1].Parts[0].Kind, qt.Equals, ir.PathVariable)
	c.Assert(ep.HTTP.Path.Steps[1].Parts[0].Variable, qt.Equals, "id")
	c.Assert(ep.HTTP.Accept, qt.Equals, "text/plain")
}

func TestLowerServiceHTTPUnusedArgument(t *testing.T) {
	c := qt.New(t)
	_, diags := lowerSource(t, `
package foo;

service Entities {
	#[http(method = "GET", path = "/entities")]
	endpoint get_entity(id: unsigned/64) returns string;
}
`)
	c.Assert(diags.HasErrors(), qt.IsTrue)
}
