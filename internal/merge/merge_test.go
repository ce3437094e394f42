package merge

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/google/go-cmp/cmp"

	"github.com/reproto/reproto/internal/diag"
	"github.com/reproto/reproto/internal/ir"
)

func field(name string) ir.Field {
	return ir.Field{Name: name, WireName: name, Type: ir.Type{Kind: ir.TString}}
}

func TestMergeTypeFieldsAcrossFiles(t *testing.T) {
	c := qt.New(t)
	diags := diag.NewList()

	pkg := ir.Package{Parts: []string{"foo"}}
	fileA := &ir.File{Package: pkg, Decls: []*ir.Decl{
		{Kind: ir.DeclType, LocalName: "Entity", Type: &ir.TypeBody{Fields: []ir.Field{field("id")}}},
	}}
	fileB := &ir.File{Package: pkg, Decls: []*ir.Decl{
		{Kind: ir.DeclType, LocalName: "Entity", Type: &ir.TypeBody{Fields: []ir.Field{field("name")}}},
	}}

	out := New(diags).Merge(pkg, []*ir.File{fileA, fileB})
	c.Assert(diags.HasErrors(), qt.IsFalse)
	c.Assert(out.Decls, qt.HasLen, 1)

	want := []ir.Field{field("id"), field("name")}
	if diff := cmp.Diff(want, out.Decls[0].Type.Fields); diff != "" {
		t.Fatalf("merged fields mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFieldConflictReported(t *testing.T) {
	c := qt.New(t)
	diags := diag.NewList()

	pkg := ir.Package{Parts: []string{"foo"}}
	fileA := &ir.File{Package: pkg, Decls: []*ir.Decl{
		{Kind: ir.DeclType, LocalName: "Entity", Type: &ir.TypeBody{Fields: []ir.Field{field("id")}}},
	}}
	fileB := &ir.File{Package: pkg, Decls: []*ir.Decl{
		{Kind: ir.DeclType, LocalName: "Entity", Type: &ir.TypeBody{Fields: []ir.Field{field("id")}}},
	}}

	New(diags).Merge(pkg, []*ir.File{fileA, fileB})
	c.Assert(diags.HasErrors(), qt.IsTrue)
}

func TestMergeFieldWireNameConflictReported(t *testing.T) {
	c := qt.New(t)
	diags := diag.NewList()

	pkg := ir.Package{Parts: []string{"foo"}}
	fileA := &ir.File{Package: pkg, Decls: []*ir.Decl{
		{Kind: ir.DeclType, LocalName: "Entity", Type: &ir.TypeBody{
			Fields: []ir.Field{{Name: "a", WireName: "x", Type: ir.Type{Kind: ir.TString}}},
		}},
	}}
	fileB := &ir.File{Package: pkg, Decls: []*ir.Decl{
		{Kind: ir.DeclType, LocalName: "Entity", Type: &ir.TypeBody{
			Fields: []ir.Field{{Name: "b", WireName: "x", Type: ir.Type{Kind: ir.TString}}},
		}},
	}}

	New(diags).Merge(pkg, []*ir.File{fileA, fileB})
	c.Assert(diags.HasErrors(), qt.IsTrue)
}

func TestMergeDeclKindMismatchReported(t *testing.T) {
	c := qt.New(t)
	diags := diag.NewList()

	pkg := ir.Package{Parts: []string{"foo"}}
	fileA := &ir.File{Package: pkg, Decls: []*ir.Decl{
		{Kind: ir.DeclType, LocalName: "Entity", Type: &ir.TypeBody{}},
	}}
	fileB := &ir.File{Package: pkg, Decls: []*ir.Decl{
		{Kind: ir.DeclEnum, LocalName: "Entity", Enum: &ir.EnumBody{}},
	}}

	New(diags).Merge(pkg, []*ir.File{fileA, fileB})
	c.Assert(diags.HasErrors(), qt.IsTrue)
}

func TestMergeEnumRejectsAdditionalVariants(t *testing.T) {
	c := qt.New(t)
	diags := diag.NewList()

	pkg := ir.Package{Parts: []string{"foo"}}
	fileA := &ir.File{Package: pkg, Decls: []*ir.Decl{
		{Kind: ir.DeclEnum, LocalName: "Color", Enum: &ir.EnumBody{
			Variants: []ir.EnumVariant{{LocalName: "RED"}},
		}},
	}}
	fileB := &ir.File{Package: pkg, Decls: []*ir.Decl{
		{Kind: ir.DeclEnum, LocalName: "Color", Enum: &ir.EnumBody{
			Variants: []ir.EnumVariant{{LocalName: "BLUE"}},
		}},
	}}

	New(diags).Merge(pkg, []*ir.File{fileA, fileB})
	c.Assert(diags.HasErrors(), qt.IsTrue)
}

func TestMergeInterfaceSubTypesCombine(t *testing.T) {
	c := qt.New(t)
	diags := diag.NewList()

	pkg := ir.Package{Parts: []string{"foo"}}
	fileA := &ir.File{Package: pkg, Decls: []*ir.Decl{
		{Kind: ir.DeclInterface, LocalName: "Shape", Interface: &ir.InterfaceBody{
			SubTypes: []*ir.SubType{{LocalName: "Circle", Fields: []ir.Field{field("radius")}}},
		}},
	}}
	fileB := &ir.File{Package: pkg, Decls: []*ir.Decl{
		{Kind: ir.DeclInterface, LocalName: "Shape", Interface: &ir.InterfaceBody{
			SubTypes: []*ir.SubType{{LocalName: "Square", Fields: []ir.Field{field("side")}}},
		}},
	}}

	out := New(diags).Merge(pkg, []*ir.File{fileA, fileB})
	c.Assert(diags.HasErrors(), qt.IsFalse)
	c.Assert(out.Decls[0].Interface.SubTypes, qt.HasLen, 2)
}
