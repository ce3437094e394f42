package load

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/rs/zerolog"

	"github.com/reproto/reproto/internal/diag"
	"github.com/reproto/reproto/internal/ir"
	"github.com/reproto/reproto/internal/resolve"
)

func TestLoaderWalksTransitiveImports(t *testing.T) {
	c := qt.New(t)

	resolver := &resolve.MapResolver{Sources: map[string][]resolve.Source{
		"other.pkg": {{
			Package: ir.Package{Parts: []string{"other", "pkg"}, Version: "1.0.0"},
			Path:    "other/pkg.reproto",
			Content: []byte("package other.pkg;\n\ntype Leaf { id: unsigned/32; }\n"),
		}},
	}}

	loader := &Loader{
		Resolver: resolver,
		Sources:  &diag.Set{},
		Diags:    diag.NewList(),
		Log:      zerolog.Nop(),
	}

	entry := resolve.Source{
		Package: ir.Package{Parts: []string{"root"}},
		Path:    "root.reproto",
		Content: []byte("package root;\n\nuse other.pkg as other;\n\ntype Entity { id: unsigned/32; }\n"),
	}

	graph := loader.Load([]resolve.Source{entry})

	c.Assert(graph.Units, qt.HasLen, 2)
	c.Assert(loader.Diags.HasErrors(), qt.IsFalse)
}

func TestLoaderReportsMissingPackage(t *testing.T) {
	c := qt.New(t)

	resolver := &resolve.MapResolver{Sources: map[string][]resolve.Source{}}
	loader := &Loader{
		Resolver: resolver,
		Sources:  &diag.Set{},
		Diags:    diag.NewList(),
		Log:      zerolog.Nop(),
	}

	entry := resolve.Source{
		Package: ir.Package{Parts: []string{"root"}},
		Content: []byte("package root;\n\nuse missing.pkg;\n"),
	}

	loader.Load([]resolve.Source{entry})
	c.Assert(loader.Diags.HasErrors(), qt.IsTrue)
}
