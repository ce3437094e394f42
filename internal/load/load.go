// Package load implements the breadth-first import graph walk that
// turns a set of entrypoint packages into the full transitive closure of
// sources to parse and lower. It mirrors the lookup_required /
// lookup_versioned / rev_dep bookkeeping of
// lib/languageserver/workspace.rs from the original reproto sources:
// each required package is resolved and cached exactly once
// (lookup_required), each concrete versioned package is only queued for
// processing once (lookup_versioned), and rev_dep records which
// importing packages pulled in which dependency, for diagnostics and
// incremental invalidation.
package load

import (
	"github.com/rs/zerolog"

	"github.com/reproto/reproto/internal/ast"
	"github.com/reproto/reproto/internal/diag"
	"github.com/reproto/reproto/internal/ir"
	"github.com/reproto/reproto/internal/parser"
	"github.com/reproto/reproto/internal/resolve"
)

// Required is a single `use` reference as written: the package path and
// its (possibly unconstrained) version requirement.
type Required struct {
	Parts   []string
	Version resolve.VersionRequirement
}

func (r Required) key() string {
	s := r.Version.String()
	for _, p := range r.Parts {
		s += "/" + p
	}
	return s
}

// Unit is one resolved, parsed, not-yet-lowered compilation unit: a
// single versioned package together with every source file contributing
// to it.
type Unit struct {
	Package ir.Package
	Files   []*parsedFile
}

type parsedFile struct {
	Source diag.SourceID
	Path   string
	AST    *ast.File
	Uses   []Required
}

// Graph is the accumulated result of walking every transitive import
// starting from a set of entrypoints.
type Graph struct {
	Units  []*Unit
	RevDep map[string]map[string]bool // dependency package key -> importing package keys
}

// Loader resolves and parses the transitive closure of packages
// reachable from a set of entrypoint sources.
type Loader struct {
	Resolver resolve.Resolver
	Sources  *diag.Set
	Diags    *diag.List
	Log      zerolog.Logger

	lookupRequired  map[string]*ir.Package // nil value recorded as present-but-unresolved
	lookupVersioned map[string]*Unit
	revDep          map[string]map[string]bool
}

// Load walks the import graph starting from entry, a list of
// already-resolved root packages with their source contents.
func (l *Loader) Load(entry []resolve.Source) *Graph {
	l.lookupRequired = map[string]*ir.Package{}
	l.lookupVersioned = map[string]*Unit{}
	l.revDep = map[string]map[string]bool{}

	type queued struct {
		source     resolve.Source
		importedBy *ir.Package
	}

	var queue []queued
	for _, s := range entry {
		queue = append(queue, queued{source: s})
	}

	var units []*Unit

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		pkgKey := item.source.Package.String()
		if item.importedBy != nil {
			depKey := pkgKey
			fromKey := item.importedBy.String()
			if l.revDep[depKey] == nil {
				l.revDep[depKey] = map[string]bool{}
			}
			l.revDep[depKey][fromKey] = true
		}

		if _, seen := l.lookupVersioned[pkgKey]; seen {
			continue
		}

		l.Log.Debug().Str("package", pkgKey).Msg("loading package")

		file, uses, ok := l.parseOne(item.source)
		unit := &Unit{Package: item.source.Package}
		l.lookupVersioned[pkgKey] = unit
		units = append(units, unit)
		if !ok {
			continue
		}
		unit.Files = append(unit.Files, file)

		for _, use := range uses {
			req := Required{Parts: use.Parts, Version: use.Version}
			key := req.key()

			resolvedPkg, cached := l.lookupRequired[key]
			if !cached {
				sources, err := l.Resolver.Resolve(use.Parts, use.Version)
				if err != nil || len(sources) == 0 {
					l.lookupRequired[key] = nil
					l.Diags.Errorf(diag.Span{}, "package not found: %v %s", use.Parts, use.Version)
					continue
				}
				best := sources[0]
				pkg := best.Package
				l.lookupRequired[key] = &pkg
				queue = append(queue, queued{source: best, importedBy: &item.source.Package})
				continue
			}
			if resolvedPkg == nil {
				continue
			}
			// Already resolved to a concrete package, which is already
			// queued ahead of this entry or processed; queue it again so
			// this importer's reverse-dependency edge is recorded when it
			// is dequeued and skipped.
			queue = append(queue, queued{
				source:     resolve.Source{Package: *resolvedPkg},
				importedBy: &item.source.Package,
			})
		}
	}

	return &Graph{Units: units, RevDep: l.revDep}
}

func (l *Loader) parseOne(src resolve.Source) (*parsedFile, []Required, bool) {
	name := src.Path
	if name == "" {
		name = src.Package.String()
	}
	source := l.Sources.Add(name, src.Content, false)
	id := source.ID

	f, ok := parser.ParseFile(id, string(src.Content), l.Diags)
	if !ok {
		return nil, nil, false
	}

	var uses []Required
	for _, u := range f.Uses {
		req, err := resolve.ParseVersionRequirement(derefString(u.Value.Version))
		if err != nil {
			l.Diags.Errorf(u.Span, "%s", err)
			continue
		}
		uses = append(uses, Required{Parts: u.Value.Package.Parts, Version: req})
	}

	return &parsedFile{Source: id, Path: src.Path, AST: f, Uses: uses}, uses, true
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
