// Package resolve turns a package path plus an optional version
// requirement into the source files that satisfy it. It mirrors the
// resolver abstraction of reproto_repository/src/repository.rs,
// generalized to a small Resolver interface with Path, Map, and Chain
// implementations, and uses github.com/blang/semver for version range
// matching the way AlexanderEkdahl-rope's mvs package matches package
// versions during minimal version selection.
package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/blang/semver"
	"github.com/cockroachdb/errors"

	"github.com/reproto/reproto/internal/ir"
)

// Source is one candidate file satisfying a package lookup: its
// absolute package (with version resolved), its filesystem path, and
// its raw contents.
type Source struct {
	Package ir.Package
	Path    string
	Content []byte
}

// Resolver resolves a package path and optional version requirement to
// the set of source files that declare it. Multiple files may share a
// package (internal/merge reconciles them); multiple matching versions
// are filtered down by VersionRequirement.Matches before being
// returned, and Resolve itself always returns candidates sorted with
// the highest-matching version first.
type Resolver interface {
	Resolve(parts []string, req VersionRequirement) ([]Source, error)
}

// VersionRequirement is a parsed `@<requirement>` suffix from a use
// declaration. An empty requirement matches any version and prefers the
// highest one available.
type VersionRequirement struct {
	raw   string
	Range semver.Range
}

// ParseVersionRequirement parses the raw text following '@' in a use
// declaration. An empty string is a valid "no constraint" requirement. A
// caret requirement such as `^1.0` matches versions from 1.0.0 up to, but
// not including, the next major version (the next minor version when the
// major version is 0); anything else is parsed as a semver range.
func ParseVersionRequirement(raw string) (VersionRequirement, error) {
	if raw == "" {
		return VersionRequirement{}, nil
	}
	if strings.HasPrefix(raw, "^") {
		parts := strings.Split(strings.TrimPrefix(raw, "^"), ".")
		for len(parts) < 3 {
			parts = append(parts, "0")
		}
		lower, err := semver.Parse(strings.Join(parts, "."))
		if err != nil {
			return VersionRequirement{}, errors.Wrapf(err, "invalid version requirement %q", raw)
		}
		upper := semver.Version{Major: lower.Major + 1}
		if lower.Major == 0 {
			upper = semver.Version{Minor: lower.Minor + 1}
		}
		return VersionRequirement{raw: raw, Range: func(v semver.Version) bool { return v.GTE(lower) && v.LT(upper) }}, nil
	}
	rng, err := semver.ParseRange(raw)
	if err != nil {
		return VersionRequirement{}, errors.Wrapf(err, "invalid version requirement %q", raw)
	}
	return VersionRequirement{raw: raw, Range: rng}, nil
}

// Matches reports whether v satisfies the requirement. An unconstrained
// requirement matches every version, including the empty version.
func (r VersionRequirement) Matches(v semver.Version) bool {
	if r.Range == nil {
		return true
	}
	return r.Range(v)
}

func (r VersionRequirement) String() string {
	if r.raw == "" {
		return "*"
	}
	return r.raw
}

// PathResolver resolves packages against a list of root directories, the
// way reproto's repository resolves published packages against local
// checkouts: `<root>/<part>/.../<part>/<version>.reproto` or, absent a
// version directory, a bare `<part>/.../<part>.reproto`.
type PathResolver struct {
	Roots []string
}

func (p *PathResolver) Resolve(parts []string, req VersionRequirement) ([]Source, error) {
	var found []Source

	for _, root := range p.Roots {
		base := filepath.Join(append([]string{root}, parts...)...)

		if versions, err := os.ReadDir(base); err == nil {
			for _, entry := range versions {
				name := strings.TrimSuffix(entry.Name(), ".reproto")
				v, err := semver.Parse(name)
				if err != nil || !req.Matches(v) {
					continue
				}
				path := filepath.Join(base, entry.Name())
				content, err := os.ReadFile(path)
				if err != nil {
					return nil, errors.Wrapf(err, "reading %s", path)
				}
				found = append(found, Source{
					Package: ir.Package{Parts: parts, Version: v.String()},
					Path:    path,
					Content: content,
				})
			}
			continue
		}

		flat := base + ".reproto"
		content, err := os.ReadFile(flat)
		if err != nil {
			continue
		}
		found = append(found, Source{Package: ir.Package{Parts: parts}, Path: flat, Content: content})
	}

	sortBySemverDescending(found)
	return found, nil
}

func sortBySemverDescending(sources []Source) {
	sort.Slice(sources, func(i, j int) bool {
		vi, erri := semver.Parse(sources[i].Package.Version)
		vj, errj := semver.Parse(sources[j].Package.Version)
		if erri != nil || errj != nil {
			return sources[i].Package.Version > sources[j].Package.Version
		}
		return vi.GT(vj)
	})
}

// MapResolver resolves packages from an in-memory table, used in tests
// and by the language server to resolve unsaved buffers.
type MapResolver struct {
	Sources map[string][]Source // keyed by dotted package path
}

func (m *MapResolver) Resolve(parts []string, req VersionRequirement) ([]Source, error) {
	key := strings.Join(parts, ".")
	var matched []Source
	for _, s := range m.Sources[key] {
		if s.Package.Version == "" {
			matched = append(matched, s)
			continue
		}
		v, err := semver.Parse(s.Package.Version)
		if err != nil || !req.Matches(v) {
			continue
		}
		matched = append(matched, s)
	}
	sortBySemverDescending(matched)
	return matched, nil
}

// Chain tries each Resolver in order and returns the first non-empty
// result, the way reproto falls back from a local path resolver to a
// repository-backed one.
type Chain struct {
	Resolvers []Resolver
}

func (c *Chain) Resolve(parts []string, req VersionRequirement) ([]Source, error) {
	var lastErr error
	for _, r := range c.Resolvers {
		sources, err := r.Resolve(parts, req)
		if err != nil {
			lastErr = err
			continue
		}
		if len(sources) > 0 {
			return sources, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("package %s: not found", strings.Join(parts, "."))
}
