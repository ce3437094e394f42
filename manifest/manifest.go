// Package manifest decodes a project's `reproto.toml`-style manifest: the
// search paths, per-package version requirements, presets, and target
// language a build is configured with. It mirrors the shape of
// core/src/manifest.rs's FileManifest/Manifest split from the original
// reproto sources (the literal file contents versus the realized,
// base-path-resolved configuration), adapted to the teacher's own
// `cli/daemon/internal/manifest` package: a plain struct decoded by a
// library rather than hand-rolled field-by-field parsing.
//
// Reading a manifest file off disk and expanding presets into resolved
// search paths is a loader concern and stays out of this package's
// scope; Manifest is the decoded configuration shape the rest of the
// compiler consumes.
package manifest

import (
	"github.com/pelletier/go-toml/v2"
)

// Preset names a bundle of configuration that can be applied on top of a
// Manifest depending on the shape of the surrounding project (e.g. a
// Maven layout implying `src/main/reproto` is a search path). Presets
// are recorded here for the shape of the manifest; expanding one into
// concrete paths is a loader concern, out of scope for this package.
type Preset string

const (
	PresetMaven Preset = "maven"
)

// Manifest is the decoded project configuration: the packages a build
// should resolve against, where to look for them, and what language a
// generator run targets.
type Manifest struct {
	// Paths are additional search roots passed to a resolve.PathResolver,
	// relative to the manifest file's own directory until a loader
	// resolves them to absolute paths.
	Paths []string `toml:"paths"`

	// Packages maps a dotted package name to a version requirement
	// string (e.g. "^1.0"), parseable by resolve.ParseVersionRequirement.
	Packages map[string]string `toml:"packages"`

	// Presets names configuration bundles to apply on top of Paths.
	Presets []Preset `toml:"presets"`

	// Language is the target backend language for a generator run, or
	// empty if the manifest does not pin one.
	Language string `toml:"language"`
}

// Decode parses TOML manifest content into a Manifest.
func Decode(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Encode renders m back to TOML, e.g. for `reproto init`-style tooling
// to write a starter manifest.
func Encode(m *Manifest) ([]byte, error) {
	return toml.Marshal(m)
}
