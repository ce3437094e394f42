package manifest

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestDecodeManifest(t *testing.T) {
	c := qt.New(t)

	data := []byte(`
language = "go"
paths = ["vendor/reproto", "src/main/reproto"]
presets = ["maven"]

[packages]
"foo.bar" = "^1.0"
`)

	m, err := Decode(data)
	c.Assert(err, qt.IsNil)
	c.Assert(m.Language, qt.Equals, "go")
	c.Assert(m.Paths, qt.DeepEquals, []string{"vendor/reproto", "src/main/reproto"})
	c.Assert(m.Presets, qt.DeepEquals, []Preset{PresetMaven})
	c.Assert(m.Packages["foo.bar"], qt.Equals, "^1.0")
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := qt.New(t)

	in := &Manifest{
		Paths:    []string{"a", "b"},
		Packages: map[string]string{"x.y": "^2.0"},
		Presets:  []Preset{PresetMaven},
		Language: "rust",
	}

	data, err := Encode(in)
	c.Assert(err, qt.IsNil)

	out, err := Decode(data)
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.DeepEquals, in)
}
