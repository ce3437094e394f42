package resolve

import (
	flag "github.com/spf13/pflag"
)

// PathConfig is the flag-parseable root configuration for a
// PathResolver, the way tsbundler-encore's main.go binds its options
// directly onto a pflag.FlagSet. No CLI binary in this module parses
// these flags; the struct exists so a future command can register them
// without reinventing the PathResolver's configuration shape.
type PathConfig struct {
	Roots []string
}

// RegisterFlags binds PathConfig's fields onto fs, defaulting Roots to
// the current directory.
func (c *PathConfig) RegisterFlags(fs *flag.FlagSet) {
	fs.StringArrayVar(&c.Roots, "path", []string{"."}, "search root for .reproto packages (repeatable)")
}

// Resolver builds a PathResolver from the parsed configuration.
func (c *PathConfig) Resolver() *PathResolver {
	return &PathResolver{Roots: c.Roots}
}
