package ui

import (
	"strings"

	"github.com/arthur-debert/punkt/pkg/errors"
	"github.com/arthur-debert/punkt/pkg/paths"
	"github.com/spf13/pflag"
)

var _ pflag.Value = (*PathStyle)(nil)

// PathStyle selects how result paths are printed. It never affects which
// paths an operation selects.
type PathStyle int

const (
	// PathAbsolute prints the absolute active path
	PathAbsolute PathStyle = iota
	// PathRelative prints the active path relative to the active root
	PathRelative
	// PathLocalAbsolute prints the absolute local path
	PathLocalAbsolute
	// PathLocalRelative prints the local path relative to the local root
	PathLocalRelative
)

var pathStyleNames = []string{"absolute", "relative", "local-absolute", "local-relative"}

func (s PathStyle) String() string {
	if s < 0 || int(s) >= len(pathStyleNames) {
		return "unknown"
	}
	return pathStyleNames[s]
}

// Set implements pflag.Value
func (s *PathStyle) Set(value string) error {
	parsed, err := ParsePathStyle(value)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Type implements pflag.Value
func (s *PathStyle) Type() string { return "style" }

// ParsePathStyle parses a path style name
func ParsePathStyle(value string) (PathStyle, error) {
	name := strings.ToLower(strings.TrimSpace(value))
	if name == "" {
		return PathAbsolute, nil
	}
	for i, n := range pathStyleNames {
		if n == name {
			return PathStyle(i), nil
		}
	}
	return PathAbsolute, errors.Newf(errors.ErrInvalidInput, "unknown path style %q (%s)",
		value, strings.Join(pathStyleNames, ", "))
}

// Render prints path, in either tree form, in the given style
func Render(mapper *paths.Mapper, style PathStyle, path string) string {
	switch style {
	case PathRelative:
		return mapper.RelActive(path)
	case PathLocalAbsolute:
		return mapper.ToLocal(path)
	case PathLocalRelative:
		return mapper.RelLocal(path)
	default:
		return mapper.ToActive(path)
	}
}

// PathRenderer returns Render bound to mapper and style
func PathRenderer(mapper *paths.Mapper, style PathStyle) func(string) string {
	return func(path string) string { return Render(mapper, style, path) }
}
