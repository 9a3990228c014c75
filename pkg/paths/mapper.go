package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/punkt/pkg/errors"
)

const sep = string(filepath.Separator)

// Mapper translates paths between the active tree and the local tree.
//
// The translation is lexical: it never touches the filesystem. For every
// path segment a leading "." in the active tree corresponds to a leading
// dot prefix in the local tree.
type Mapper struct {
	activeRoot string
	localRoot  string
	prefix     string
}

// NewMapper creates a Mapper. Both roots are normalized to clean absolute
// paths. The dot prefix must be non-empty, must not start with a dot and must
// not contain a path separator.
func NewMapper(activeRoot, localRoot, dotPrefix string) (*Mapper, error) {
	if dotPrefix == "" {
		return nil, errors.New(errors.ErrInvalidInput, "dot prefix must not be empty")
	}
	if strings.HasPrefix(dotPrefix, ".") || strings.ContainsAny(dotPrefix, `/\`) {
		return nil, errors.Newf(errors.ErrInvalidInput, "invalid dot prefix %q", dotPrefix)
	}

	active, err := NormalizePath(activeRoot)
	if err != nil {
		return nil, err
	}
	local, err := NormalizePath(localRoot)
	if err != nil {
		return nil, err
	}
	if active == local {
		return nil, errors.Newf(errors.ErrInvalidInput, "active and local roots are the same directory: %s", active)
	}

	return &Mapper{activeRoot: active, localRoot: local, prefix: dotPrefix}, nil
}

// ActiveRoot returns the active tree root
func (m *Mapper) ActiveRoot() string { return m.activeRoot }

// LocalRoot returns the local tree root
func (m *Mapper) LocalRoot() string { return m.localRoot }

// DotPrefix returns the dot replacement prefix
func (m *Mapper) DotPrefix() string { return m.prefix }

// ToLocal maps path into the local tree.
//
//   - already under the local root: unchanged
//   - relative: substituted, then rooted at the local root
//   - under the active root: the relative suffix is substituted and re-rooted
//   - anywhere else: substituted in place, not re-rooted
func (m *Mapper) ToLocal(path string) string {
	if !filepath.IsAbs(path) {
		return filepath.Join(m.localRoot, m.mapSegments(filepath.Clean(path), m.localSegment))
	}

	p := filepath.Clean(path)
	if within(p, m.localRoot) {
		return p
	}
	if within(p, m.activeRoot) {
		return m.reroot(p, m.activeRoot, m.localRoot, m.localSegment)
	}
	return m.mapSegments(p, m.localSegment)
}

// ToActive maps path into the active tree. It is the inverse of ToLocal.
func (m *Mapper) ToActive(path string) string {
	if !filepath.IsAbs(path) {
		return filepath.Join(m.activeRoot, m.mapSegments(filepath.Clean(path), m.activeSegment))
	}

	p := filepath.Clean(path)
	if within(p, m.localRoot) {
		return m.reroot(p, m.localRoot, m.activeRoot, m.activeSegment)
	}
	if within(p, m.activeRoot) {
		return p
	}
	return m.mapSegments(p, m.activeSegment)
}

// IsLocal reports whether path, made absolute, lies in the local tree.
func (m *Mapper) IsLocal(path string) bool {
	return within(absolute(path), m.localRoot)
}

// IsActive reports whether path, made absolute, lies in the active tree and
// not in the local tree (the local tree usually lives inside the active one).
func (m *Mapper) IsActive(path string) bool {
	p := absolute(path)
	return within(p, m.activeRoot) && !within(p, m.localRoot)
}

// Collides reports whether an active path has a segment that already starts
// with the dot prefix. Such a path cannot be mapped without losing
// information, so callers refuse it.
func (m *Mapper) Collides(activePath string) bool {
	p := filepath.Clean(activePath)
	if filepath.IsAbs(p) && within(p, m.activeRoot) {
		rel, err := filepath.Rel(m.activeRoot, p)
		if err != nil {
			return false
		}
		p = rel
	}
	for _, seg := range strings.Split(p, sep) {
		if strings.HasPrefix(seg, m.prefix) {
			return true
		}
	}
	return false
}

// RelActive returns path in active form relative to the active root.
func (m *Mapper) RelActive(path string) string {
	rel, err := filepath.Rel(m.activeRoot, m.ToActive(path))
	if err != nil {
		return m.ToActive(path)
	}
	return rel
}

// RelLocal returns path in local form relative to the local root.
func (m *Mapper) RelLocal(path string) string {
	rel, err := filepath.Rel(m.localRoot, m.ToLocal(path))
	if err != nil {
		return m.ToLocal(path)
	}
	return rel
}

// ToLocalPattern applies the segment substitution to a slash-separated glob
// pattern, so a pattern written for the active tree matches the local tree.
func (m *Mapper) ToLocalPattern(pattern string) string {
	segs := strings.Split(pattern, "/")
	for i, seg := range segs {
		segs[i] = m.localSegment(seg)
	}
	return strings.Join(segs, "/")
}

func (m *Mapper) reroot(p, from, to string, mapSeg func(string) string) string {
	rel, err := filepath.Rel(from, p)
	if err != nil || rel == "." {
		return to
	}
	return filepath.Join(to, m.mapSegments(rel, mapSeg))
}

func (m *Mapper) mapSegments(p string, mapSeg func(string) string) string {
	segs := strings.Split(p, sep)
	for i, seg := range segs {
		segs[i] = mapSeg(seg)
	}
	return strings.Join(segs, sep)
}

func (m *Mapper) localSegment(seg string) string {
	if seg == "." || seg == ".." || !strings.HasPrefix(seg, ".") {
		return seg
	}
	return m.prefix + seg[1:]
}

func (m *Mapper) activeSegment(seg string) string {
	// A segment that is exactly the prefix would become ".", which is not a name.
	if seg == m.prefix || !strings.HasPrefix(seg, m.prefix) {
		return seg
	}
	return "." + seg[len(m.prefix):]
}

// within reports whether p equals root or lies below it. Both must be clean.
func within(p, root string) bool {
	if p == root {
		return true
	}
	if strings.HasSuffix(root, sep) {
		return strings.HasPrefix(p, root)
	}
	return strings.HasPrefix(p, root+sep)
}

func absolute(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
