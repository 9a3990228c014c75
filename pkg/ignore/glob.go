package ignore

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/punkt/pkg/errors"
	"github.com/gobwas/glob"
)

// Compile builds a matcher from glob patterns anchored at anchorRoot.
//
// A pattern containing "/" or "**" is anchored under anchorRoot as given;
// absolute patterns are used verbatim. A "**/" segment also matches zero
// directories, so "**/foo" matches anchorRoot/foo. Any other pattern matches a basename
// anywhere under anchorRoot, direct children included. A trailing "/" is
// dropped. The matcher also accepts every descendant of a matching path.
func Compile(patterns []string, anchorRoot string) (Matcher, error) {
	anchor := strings.TrimSuffix(filepath.ToSlash(filepath.Clean(anchorRoot)), "/")
	quoted := glob.QuoteMeta(anchor)

	var globs []glob.Glob
	for _, raw := range patterns {
		pattern := strings.TrimSuffix(strings.TrimSpace(filepath.ToSlash(raw)), "/")
		if pattern == "" {
			continue
		}

		var exprs []string
		switch {
		case strings.HasPrefix(pattern, "/"):
			exprs = zeroDepth(pattern)
		case strings.Contains(pattern, "/") || strings.Contains(pattern, "**"):
			for _, variant := range zeroDepth(pattern) {
				exprs = append(exprs, quoted+"/"+variant)
			}
		default:
			exprs = []string{quoted + "/" + pattern, quoted + "/**/" + pattern}
		}

		for _, expr := range exprs {
			g, err := glob.Compile(expr, '/')
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid ignore pattern %q", raw).
					WithDetail("pattern", raw)
			}
			globs = append(globs, g)
		}
	}

	if len(globs) == 0 {
		return Never(), nil
	}

	return func(path string) bool {
		candidate := filepath.ToSlash(filepath.Clean(path))
		for {
			for _, g := range globs {
				if g.Match(candidate) {
					return true
				}
			}
			parent := slashDir(candidate)
			if parent == candidate {
				return false
			}
			candidate = parent
		}
	}, nil
}

// zeroDepth expands every "**/" that starts a segment into the pattern with
// and without it.
func zeroDepth(pattern string) []string {
	i := -1
	for j := strings.Index(pattern, "**/"); j >= 0; {
		if j == 0 || pattern[j-1] == '/' {
			i = j
			break
		}
		next := strings.Index(pattern[j+1:], "**/")
		if next < 0 {
			break
		}
		j += next + 1
	}
	if i < 0 {
		return []string{pattern}
	}

	head, tails := pattern[:i], zeroDepth(pattern[i+3:])
	out := make([]string, 0, 2*len(tails))
	for _, tail := range tails {
		out = append(out, head+"**/"+tail, head+tail)
	}
	return out
}

func slashDir(p string) string {
	i := strings.LastIndex(p, "/")
	switch {
	case i < 0:
		return p
	case i == 0:
		return "/"
	default:
		return p[:i]
	}
}
