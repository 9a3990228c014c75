package ignore

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/arthur-debert/punkt/pkg/errors"
	"github.com/spf13/afero"
)

// ParseIgnore reads ignore-file patterns from r.
//
// Everything from the first unescaped '#' is a comment; "\#" stands for a
// literal '#'. Lines are trimmed and empty ones dropped. The result is
// deduplicated and sorted.
func ParseIgnore(r io.Reader) ([]string, error) {
	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(stripComment(scanner.Text()))
		if line == "" {
			continue
		}
		seen[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrIO, "failed to read ignore patterns")
	}

	patterns := make([]string, 0, len(seen))
	for p := range seen {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)
	return patterns, nil
}

// ParseIgnoreFile reads the ignore file at path. A missing file yields no
// patterns and no error.
func ParseIgnoreFile(fs afero.Fs, path string) ([]string, error) {
	f, err := fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.FromOS(path, err)
	}
	defer func() { _ = f.Close() }()

	patterns, err := ParseIgnore(f)
	if err != nil {
		return nil, errors.PathError(errors.ErrIO, path, err)
	}
	return patterns, nil
}

func stripComment(line string) string {
	var b strings.Builder
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '\\' && i+1 < len(line) && line[i+1] == '#' {
			b.WriteByte('#')
			i++
			continue
		}
		if c == '#' {
			break
		}
		b.WriteByte(c)
	}
	return b.String()
}
