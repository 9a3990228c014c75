// Package tree expands target paths into the concrete entries an operation
// works on.
package tree

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/punkt/pkg/errors"
	"github.com/arthur-debert/punkt/pkg/ignore"
	"github.com/arthur-debert/punkt/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Entry is one expanded path
type Entry struct {
	Path  string `json:"path" yaml:"path"`
	IsDir bool   `json:"isDir" yaml:"isDir"`
}

// Options control an expansion
type Options struct {
	// Recursive descends into every level; otherwise only immediate children
	Recursive bool
	// FilesOnly drops directories from the result (they are still walked)
	FilesOnly bool
	// Predicate filters every entry; nil accepts everything
	Predicate ignore.Matcher
	// Prune drops the directories it accepts along with their subtrees; nil
	// prunes nothing
	Prune ignore.Matcher
}

// Expander walks targets on a filesystem
type Expander struct {
	fs afero.Fs
}

// NewExpander creates an Expander over fs
func NewExpander(fs afero.Fs) *Expander {
	return &Expander{fs: fs}
}

// Expand returns the entries under roots accepted by opts.Predicate,
// deduplicated and sorted so that parents precede their children.
//
// A file root is included when the predicate accepts it. A directory root is
// included itself (unless FilesOnly) when accepted, followed by its children
// or all its descendants. The predicate is evaluated for each entry on its
// own: a rejected directory is still descended. Symlinks are followed; a
// dangling link below a root is skipped with a warning.
func (e *Expander) Expand(roots []string, opts Options) ([]Entry, error) {
	logger := logging.GetLogger(logging.ComponentTree)
	accept := opts.Predicate
	if accept == nil {
		accept = ignore.Always()
	}
	prune := opts.Prune
	if prune == nil {
		prune = ignore.Never()
	}

	seen := make(map[string]Entry)
	add := func(path string, isDir bool) {
		if isDir && opts.FilesOnly {
			return
		}
		if !accept(path) {
			return
		}
		seen[path] = Entry{Path: path, IsDir: isDir}
	}

	for _, root := range roots {
		root = filepath.Clean(root)
		info, err := e.fs.Stat(root)
		if err != nil {
			return nil, errors.FromOS(root, err)
		}
		if !info.IsDir() {
			add(root, false)
			continue
		}

		if prune(root) {
			continue
		}
		add(root, true)
		if err := e.walk(root, opts.Recursive, prune, add, logger); err != nil {
			return nil, err
		}
	}

	entries := make([]Entry, 0, len(seen))
	for _, entry := range seen {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})

	logger.Debug().
		Int("roots", len(roots)).
		Int("entries", len(entries)).
		Bool("recursive", opts.Recursive).
		Msg("Expanded targets")
	return entries, nil
}

func (e *Expander) walk(dir string, recursive bool, prune ignore.Matcher, add func(string, bool), logger zerolog.Logger) error {
	names, err := e.readDirNames(dir)
	if err != nil {
		return err
	}

	for _, name := range names {
		path := filepath.Join(dir, name)
		// Stat rather than Lstat: links are traversed as what they point at
		info, err := e.fs.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn().Str("path", path).Str("reason", e.missingReason(path)).Msg("Skipping unreadable entry")
			continue
		}
		if err != nil {
			return errors.FromOS(path, err)
		}

		if info.IsDir() && prune(path) {
			continue
		}
		add(path, info.IsDir())
		if !info.IsDir() || !recursive {
			continue
		}
		if err := e.walk(path, recursive, prune, add, logger); err != nil {
			return err
		}
	}
	return nil
}

// missingReason tells a dangling symlink from an entry removed mid-walk
func (e *Expander) missingReason(path string) string {
	lstater, ok := e.fs.(afero.Lstater)
	if !ok {
		return "vanished"
	}
	if info, _, err := lstater.LstatIfPossible(path); err == nil && info.Mode()&fs.ModeSymlink != 0 {
		return "dangling symlink"
	}
	return "vanished"
}

func (e *Expander) readDirNames(dir string) ([]string, error) {
	f, err := e.fs.Open(dir)
	if err != nil {
		return nil, errors.FromOS(dir, err)
	}
	defer func() { _ = f.Close() }()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, errors.FromOS(dir, err)
	}
	sort.Strings(names)
	return names, nil
}
