// TEST TYPE: Unit Tests
// DEPENDENCIES: afero MemMapFs, OsFs for symlinks
// PURPOSE: Verify target expansion, filtering and ordering

package tree

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/punkt/pkg/errors"
	"github.com/arthur-debert/punkt/pkg/ignore"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTree(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := []string{
		"/h/.bashrc",
		"/h/.config/git/config",
		"/h/.config/nvim/init.lua",
		"/h/.config/nvim/lua/plugins.lua",
		"/h/notes.txt",
	}
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fs, f, []byte(f), 0644))
	}
	return fs
}

func paths(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name  string
		roots []string
		opts  Options
		want  []string
	}{
		{
			name:  "file root",
			roots: []string{"/h/.bashrc"},
			opts:  Options{Recursive: true},
			want:  []string{"/h/.bashrc"},
		},
		{
			name:  "directory immediate children",
			roots: []string{"/h/.config"},
			want:  []string{"/h/.config", "/h/.config/git", "/h/.config/nvim"},
		},
		{
			name:  "directory recursive",
			roots: []string{"/h/.config/nvim"},
			opts:  Options{Recursive: true},
			want: []string{
				"/h/.config/nvim",
				"/h/.config/nvim/init.lua",
				"/h/.config/nvim/lua",
				"/h/.config/nvim/lua/plugins.lua",
			},
		},
		{
			name:  "files only",
			roots: []string{"/h/.config"},
			opts:  Options{Recursive: true, FilesOnly: true},
			want: []string{
				"/h/.config/git/config",
				"/h/.config/nvim/init.lua",
				"/h/.config/nvim/lua/plugins.lua",
			},
		},
		{
			name:  "overlapping roots deduplicated",
			roots: []string{"/h/.config", "/h/.config/nvim/init.lua", "/h/.config/"},
			want:  []string{"/h/.config", "/h/.config/git", "/h/.config/nvim", "/h/.config/nvim/init.lua"},
		},
		{
			name:  "predicate rejects directory but descent continues",
			roots: []string{"/h/.config"},
			opts: Options{
				Recursive: true,
				Predicate: func(p string) bool { return !strings.HasSuffix(p, "/nvim") },
			},
			want: []string{
				"/h/.config",
				"/h/.config/git",
				"/h/.config/git/config",
				"/h/.config/nvim/init.lua",
				"/h/.config/nvim/lua",
				"/h/.config/nvim/lua/plugins.lua",
			},
		},
		{
			name:  "prune drops subtree",
			roots: []string{"/h"},
			opts: Options{
				Recursive: true,
				Prune:     func(p string) bool { return p == "/h/.config" },
			},
			want: []string{"/h", "/h/.bashrc", "/h/notes.txt"},
		},
		{
			name:  "rejected file root",
			roots: []string{"/h/notes.txt"},
			opts:  Options{Predicate: ignore.Never()},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := setupTree(t)
			entries, err := NewExpander(fs).Expand(tt.roots, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, paths(entries))
		})
	}
}

func TestExpandMarksDirectories(t *testing.T) {
	fs := setupTree(t)
	entries, err := NewExpander(fs).Expand([]string{"/h/.config/git"}, Options{Recursive: true})
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Path: "/h/.config/git", IsDir: true}, entries[0])
	assert.Equal(t, Entry{Path: "/h/.config/git/config", IsDir: false}, entries[1])
}

func TestExpandMissingRoot(t *testing.T) {
	fs := setupTree(t)
	_, err := NewExpander(fs).Expand([]string{"/h/nope"}, Options{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathNotFound))
	assert.Equal(t, "/h/nope", errors.GetErrorPath(err))
}

func TestExpandMonotonicPredicate(t *testing.T) {
	fs := setupTree(t)
	lax := Options{Recursive: true, Predicate: func(p string) bool { return !strings.HasSuffix(p, ".lua") }}
	strict := Options{Recursive: true, Predicate: ignore.All(lax.Predicate, func(p string) bool {
		return !strings.Contains(p, "/git")
	})}

	laxEntries, err := NewExpander(fs).Expand([]string{"/h"}, lax)
	require.NoError(t, err)
	strictEntries, err := NewExpander(fs).Expand([]string{"/h"}, strict)
	require.NoError(t, err)

	assert.Subset(t, paths(laxEntries), paths(strictEntries))
	assert.Less(t, len(strictEntries), len(laxEntries))
}

func TestExpandFollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "real"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "real", "f"), []byte("x"), 0644))
	require.NoError(t, os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "link")))

	entries, err := NewExpander(afero.NewOsFs()).Expand([]string{dir}, Options{Recursive: true})
	require.NoError(t, err)

	assert.Contains(t, entries, Entry{Path: filepath.Join(dir, "link"), IsDir: true})
	assert.Contains(t, entries, Entry{Path: filepath.Join(dir, "link", "f"), IsDir: false})
}

func TestExpandSkipsDanglingSymlinks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), []byte("x"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "dangling")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "sub", "dangling")))

	tests := []struct {
		name      string
		recursive bool
		expected  []string
	}{
		{
			name:      "top level",
			recursive: false,
			expected:  []string{dir, filepath.Join(dir, "a"), filepath.Join(dir, "sub")},
		},
		{
			name:      "recursive",
			recursive: true,
			expected:  []string{dir, filepath.Join(dir, "a"), filepath.Join(dir, "sub")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := NewExpander(afero.NewOsFs()).Expand([]string{dir}, Options{Recursive: tt.recursive})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, paths(entries))
		})
	}
}

func TestExpandDanglingRootFails(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "dangling")
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), link))

	_, err := NewExpander(afero.NewOsFs()).Expand([]string{link}, Options{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathNotFound))
}
