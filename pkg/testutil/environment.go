// pkg/testutil/environment.go
// DEPENDENCIES: afero MemMapFs, memory tracker
// PURPOSE: Build isolated punkt contexts for command tests

package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/punkt/pkg/config"
	"github.com/arthur-debert/punkt/pkg/core"
	"github.com/arthur-debert/punkt/pkg/filesystem"
	"github.com/arthur-debert/punkt/pkg/paths"
	"github.com/arthur-debert/punkt/pkg/tracker"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// Fixed roots of every test environment
const (
	ActiveRoot = "/home/u"
	LocalRoot  = "/home/u/.local/share/punkt"
)

// DefaultIgnores is the platform ignore set used on every OS in tests
var DefaultIgnores = []string{".DS_Store", "*.swp"}

// Env is an isolated punkt environment
type Env struct {
	Fs  afero.Fs
	Ctx *core.Context

	t *testing.T
}

// NewEnv creates an environment with nothing on disk. Call Init to create
// the local tree.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	cfg := &config.Config{
		ActiveRoot: ActiveRoot,
		LocalRoot:  LocalRoot,
		DotPrefix:  paths.DefaultDotPrefix,
		IgnoreFile: filepath.Join(LocalRoot, paths.IgnoreFileName),
		Tracker:    config.TrackerConfig{Backend: tracker.BackendMemory},
		Ignore: config.IgnoreConfig{
			Linux:   DefaultIgnores,
			Darwin:  DefaultIgnores,
			Windows: DefaultIgnores,
		},
	}

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(ActiveRoot, filesystem.DirPerm))

	ctx, err := core.NewWithTracker(fs, cfg, tracker.New(tracker.NewMemoryStore()))
	require.NoError(t, err)
	ctx.Cwd = ActiveRoot
	t.Cleanup(func() { _ = ctx.Close() })

	return &Env{Fs: fs, Ctx: ctx, t: t}
}

// Init creates the local tree root
func (e *Env) Init() *Env {
	e.t.Helper()
	require.NoError(e.t, e.Fs.MkdirAll(LocalRoot, filesystem.DirPerm))
	return e
}

// Active returns the absolute active path for rel
func (e *Env) Active(rel string) string {
	return filepath.Join(ActiveRoot, rel)
}

// Local returns the absolute local path for rel, given in local form
func (e *Env) Local(rel string) string {
	return filepath.Join(LocalRoot, rel)
}

// WriteActive writes content at rel under the active root and returns the path
func (e *Env) WriteActive(rel, content string) string {
	e.t.Helper()
	return e.write(e.Active(rel), content)
}

// WriteLocal writes content at rel under the local root and returns the path
func (e *Env) WriteLocal(rel, content string) string {
	e.t.Helper()
	return e.write(e.Local(rel), content)
}

// Mkdir creates an absolute directory
func (e *Env) Mkdir(path string) string {
	e.t.Helper()
	require.NoError(e.t, e.Fs.MkdirAll(path, filesystem.DirPerm))
	return path
}

// Read returns the content of an absolute path
func (e *Env) Read(path string) string {
	e.t.Helper()
	data, err := afero.ReadFile(e.Fs, path)
	require.NoError(e.t, err)
	return string(data)
}

// Exists reports whether an absolute path exists
func (e *Env) Exists(path string) bool {
	return filesystem.Exists(e.Fs, path)
}

// Touch sets both timestamps of path
func (e *Env) Touch(path string, at time.Time) {
	e.t.Helper()
	require.NoError(e.t, e.Fs.Chtimes(path, at, at))
}

func (e *Env) write(path, content string) string {
	require.NoError(e.t, afero.WriteFile(e.Fs, path, []byte(content), 0644))
	return path
}
