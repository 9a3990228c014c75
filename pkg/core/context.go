package core

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/punkt/pkg/config"
	"github.com/arthur-debert/punkt/pkg/errors"
	"github.com/arthur-debert/punkt/pkg/filesystem"
	"github.com/arthur-debert/punkt/pkg/ignore"
	"github.com/arthur-debert/punkt/pkg/logging"
	"github.com/arthur-debert/punkt/pkg/paths"
	"github.com/arthur-debert/punkt/pkg/tracker"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Context is the environment of one punkt invocation
type Context struct {
	Fs      afero.Fs
	Mapper  *paths.Mapper
	Config  *config.Config
	Tracker *tracker.Tracker
	Logger  zerolog.Logger

	// Cwd anchors relative command-line paths
	Cwd string
}

// New builds a Context for cfg over fs and opens the configured tracker.
func New(fs afero.Fs, cfg *config.Config) (*Context, error) {
	tr, err := tracker.Open(cfg.Tracker.Backend, cfg.Tracker.Path)
	if err != nil {
		return nil, err
	}
	ctx, err := NewWithTracker(fs, cfg, tr)
	if err != nil {
		_ = tr.Close()
		return nil, err
	}
	return ctx, nil
}

// NewWithTracker builds a Context around an already open tracker
func NewWithTracker(fs afero.Fs, cfg *config.Config, tr *tracker.Tracker) (*Context, error) {
	mapper, err := paths.NewMapper(cfg.ActiveRoot, cfg.LocalRoot, cfg.DotPrefix)
	if err != nil {
		return nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = cfg.ActiveRoot
	}

	return &Context{
		Fs:      fs,
		Mapper:  mapper,
		Config:  cfg,
		Tracker: tr,
		Logger:  logging.GetLogger(logging.ComponentCore),
		Cwd:     cwd,
	}, nil
}

// Close releases the tracker. It is safe to call more than once.
func (c *Context) Close() error {
	if c.Tracker == nil {
		return nil
	}
	return c.Tracker.Close()
}

// RequireInitialized fails with ErrNotInitialized unless the local tree exists
func (c *Context) RequireInitialized() error {
	root := c.Mapper.LocalRoot()
	if !filesystem.IsDir(c.Fs, root) {
		return errors.PathError(errors.ErrNotInitialized, root, nil).
			WithDetail("hint", "run punkt init")
	}
	return nil
}

// Resolver builds the ignore resolver for this context with the given filters
func (c *Context) Resolver(include, exclude string) (*ignore.Resolver, error) {
	return ignore.Load(c.Fs, c.Mapper, c.Config.IgnoreFile, ignore.Options{
		Defaults: c.Config.DefaultIgnores(),
		Include:  include,
		Exclude:  exclude,
	})
}

// Abs resolves a command-line path. A leading ~ stands for the active root;
// other relative paths are resolved against Cwd.
func (c *Context) Abs(path string) string {
	switch {
	case path == "~":
		return c.Mapper.ActiveRoot()
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(c.Mapper.ActiveRoot(), path[2:])
	case filepath.IsAbs(path):
		return filepath.Clean(path)
	default:
		return filepath.Join(c.Cwd, path)
	}
}
