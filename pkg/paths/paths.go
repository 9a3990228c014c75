package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/punkt/pkg/errors"
	"github.com/mitchellh/go-homedir"
)

// Environment variable names
const (
	// EnvActiveRoot overrides the active tree root
	EnvActiveRoot = "PUNKT_HOME"

	// EnvLocalRoot overrides the local tree root
	EnvLocalRoot = "PUNKT_LOCAL"

	// EnvTrackerPath overrides the tracker store location
	EnvTrackerPath = "PUNKT_TRACKER"

	// EnvConfigFile overrides the user config file location
	EnvConfigFile = "PUNKT_CONFIG"
)

// Fixed names
const (
	// AppDirName is the directory name punkt uses under each XDG base
	AppDirName = "punkt"

	// DefaultDotPrefix replaces a leading dot in the local tree
	DefaultDotPrefix = "punkt_"

	// IgnoreFileName is the user ignore file, kept at the local tree root
	IgnoreFileName = ".punktignore"

	// ConfigFileName is the user config file name
	ConfigFileName = "config.toml"

	// TrackerDirName is the tracker store name under the state directory
	TrackerDirName = "tracker"
)

// DefaultActiveRoot returns the active tree root: PUNKT_HOME or the home directory.
func DefaultActiveRoot() (string, error) {
	if root := os.Getenv(EnvActiveRoot); root != "" {
		return NormalizePath(root)
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to get home directory")
	}
	return filepath.Clean(home), nil
}

// DefaultLocalRoot returns the local tree root: PUNKT_LOCAL or $XDG_DATA_HOME/punkt.
func DefaultLocalRoot() (string, error) {
	if root := os.Getenv(EnvLocalRoot); root != "" {
		return NormalizePath(root)
	}
	return filepath.Join(xdg.DataHome, AppDirName), nil
}

// DefaultTrackerPath returns the tracker store path: PUNKT_TRACKER or $XDG_STATE_HOME/punkt/tracker.
func DefaultTrackerPath() (string, error) {
	if p := os.Getenv(EnvTrackerPath); p != "" {
		return NormalizePath(p)
	}
	return filepath.Join(xdg.StateHome, AppDirName, TrackerDirName), nil
}

// ConfigFilePath returns the user config file: PUNKT_CONFIG or $XDG_CONFIG_HOME/punkt/config.toml.
func ConfigFilePath() string {
	if p := os.Getenv(EnvConfigFile); p != "" {
		return ExpandHome(p)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName, ConfigFileName)
}

// ExpandHome expands a leading ~ to the home directory.
// Paths that cannot be expanded are returned unchanged.
func ExpandHome(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for %s", path)
	}

	return filepath.Clean(abs), nil
}
