package config

import (
	"runtime"

	"github.com/arthur-debert/punkt/pkg/tracker"
)

// Config is the merged configuration
type Config struct {
	ActiveRoot string        `koanf:"active_root" toml:"active_root"`
	LocalRoot  string        `koanf:"local_root" toml:"local_root"`
	DotPrefix  string        `koanf:"dot_prefix" toml:"dot_prefix"`
	IgnoreFile string        `koanf:"ignore_file" toml:"ignore_file"`
	Tracker    TrackerConfig `koanf:"tracker" toml:"tracker"`
	Ignore     IgnoreConfig  `koanf:"ignore" toml:"ignore"`
}

// TrackerConfig selects and locates the tracker store
type TrackerConfig struct {
	Path    string          `koanf:"path" toml:"path"`
	Backend tracker.Backend `koanf:"backend" toml:"backend"`
}

// IgnoreConfig holds the platform default ignore sets
type IgnoreConfig struct {
	Linux   []string `koanf:"linux" toml:"linux"`
	Darwin  []string `koanf:"darwin" toml:"darwin"`
	Windows []string `koanf:"windows" toml:"windows"`
}

// DefaultIgnores returns the default ignore set for the running OS
func (c *Config) DefaultIgnores() []string {
	return c.Ignore.For(runtime.GOOS)
}

// For returns the ignore set for goos. Unknown systems get the linux set.
func (i IgnoreConfig) For(goos string) []string {
	switch goos {
	case "darwin":
		return i.Darwin
	case "windows":
		return i.Windows
	default:
		return i.Linux
	}
}
