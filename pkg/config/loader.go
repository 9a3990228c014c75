package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/arthur-debert/punkt/pkg/errors"
	"github.com/arthur-debert/punkt/pkg/logging"
	"github.com/arthur-debert/punkt/pkg/paths"
	"github.com/arthur-debert/punkt/pkg/tracker"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envKeys maps environment variables to config keys
var envKeys = map[string]string{
	paths.EnvActiveRoot:     "active_root",
	paths.EnvLocalRoot:      "local_root",
	paths.EnvTrackerPath:    "tracker.path",
	"PUNKT_DOT_PREFIX":      "dot_prefix",
	"PUNKT_IGNORE_FILE":     "ignore_file",
	"PUNKT_TRACKER_BACKEND": "tracker.backend",
}

// Options control Load
type Options struct {
	// ConfigFile is an explicit config file; it must exist. Empty selects
	// the XDG location, which may be absent.
	ConfigFile string
	// Overrides are flat dotted keys applied last, e.g. "tracker.backend"
	Overrides map[string]interface{}
}

// Load merges every configuration layer into a Config
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger(logging.ComponentConfig)
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User file
	path, required := opts.ConfigFile, opts.ConfigFile != ""
	if !required {
		path = paths.ConfigFilePath()
	}
	path = paths.ExpandHome(path)
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded user config")
	} else if required {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", path).
			WithDetail("path", path)
	}

	// 3. Environment, empty variables are ignored
	err := k.Load(env.ProviderWithValue("PUNKT_", ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return envKeys[key], value
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				stringToBackendHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	if err := postProcess(&cfg); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("activeRoot", cfg.ActiveRoot).
		Str("localRoot", cfg.LocalRoot).
		Str("backend", string(cfg.Tracker.Backend)).
		Msg("Configuration loaded")
	return &cfg, nil
}

// postProcess fills empty locations from the XDG defaults and normalizes paths
func postProcess(cfg *Config) error {
	var err error
	if cfg.ActiveRoot, err = orDefault(cfg.ActiveRoot, paths.DefaultActiveRoot); err != nil {
		return err
	}
	if cfg.LocalRoot, err = orDefault(cfg.LocalRoot, paths.DefaultLocalRoot); err != nil {
		return err
	}
	if cfg.Tracker.Path, err = orDefault(cfg.Tracker.Path, paths.DefaultTrackerPath); err != nil {
		return err
	}
	if cfg.IgnoreFile, err = orDefault(cfg.IgnoreFile, func() (string, error) {
		return filepath.Join(cfg.LocalRoot, paths.IgnoreFileName), nil
	}); err != nil {
		return err
	}

	if cfg.DotPrefix == "" {
		return errors.New(errors.ErrConfigLoad, "dot_prefix must not be empty")
	}
	if cfg.Tracker.Backend, err = tracker.ParseBackend(string(cfg.Tracker.Backend)); err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "invalid tracker.backend")
	}
	return nil
}

func orDefault(value string, fallback func() (string, error)) (string, error) {
	if strings.TrimSpace(value) == "" {
		v, err := fallback()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrConfigLoad, "failed to resolve default location")
		}
		return v, nil
	}
	v, err := paths.NormalizePath(value)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigLoad, "invalid path %q", value)
	}
	return v, nil
}

// stringToBackendHookFunc lowercases backend names while decoding
func stringToBackendHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(tracker.Backend("")) {
			return data, nil
		}
		return tracker.Backend(strings.ToLower(strings.TrimSpace(data.(string)))), nil
	}
}
