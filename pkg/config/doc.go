// Package config loads punkt's configuration.
//
// Layers, lowest precedence first:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/punkt/config.toml or --config
//  3. PUNKT_* environment variables
//  4. command-line overrides
//
// After merging, empty roots are filled from the XDG defaults in pkg/paths
// and every path is expanded and made absolute.
package config
