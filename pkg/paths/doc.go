// Package paths provides centralized path handling for punkt.
//
// Two concerns live here:
//
//   - The Mapper, a pure bidirectional translation between the active tree
//     (where dotfiles are used, typically $HOME) and the local tree (the
//     version-controlled mirror). Every path segment that starts with a dot
//     in the active tree starts with the dot prefix ("punkt_" by default) in
//     the local tree, so the mirror holds no hidden files.
//   - Default locations for the local tree, the tracker store, the config
//     file and the log file, following the XDG Base Directory specification.
//
// # Environment Variables
//
//   - PUNKT_HOME: active tree root (default: $HOME)
//   - PUNKT_LOCAL: local tree root (default: $XDG_DATA_HOME/punkt)
//   - PUNKT_TRACKER: tracker store path (default: $XDG_STATE_HOME/punkt/tracker)
//   - PUNKT_CONFIG: config file (default: $XDG_CONFIG_HOME/punkt/config.toml)
//
// # Usage
//
//	m, err := paths.NewMapper("/home/u", "/home/u/.local/share/punkt", "punkt_")
//	if err != nil {
//	    return err
//	}
//	m.ToLocal("/home/u/.config/nvim/init.lua")
//	// /home/u/.local/share/punkt/punkt_config/nvim/init.lua
//	m.ToActive("/home/u/.local/share/punkt/punkt_bashrc")
//	// /home/u/.bashrc
package paths
