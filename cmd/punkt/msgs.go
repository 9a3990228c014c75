package punkt

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Mirror dotfiles into a version-controllable tree"
	MsgInitShort       = "Create the local tree"
	MsgSyncShort       = "Copy changed active files into the local tree"
	MsgActivateShort   = "Copy local files back into the active tree"
	MsgUnsyncShort     = "Stop mirroring paths"
	MsgDiffShort       = "Show where the trees differ"
	MsgListShort       = "List the local tree"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun    = "Preview changes without executing them"
	MsgFlagConfig    = "Config file (default $XDG_CONFIG_HOME/punkt/config.toml)"
	MsgFlagFormat    = "Output format: auto, text, term, json, yaml"
	MsgFlagPathStyle = "Path style: absolute, relative, local-absolute, local-relative"
	MsgFlagBackend   = "Tracker backend: badger, sqlite, memory"
	MsgFlagRecursive = "Descend into directories"
	MsgFlagInclude   = "Only operate on paths matching this regular expression"
	MsgFlagExclude   = "Skip paths matching this regular expression"
	MsgFlagDefaults  = "Print a commented template of every setting"

	// Error messages
	MsgErrNoCommand = "no command specified"
	MsgErrInclude   = "invalid --include"
	MsgErrExclude   = "invalid --exclude"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/sync-long.txt
	msgSyncLongRaw string
	MsgSyncLong    = strings.TrimSpace(msgSyncLongRaw)

	//go:embed msgs/sync-example.txt
	msgSyncExampleRaw string
	MsgSyncExample    = strings.TrimRight(msgSyncExampleRaw, "\n")

	//go:embed msgs/activate-long.txt
	msgActivateLongRaw string
	MsgActivateLong    = strings.TrimSpace(msgActivateLongRaw)

	//go:embed msgs/unsync-long.txt
	msgUnsyncLongRaw string
	MsgUnsyncLong    = strings.TrimSpace(msgUnsyncLongRaw)

	//go:embed msgs/diff-long.txt
	msgDiffLongRaw string
	MsgDiffLong    = strings.TrimSpace(msgDiffLongRaw)

	//go:embed msgs/list-long.txt
	msgListLongRaw string
	MsgListLong    = strings.TrimSpace(msgListLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
