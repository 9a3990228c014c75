package sync

import (
	"github.com/arthur-debert/punkt/pkg/commands/internal/targets"
	"github.com/arthur-debert/punkt/pkg/core"
	"github.com/arthur-debert/punkt/pkg/filesystem"
	"github.com/arthur-debert/punkt/pkg/logging"
	"github.com/arthur-debert/punkt/pkg/tracker"
	"github.com/arthur-debert/punkt/pkg/transaction"
	"github.com/arthur-debert/punkt/pkg/tree"
)

// Options for Sync
type Options struct {
	// Paths are the targets; empty syncs everything already in the local tree
	Paths     []string
	Recursive bool
	Include   string
	Exclude   string
	DryRun    bool
}

// Result reports what Sync did. Paths are in active form.
type Result struct {
	Copied       []string `json:"copied" yaml:"copied"`
	CreatedDirs  []string `json:"createdDirs" yaml:"createdDirs"`
	Skipped      []string `json:"skipped" yaml:"skipped"`
	Warnings     []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Transactions int      `json:"transactions" yaml:"transactions"`
	DryRun       bool     `json:"dryRun" yaml:"dryRun"`
}

// Sync copies new and changed active files into the local tree and records
// them in the tracker. Files the tracker shows unchanged are skipped.
func Sync(ctx *core.Context, opts Options) (*Result, error) {
	log := logging.ForCommand("sync")
	log.Debug().Str("command", "Sync").Strs("paths", opts.Paths).Msg("Executing command")
	done := logging.LogOperationStart(log, "sync")
	defer done()

	if err := ctx.RequireInitialized(); err != nil {
		return nil, err
	}

	resolver, err := ctx.Resolver(opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}

	result := &Result{DryRun: opts.DryRun}
	warn := func(msg, path string) {
		log.Warn().Str("path", path).Msg(msg)
		result.Warnings = append(result.Warnings, msg+": "+path)
	}

	roots, err := syncRoots(ctx, opts.Paths, resolver.Eligible, warn)
	if err != nil {
		return nil, err
	}

	mapper := ctx.Mapper
	colliding := func(p string) bool {
		if mapper.Collides(p) {
			warn("skipping name that already starts with the dot prefix", p)
			return true
		}
		return false
	}
	expander := tree.NewExpander(ctx.Fs)
	entries, err := expander.Expand(roots, tree.Options{
		Recursive: opts.Recursive,
		Predicate: func(p string) bool {
			return !colliding(p) && resolver.Eligible(p)
		},
		// The local tree usually sits inside the active one
		Prune: func(p string) bool {
			return mapper.IsLocal(p) || colliding(p)
		},
	})
	if err != nil {
		return nil, err
	}

	txlog := transaction.New(ctx.Fs, mapper)
	txlog.DryRun = opts.DryRun

	copied := make(map[string]tracker.Entry)
	var refreshed []tracker.Record
	var newDirs []string

	for _, entry := range entries {
		local := mapper.ToLocal(entry.Path)

		if entry.IsDir {
			if !filesystem.IsDir(ctx.Fs, local) {
				txlog.Enqueue(transaction.Transaction{Kind: transaction.MakeDirectories, Path: local})
				result.CreatedDirs = append(result.CreatedDirs, entry.Path)
			}
			if _, tracked, err := ctx.Tracker.Get(entry.Path); err != nil {
				return nil, err
			} else if !tracked {
				newDirs = append(newDirs, entry.Path)
			}
			continue
		}

		decision, current, err := tracker.Decide(ctx.Fs, ctx.Tracker, entry.Path, local)
		if err != nil {
			return nil, err
		}
		log.Trace().Str("path", entry.Path).Str("decision", decision.String()).Msg("Decided")

		switch decision {
		case tracker.Copy:
			txlog.Enqueue(transaction.Transaction{Kind: transaction.CopyToLocal, Path: entry.Path})
			copied[entry.Path] = current
			result.Copied = append(result.Copied, entry.Path)
		case tracker.Refresh:
			refreshed = append(refreshed, tracker.Record{Path: entry.Path, Entry: current})
			result.Skipped = append(result.Skipped, entry.Path)
		default:
			result.Skipped = append(result.Skipped, entry.Path)
		}
	}

	report, commitErr := txlog.Commit()
	result.Transactions = len(report.Applied)
	if opts.DryRun {
		return result, commitErr
	}

	// Record what actually landed, even when the commit stopped early
	for _, tx := range report.Applied {
		if tx.Kind != transaction.CopyToLocal {
			continue
		}
		if err := ctx.Tracker.Put(tx.Path, copied[tx.Path]); err != nil {
			return nil, err
		}
	}
	if commitErr != nil {
		return nil, commitErr
	}

	for _, rec := range refreshed {
		if err := ctx.Tracker.Put(rec.Path, rec.Entry); err != nil {
			return nil, err
		}
	}
	for _, dir := range newDirs {
		if err := ctx.Tracker.Put(dir, tracker.DirEntry()); err != nil {
			return nil, err
		}
	}

	log.Info().
		Int("copied", len(result.Copied)).
		Int("dirs", len(result.CreatedDirs)).
		Int("skipped", len(result.Skipped)).
		Msg("Sync complete")
	return result, nil
}

// syncRoots returns the active roots to expand. Without explicit paths it
// uses the top-level entries of the local tree, skipping those whose active
// counterpart is gone.
func syncRoots(ctx *core.Context, args []string, eligible func(string) bool, warn func(string, string)) ([]string, error) {
	if len(args) > 0 {
		return targets.Active(ctx, args)
	}

	top, err := targets.TopLevel(ctx, eligible)
	if err != nil {
		return nil, err
	}

	roots := make([]string, 0, len(top))
	for _, local := range top {
		active := ctx.Mapper.ToActive(local)
		if !filesystem.Exists(ctx.Fs, active) {
			warn("active counterpart missing, not syncing", active)
			continue
		}
		roots = append(roots, active)
	}
	return roots, nil
}
