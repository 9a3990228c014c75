package activate

import (
	"github.com/arthur-debert/punkt/pkg/commands/internal/targets"
	"github.com/arthur-debert/punkt/pkg/core"
	"github.com/arthur-debert/punkt/pkg/filesystem"
	"github.com/arthur-debert/punkt/pkg/logging"
	"github.com/arthur-debert/punkt/pkg/tracker"
	"github.com/arthur-debert/punkt/pkg/transaction"
	"github.com/arthur-debert/punkt/pkg/tree"
)

// Options for Activate
type Options struct {
	// Paths in active or local form; empty activates the whole local tree
	Paths     []string
	Recursive bool
	Include   string
	Exclude   string
	DryRun    bool
}

// Result reports what Activate did. Paths are in active form.
type Result struct {
	Copied       []string `json:"copied" yaml:"copied"`
	CreatedDirs  []string `json:"createdDirs" yaml:"createdDirs"`
	Unchanged    []string `json:"unchanged" yaml:"unchanged"`
	Transactions int      `json:"transactions" yaml:"transactions"`
	DryRun       bool     `json:"dryRun" yaml:"dryRun"`
}

// Activate copies local files into the active tree where the active copy is
// missing or differs. Activated files are tracked so the next sync skips them.
func Activate(ctx *core.Context, opts Options) (*Result, error) {
	log := logging.ForCommand("activate")
	log.Debug().Str("command", "Activate").Strs("paths", opts.Paths).Msg("Executing command")

	if err := ctx.RequireInitialized(); err != nil {
		return nil, err
	}

	resolver, err := ctx.Resolver(opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}

	roots := []string{ctx.Mapper.LocalRoot()}
	recursive := true
	if len(opts.Paths) > 0 {
		if roots, err = targets.Local(ctx, opts.Paths); err != nil {
			return nil, err
		}
		recursive = opts.Recursive
	}

	entries, err := tree.NewExpander(ctx.Fs).Expand(roots, tree.Options{
		Recursive: recursive,
		Predicate: resolver.Predicate(),
	})
	if err != nil {
		return nil, err
	}

	mapper := ctx.Mapper
	txlog := transaction.New(ctx.Fs, mapper)
	txlog.DryRun = opts.DryRun
	result := &Result{DryRun: opts.DryRun}

	for _, entry := range entries {
		active := mapper.ToActive(entry.Path)

		if entry.IsDir {
			if !filesystem.IsDir(ctx.Fs, active) {
				txlog.Enqueue(transaction.Transaction{Kind: transaction.MakeDirectories, Path: active})
				result.CreatedDirs = append(result.CreatedDirs, active)
			}
			continue
		}

		if filesystem.Exists(ctx.Fs, active) {
			same, err := filesystem.SameContent(ctx.Fs, entry.Path, active)
			if err != nil {
				return nil, err
			}
			if same {
				result.Unchanged = append(result.Unchanged, active)
				continue
			}
		}
		txlog.Enqueue(transaction.Transaction{Kind: transaction.CopyToActive, Path: entry.Path})
		result.Copied = append(result.Copied, active)
	}

	report, commitErr := txlog.Commit()
	result.Transactions = len(report.Applied)
	if opts.DryRun {
		return result, commitErr
	}

	for _, tx := range report.Applied {
		var target string
		switch tx.Kind {
		case transaction.CopyToActive:
			target = mapper.ToActive(tx.Path)
		case transaction.MakeDirectories:
			target = tx.Path
		default:
			continue
		}
		entry, err := tracker.Describe(ctx.Fs, target)
		if err != nil {
			return nil, err
		}
		if err := ctx.Tracker.Put(target, entry); err != nil {
			return nil, err
		}
	}
	if commitErr != nil {
		return nil, commitErr
	}

	log.Info().
		Int("copied", len(result.Copied)).
		Int("dirs", len(result.CreatedDirs)).
		Msg("Activate complete")
	return result, nil
}
