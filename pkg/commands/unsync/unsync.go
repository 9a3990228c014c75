package unsync

import (
	"github.com/arthur-debert/punkt/pkg/commands/internal/targets"
	"github.com/arthur-debert/punkt/pkg/core"
	"github.com/arthur-debert/punkt/pkg/errors"
	"github.com/arthur-debert/punkt/pkg/logging"
	"github.com/arthur-debert/punkt/pkg/transaction"
)

// Options for Unsync
type Options struct {
	// Paths in active or local form; at least one is required
	Paths  []string
	DryRun bool
}

// Result reports what Unsync did
type Result struct {
	// Removed lists the deleted local paths
	Removed []string `json:"removed" yaml:"removed"`
	// Untracked counts the tracker entries dropped
	Untracked int  `json:"untracked" yaml:"untracked"`
	DryRun    bool `json:"dryRun" yaml:"dryRun"`
}

// Unsync deletes the local copies of the given paths and forgets them in the
// tracker. The active files are not touched.
func Unsync(ctx *core.Context, opts Options) (*Result, error) {
	log := logging.ForCommand("unsync")
	log.Debug().Str("command", "Unsync").Strs("paths", opts.Paths).Msg("Executing command")

	if err := ctx.RequireInitialized(); err != nil {
		return nil, err
	}
	if len(opts.Paths) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "unsync needs at least one path")
	}

	locals, err := targets.Local(ctx, opts.Paths)
	if err != nil {
		return nil, err
	}

	txlog := transaction.New(ctx.Fs, ctx.Mapper)
	txlog.DryRun = opts.DryRun
	for _, local := range locals {
		if local == ctx.Mapper.LocalRoot() {
			return nil, errors.PathError(errors.ErrInvalidInput, local, nil).
				WithDetail("reason", "refusing to remove the local tree root")
		}
		txlog.Enqueue(transaction.Transaction{Kind: transaction.Delete, Path: local})
	}

	report, commitErr := txlog.Commit()
	result := &Result{DryRun: opts.DryRun}
	for _, tx := range report.Applied {
		result.Removed = append(result.Removed, tx.Path)
		if opts.DryRun {
			continue
		}
		n, err := ctx.Tracker.Remove(ctx.Mapper.ToActive(tx.Path))
		if err != nil {
			return nil, err
		}
		result.Untracked += n
	}
	if commitErr != nil {
		return nil, commitErr
	}

	log.Info().Int("removed", len(result.Removed)).Int("untracked", result.Untracked).Msg("Unsync complete")
	return result, nil
}
