package list

import (
	"github.com/arthur-debert/punkt/pkg/commands/internal/targets"
	"github.com/arthur-debert/punkt/pkg/core"
	"github.com/arthur-debert/punkt/pkg/logging"
	"github.com/arthur-debert/punkt/pkg/tree"
)

// Options for List
type Options struct {
	// Paths in active or local form; empty lists the whole local tree
	Paths     []string
	Recursive bool
	Include   string
	Exclude   string
}

// Result holds the local entries in local form, sorted
type Result struct {
	Entries []tree.Entry `json:"entries" yaml:"entries"`
}

// List returns the eligible entries of the local tree.
func List(ctx *core.Context, opts Options) (*Result, error) {
	log := logging.ForCommand("list")
	log.Debug().Str("command", "List").Strs("paths", opts.Paths).Msg("Executing command")

	if err := ctx.RequireInitialized(); err != nil {
		return nil, err
	}

	resolver, err := ctx.Resolver(opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}

	root := ctx.Mapper.LocalRoot()
	roots := []string{root}
	if len(opts.Paths) > 0 {
		if roots, err = targets.Local(ctx, opts.Paths); err != nil {
			return nil, err
		}
	}

	entries, err := tree.NewExpander(ctx.Fs).Expand(roots, tree.Options{
		Recursive: opts.Recursive,
		Predicate: func(p string) bool {
			return p != root && resolver.Eligible(p)
		},
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Int("entries", len(entries)).Msg("List complete")
	return &Result{Entries: entries}, nil
}
