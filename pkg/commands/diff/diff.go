package diff

import (
	"sort"

	"github.com/arthur-debert/punkt/pkg/commands/internal/targets"
	"github.com/arthur-debert/punkt/pkg/core"
	"github.com/arthur-debert/punkt/pkg/errors"
	"github.com/arthur-debert/punkt/pkg/filesystem"
	"github.com/arthur-debert/punkt/pkg/ignore"
	"github.com/arthur-debert/punkt/pkg/logging"
	"github.com/arthur-debert/punkt/pkg/tree"
)

// Status classifies a difference between the trees
type Status string

const (
	// Modified means both copies exist with different content
	Modified Status = "modified"
	// MissingLocal means only the active copy exists
	MissingLocal Status = "missing-local"
	// MissingActive means only the local copy exists
	MissingActive Status = "missing-active"
)

// Change is one differing file, in active form
type Change struct {
	Path   string `json:"path" yaml:"path"`
	Status Status `json:"status" yaml:"status"`
}

// Options for Diff
type Options struct {
	// Paths in active or local form; empty compares the whole local tree
	Paths     []string
	Recursive bool
	Include   string
	Exclude   string
}

// Result lists the differences sorted by path
type Result struct {
	Changes []Change `json:"changes" yaml:"changes"`
}

// Diff compares the active and local copies of the targets. Identical files
// are not reported. Files that exist only in the active tree are reported
// for explicit targets only.
func Diff(ctx *core.Context, opts Options) (*Result, error) {
	log := logging.ForCommand("diff")
	log.Debug().Str("command", "Diff").Strs("paths", opts.Paths).Msg("Executing command")

	if err := ctx.RequireInitialized(); err != nil {
		return nil, err
	}

	resolver, err := ctx.Resolver(opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}

	mapper := ctx.Mapper
	var activeRoots, localRoots []string
	recursive := true
	if len(opts.Paths) == 0 {
		localRoots = []string{mapper.LocalRoot()}
	} else {
		recursive = opts.Recursive
		for _, arg := range opts.Paths {
			local, err := targets.ToLocal(ctx, arg)
			if err != nil {
				return nil, err
			}
			active := mapper.ToActive(local)
			activeExists := filesystem.Exists(ctx.Fs, active)
			localExists := filesystem.Exists(ctx.Fs, local)
			if !activeExists && !localExists {
				return nil, errors.PathError(errors.ErrPathNotFound, active, nil)
			}
			if activeExists {
				activeRoots = append(activeRoots, active)
			}
			if localExists {
				localRoots = append(localRoots, local)
			}
		}
	}

	expander := tree.NewExpander(ctx.Fs)
	skipActive := ignore.Any(mapper.IsLocal, mapper.Collides)
	activeFiles, err := expander.Expand(activeRoots, tree.Options{
		Recursive: recursive,
		FilesOnly: true,
		Predicate: ignore.All(ignore.Not(skipActive), resolver.Predicate()),
		Prune:     skipActive,
	})
	if err != nil {
		return nil, err
	}
	localFiles, err := expander.Expand(localRoots, tree.Options{
		Recursive: recursive,
		FilesOnly: true,
		Predicate: resolver.Predicate(),
	})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(activeFiles)+len(localFiles))
	result := &Result{Changes: []Change{}}
	for _, entry := range activeFiles {
		seen[entry.Path] = true
		local := mapper.ToLocal(entry.Path)
		if !filesystem.Exists(ctx.Fs, local) {
			result.Changes = append(result.Changes, Change{Path: entry.Path, Status: MissingLocal})
			continue
		}
		same, err := filesystem.SameContent(ctx.Fs, entry.Path, local)
		if err != nil {
			return nil, err
		}
		if !same {
			result.Changes = append(result.Changes, Change{Path: entry.Path, Status: Modified})
		}
	}
	for _, entry := range localFiles {
		active := mapper.ToActive(entry.Path)
		if seen[active] {
			continue
		}
		if !filesystem.Exists(ctx.Fs, active) {
			result.Changes = append(result.Changes, Change{Path: active, Status: MissingActive})
			continue
		}
		same, err := filesystem.SameContent(ctx.Fs, entry.Path, active)
		if err != nil {
			return nil, err
		}
		if !same {
			result.Changes = append(result.Changes, Change{Path: active, Status: Modified})
		}
	}

	sort.Slice(result.Changes, func(i, j int) bool {
		return result.Changes[i].Path < result.Changes[j].Path
	})
	log.Info().Int("changes", len(result.Changes)).Msg("Diff complete")
	return result, nil
}
