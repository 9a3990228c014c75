package initialize

import (
	"github.com/arthur-debert/punkt/pkg/core"
	"github.com/arthur-debert/punkt/pkg/errors"
	"github.com/arthur-debert/punkt/pkg/filesystem"
	"github.com/arthur-debert/punkt/pkg/logging"
	"github.com/spf13/afero"
)

// starterIgnore is written to a fresh local tree
const starterIgnore = `# punkt ignore file
#
# One glob pattern per line, written against the active tree (~).
# A pattern without "/" matches that name at any depth; one with "/" is
# anchored at the tree root. Ignoring a directory ignores its contents.
# Everything after an unescaped # is a comment; write \# for a literal #.
`

// Options for Init
type Options struct {
	DryRun bool
}

// Result reports what Init did
type Result struct {
	LocalRoot         string `json:"localRoot" yaml:"localRoot"`
	IgnoreFile        string `json:"ignoreFile" yaml:"ignoreFile"`
	CreatedRoot       bool   `json:"createdRoot" yaml:"createdRoot"`
	CreatedIgnoreFile bool   `json:"createdIgnoreFile" yaml:"createdIgnoreFile"`
	DryRun            bool   `json:"dryRun" yaml:"dryRun"`
}

// Created reports whether anything was created
func (r *Result) Created() bool {
	return r.CreatedRoot || r.CreatedIgnoreFile
}

// Init creates the local tree and a starter ignore file. Existing files are
// left alone, so running it again is harmless.
func Init(ctx *core.Context, opts Options) (*Result, error) {
	log := logging.ForCommand("init")
	log.Debug().Str("command", "Init").Bool("dryRun", opts.DryRun).Msg("Executing command")

	root := ctx.Mapper.LocalRoot()
	result := &Result{
		LocalRoot:  root,
		IgnoreFile: ctx.Config.IgnoreFile,
		DryRun:     opts.DryRun,
	}

	if filesystem.Exists(ctx.Fs, root) && !filesystem.IsDir(ctx.Fs, root) {
		return nil, errors.PathError(errors.ErrNotADirectory, root, nil)
	}

	if !filesystem.Exists(ctx.Fs, root) {
		result.CreatedRoot = true
		if !opts.DryRun {
			if err := ctx.Fs.MkdirAll(root, filesystem.DirPerm); err != nil {
				return nil, errors.FromOS(root, err)
			}
		}
	}

	if !filesystem.Exists(ctx.Fs, result.IgnoreFile) {
		result.CreatedIgnoreFile = true
		if !opts.DryRun {
			if err := afero.WriteFile(ctx.Fs, result.IgnoreFile, []byte(starterIgnore), 0644); err != nil {
				return nil, errors.FromOS(result.IgnoreFile, err)
			}
		}
	}

	log.Info().
		Str("localRoot", root).
		Bool("createdRoot", result.CreatedRoot).
		Bool("createdIgnoreFile", result.CreatedIgnoreFile).
		Msg("Local tree initialized")
	return result, nil
}
