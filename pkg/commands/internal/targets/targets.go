// Package targets resolves command-line paths into the roots an operation
// expands.
package targets

import (
	"path/filepath"
	"sort"

	"github.com/arthur-debert/punkt/pkg/core"
	"github.com/arthur-debert/punkt/pkg/errors"
	"github.com/arthur-debert/punkt/pkg/filesystem"
	"github.com/arthur-debert/punkt/pkg/ignore"
)

// Active resolves args to existing active paths. Paths outside the active
// tree or missing fail with ErrPathNotFound; colliding names fail with
// ErrInvalidInput.
func Active(ctx *core.Context, args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		p := ctx.Abs(arg)
		if !ctx.Mapper.IsActive(p) {
			return nil, errors.PathError(errors.ErrPathNotFound, p, nil).
				WithDetail("reason", "outside the active tree")
		}
		if !filesystem.Exists(ctx.Fs, p) {
			return nil, errors.PathError(errors.ErrPathNotFound, p, nil)
		}
		if ctx.Mapper.Collides(p) {
			return nil, errors.PathError(errors.ErrInvalidInput, p, nil).
				WithDetail("reason", "name already starts with the dot prefix "+ctx.Mapper.DotPrefix())
		}
		out = append(out, p)
	}
	return out, nil
}

// Local resolves args, given in active or local form, to existing local paths.
func Local(ctx *core.Context, args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		p, err := ToLocal(ctx, arg)
		if err != nil {
			return nil, err
		}
		if !filesystem.Exists(ctx.Fs, p) {
			return nil, errors.PathError(errors.ErrPathNotFound, p, nil)
		}
		out = append(out, p)
	}
	return out, nil
}

// ToLocal maps one argument to its local path without checking existence
func ToLocal(ctx *core.Context, arg string) (string, error) {
	p := ctx.Abs(arg)
	switch {
	case ctx.Mapper.IsLocal(p):
		return p, nil
	case ctx.Mapper.IsActive(p):
		if ctx.Mapper.Collides(p) {
			return "", errors.PathError(errors.ErrInvalidInput, p, nil).
				WithDetail("reason", "name already starts with the dot prefix "+ctx.Mapper.DotPrefix())
		}
		return ctx.Mapper.ToLocal(p), nil
	default:
		return "", errors.PathError(errors.ErrPathNotFound, p, nil).
			WithDetail("reason", "outside both trees")
	}
}

// TopLevel returns the immediate children of the local root accepted by
// eligible, sorted.
func TopLevel(ctx *core.Context, eligible ignore.Matcher) ([]string, error) {
	root := ctx.Mapper.LocalRoot()
	infos, err := readDir(ctx, root)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, name := range infos {
		p := filepath.Join(root, name)
		if eligible(p) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out, nil
}

func readDir(ctx *core.Context, dir string) ([]string, error) {
	f, err := ctx.Fs.Open(dir)
	if err != nil {
		return nil, errors.FromOS(dir, err)
	}
	defer func() { _ = f.Close() }()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, errors.FromOS(dir, err)
	}
	return names, nil
}
