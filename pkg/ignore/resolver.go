package ignore

import (
	"path/filepath"
	"regexp"

	"github.com/arthur-debert/punkt/pkg/errors"
	"github.com/arthur-debert/punkt/pkg/logging"
	"github.com/arthur-debert/punkt/pkg/paths"
	"github.com/spf13/afero"
)

// Literal defaults for the filter expressions
const (
	DefaultInclude = `.*`
	DefaultExclude = `[^\s\S]`
)

// Internal lists the local tree's own files. They are matched verbatim
// against the local root only.
var Internal = []string{".git", paths.IgnoreFileName}

// Options holds the pattern sources for a Resolver
type Options struct {
	// Defaults is the platform default ignore set
	Defaults []string
	// IgnoreFile holds patterns already read from the ignore file
	IgnoreFile []string
	// Include and Exclude are regular expressions; empty selects the default
	Include string
	Exclude string
}

// Resolver combines every ignore source into one eligibility predicate.
type Resolver struct {
	mapper *paths.Mapper

	activeIgnored Matcher
	localIgnored  Matcher
	include       *regexp.Regexp
	exclude       *regexp.Regexp
}

// NewResolver compiles opts for the trees described by mapper.
func NewResolver(mapper *paths.Mapper, opts Options) (*Resolver, error) {
	logger := logging.GetLogger(logging.ComponentIgnore)

	include, err := CompileRegex(opts.Include, DefaultInclude)
	if err != nil {
		return nil, err
	}
	exclude, err := CompileRegex(opts.Exclude, DefaultExclude)
	if err != nil {
		return nil, err
	}

	globs := make([]string, 0, len(opts.Defaults)+len(opts.IgnoreFile))
	globs = append(globs, opts.Defaults...)
	globs = append(globs, opts.IgnoreFile...)

	activeIgnored, err := Compile(globs, mapper.ActiveRoot())
	if err != nil {
		return nil, err
	}

	localGlobs := make([]string, len(globs))
	for i, g := range globs {
		localGlobs[i] = mapper.ToLocalPattern(g)
	}
	localPatterns, err := Compile(localGlobs, mapper.LocalRoot())
	if err != nil {
		return nil, err
	}
	internal, err := Compile(Internal, mapper.LocalRoot())
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int("defaults", len(opts.Defaults)).
		Int("ignoreFile", len(opts.IgnoreFile)).
		Str("include", include.String()).
		Str("exclude", exclude.String()).
		Msg("Ignore resolver compiled")

	return &Resolver{
		mapper:        mapper,
		activeIgnored: activeIgnored,
		localIgnored:  Any(localPatterns, internal),
		include:       include,
		exclude:       exclude,
	}, nil
}

// Load reads the ignore file at path (empty selects the one at the local tree
// root) and builds a Resolver. Patterns already in opts.IgnoreFile are kept.
func Load(fs afero.Fs, mapper *paths.Mapper, path string, opts Options) (*Resolver, error) {
	if path == "" {
		path = IgnoreFilePath(mapper)
	}
	filePatterns, err := ParseIgnoreFile(fs, path)
	if err != nil {
		return nil, err
	}
	opts.IgnoreFile = append(append([]string{}, opts.IgnoreFile...), filePatterns...)
	return NewResolver(mapper, opts)
}

// IgnoreFilePath returns the location of the user ignore file
func IgnoreFilePath(mapper *paths.Mapper) string {
	return filepath.Join(mapper.LocalRoot(), paths.IgnoreFileName)
}

// Ignored reports whether path is matched by an ignore source of its own tree.
func (r *Resolver) Ignored(path string) bool {
	if r.mapper.IsLocal(path) {
		return r.localIgnored(path)
	}
	return r.activeIgnored(path)
}

// Eligible reports whether punkt should operate on path.
func (r *Resolver) Eligible(path string) bool {
	active := r.mapper.ToActive(path)
	return r.include.MatchString(active) &&
		!r.exclude.MatchString(active) &&
		!r.Ignored(path)
}

// Predicate returns Eligible as a Matcher
func (r *Resolver) Predicate() Matcher {
	return r.Eligible
}

// CompileRegex compiles expr, or fallback when expr is empty.
func CompileRegex(expr, fallback string) (*regexp.Regexp, error) {
	if expr == "" {
		expr = fallback
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid regular expression %q", expr).
			WithDetail("expression", expr)
	}
	return re, nil
}
