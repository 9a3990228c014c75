package punkt

import (
	"fmt"
	"io"

	"github.com/arthur-debert/punkt/internal/version"
	"github.com/arthur-debert/punkt/pkg/commands/activate"
	"github.com/arthur-debert/punkt/pkg/commands/diff"
	"github.com/arthur-debert/punkt/pkg/commands/initialize"
	"github.com/arthur-debert/punkt/pkg/commands/list"
	synccmd "github.com/arthur-debert/punkt/pkg/commands/sync"
	"github.com/arthur-debert/punkt/pkg/commands/unsync"
	"github.com/arthur-debert/punkt/pkg/config"
	"github.com/arthur-debert/punkt/pkg/core"
	"github.com/arthur-debert/punkt/pkg/errors"
	"github.com/arthur-debert/punkt/pkg/ignore"
	"github.com/arthur-debert/punkt/pkg/logging"
	"github.com/arthur-debert/punkt/pkg/tracker"
	"github.com/arthur-debert/punkt/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags
type globalOptions struct {
	verbosity  int
	dryRun     bool
	configFile string
	format     ui.Format
	pathStyle  ui.PathStyle
	backend    string

	// fs is the filesystem commands run on
	fs afero.Fs
}

// filterOptions holds the flags shared by the tree-walking commands
type filterOptions struct {
	recursive bool
	include   string
	exclude   string
}

func (f *filterOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.recursive, "recursive", "r", true, MsgFlagRecursive)
	cmd.Flags().StringVarP(&f.include, "include", "i", "", MsgFlagInclude)
	cmd.Flags().StringVarP(&f.exclude, "exclude", "e", "", MsgFlagExclude)
}

// validate compiles both expressions so bad input fails before any work
func (f *filterOptions) validate() error {
	if _, err := ignore.CompileRegex(f.include, ignore.DefaultInclude); err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, MsgErrInclude)
	}
	if _, err := ignore.CompileRegex(f.exclude, ignore.DefaultExclude); err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, MsgErrExclude)
	}
	return nil
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(afero.NewOsFs())
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	g := &globalOptions{fs: fs}

	rootCmd := &cobra.Command{
		Use:     "punkt",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(g.verbosity)
			logging.LogCommand(cmd.Name(), args, g.dryRun)
			if g.backend != "" {
				if _, err := tracker.ParseBackend(g.backend); err != nil {
					return err
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)
	pf.StringVar(&g.configFile, "config", "", MsgFlagConfig)
	pf.Var(&g.format, "format", MsgFlagFormat)
	pf.Var(&g.pathStyle, "path-style", MsgFlagPathStyle)
	pf.StringVar(&g.backend, "tracker-backend", "", MsgFlagBackend)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newInitCmd(g))
	rootCmd.AddCommand(newSyncCmd(g))
	rootCmd.AddCommand(newActivateCmd(g))
	rootCmd.AddCommand(newUnsyncCmd(g))
	rootCmd.AddCommand(newDiffCmd(g))
	rootCmd.AddCommand(newListCmd(g))
	rootCmd.AddCommand(newConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	initTopics(rootCmd)

	return rootCmd
}

// loadConfig merges the configuration layers with the flag overrides
func (g *globalOptions) loadConfig() (*config.Config, error) {
	overrides := make(map[string]interface{})
	if g.backend != "" {
		overrides["tracker.backend"] = g.backend
	}
	return config.Load(config.Options{ConfigFile: g.configFile, Overrides: overrides})
}

// run opens a context, runs op and renders its result. The tracker is
// closed exactly once whatever op returns.
func (g *globalOptions) run(cmd *cobra.Command, op func(ctx *core.Context) (interface{}, error)) (err error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	ctx, err := core.New(g.fs, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := ctx.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	result, err := op(ctx)
	if err != nil {
		return err
	}

	renderer, err := g.renderer(cmd.OutOrStdout(), ctx)
	if err != nil {
		return err
	}
	return renderer.RenderResult(result)
}

func (g *globalOptions) renderer(w io.Writer, ctx *core.Context) (ui.Renderer, error) {
	return ui.NewRenderer(g.format, w, ui.PathRenderer(ctx.Mapper, g.pathStyle))
}

func newInitCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.run(cmd, func(ctx *core.Context) (interface{}, error) {
				return initialize.Init(ctx, initialize.Options{DryRun: g.dryRun})
			})
		},
	}
}

func newSyncCmd(g *globalOptions) *cobra.Command {
	var f filterOptions
	cmd := &cobra.Command{
		Use:     "sync [paths...]",
		Short:   MsgSyncShort,
		Long:    MsgSyncLong,
		Example: MsgSyncExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.validate(); err != nil {
				return err
			}
			return g.run(cmd, func(ctx *core.Context) (interface{}, error) {
				return synccmd.Sync(ctx, synccmd.Options{
					Paths:     args,
					Recursive: f.recursive,
					Include:   f.include,
					Exclude:   f.exclude,
					DryRun:    g.dryRun,
				})
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newActivateCmd(g *globalOptions) *cobra.Command {
	var f filterOptions
	cmd := &cobra.Command{
		Use:     "activate [paths...]",
		Short:   MsgActivateShort,
		Long:    MsgActivateLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.validate(); err != nil {
				return err
			}
			return g.run(cmd, func(ctx *core.Context) (interface{}, error) {
				return activate.Activate(ctx, activate.Options{
					Paths:     args,
					Recursive: f.recursive,
					Include:   f.include,
					Exclude:   f.exclude,
					DryRun:    g.dryRun,
				})
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newUnsyncCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "unsync <paths...>",
		Short:   MsgUnsyncShort,
		Long:    MsgUnsyncLong,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.run(cmd, func(ctx *core.Context) (interface{}, error) {
				return unsync.Unsync(ctx, unsync.Options{Paths: args, DryRun: g.dryRun})
			})
		},
	}
}

func newDiffCmd(g *globalOptions) *cobra.Command {
	var f filterOptions
	cmd := &cobra.Command{
		Use:     "diff [paths...]",
		Short:   MsgDiffShort,
		Long:    MsgDiffLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.validate(); err != nil {
				return err
			}
			return g.run(cmd, func(ctx *core.Context) (interface{}, error) {
				return diff.Diff(ctx, diff.Options{
					Paths:     args,
					Recursive: f.recursive,
					Include:   f.include,
					Exclude:   f.exclude,
				})
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newListCmd(g *globalOptions) *cobra.Command {
	var f filterOptions
	cmd := &cobra.Command{
		Use:     "list [paths...]",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		Long:    MsgListLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.validate(); err != nil {
				return err
			}
			return g.run(cmd, func(ctx *core.Context) (interface{}, error) {
				return list.List(ctx, list.Options{
					Paths:     args,
					Recursive: f.recursive,
					Include:   f.include,
					Exclude:   f.exclude,
				})
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newConfigCmd(g *globalOptions) *cobra.Command {
	var defaults bool
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), config.GenerateConfigContent())
				return err
			}
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			data, err := config.Dump(cfg)
			if err != nil {
				return err
			}
			log.Debug().Int("bytes", len(data)).Msg("Dumped configuration")
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), version.Info())
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return GenCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

// GenCompletion writes the completion script for shell
func GenCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown shell %q (bash, zsh, fish, powershell)", shell)
	}
}

// ReportError prints err on w in the error style
func ReportError(w io.Writer, err error) {
	renderer, rerr := ui.NewRenderer(ui.FormatAuto, w, nil)
	if rerr != nil {
		_, _ = fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	_ = renderer.RenderError(err)
}
