// Package medialink wires the medialink commands into a cobra command tree.
package medialink

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/medialink/internal/version"
	"github.com/arthur-debert/medialink/pkg/commands/genconfig"
	linkcmd "github.com/arthur-debert/medialink/pkg/commands/link"
	undocmd "github.com/arthur-debert/medialink/pkg/commands/undo"
	"github.com/arthur-debert/medialink/pkg/config"
	"github.com/arthur-debert/medialink/pkg/errors"
	"github.com/arthur-debert/medialink/pkg/filesystem"
	"github.com/arthur-debert/medialink/pkg/guide"
	"github.com/arthur-debert/medialink/pkg/logging"
	"github.com/arthur-debert/medialink/pkg/paths"
	"github.com/arthur-debert/medialink/pkg/planner"
	"github.com/arthur-debert/medialink/pkg/ui"
	"github.com/arthur-debert/medialink/pkg/ui/prompt"
	"github.com/spf13/cobra"
)

// globalFlags are the persistent flags shared by every command
type globalFlags struct {
	verbosity  int
	dryRun     bool
	configFile string
	format     string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "medialink",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			logging.LogCommand(cmd.Name(), args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return errors.New(errors.ErrMissingArgument, "no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&g.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newLinkCmd(g))
	rootCmd.AddCommand(newUndoCmd(g))
	rootCmd.AddCommand(newConfigCmd(g))
	rootCmd.AddCommand(newGuideCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Serve the guide topics through "help <topic>" as well
	if manager, err := guide.New(); err == nil {
		guide.Install(rootCmd, manager, func() guide.Renderer {
			return guideRenderer(rootCmd.OutOrStdout())
		})
	}

	return rootCmd
}

// overrides collects the persistent flags that map onto config keys
func (g *globalFlags) overrides(cmd *cobra.Command) map[string]interface{} {
	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("format") {
		overrides["output.format"] = g.format
	}
	return overrides
}

func (g *globalFlags) loadConfig(overrides map[string]interface{}) (*config.Config, error) {
	return config.Load(config.LoadOptions{File: g.configFile, Overrides: overrides})
}

// renderer picks the output renderer for the configured format
func renderer(cmd *cobra.Command, cfg *config.Config) (ui.Renderer, error) {
	format, err := ui.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// guideRenderer uses glamour on terminals and plain markdown elsewhere
func guideRenderer(w io.Writer) guide.Renderer {
	if f, ok := w.(*os.File); ok && ui.IsTerminal(f) {
		return guide.NewGlamourRenderer()
	}
	return &guide.PlainRenderer{}
}

func newLinkCmd(g *globalFlags) *cobra.Command {
	var (
		recursive  bool
		sequential bool
		auto       bool
		sequence   string
		filter     string
		policy     string
		ledgerFile string
	)

	cmd := &cobra.Command{
		Use:     "link SOURCE [DESTINATION]",
		Short:   MsgLinkShort,
		Long:    MsgLinkLong,
		Example: MsgLinkExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.link")

			if len(args) == 0 {
				return errors.New(errors.ErrMissingArgument, MsgErrNoSource)
			}
			if auto && !sequential {
				return errors.New(errors.ErrConfigInvalid, MsgErrAutoNeedsS)
			}

			overrides := g.overrides(cmd)
			if cmd.Flags().Changed("overwrite-policy") {
				overrides["prompt.blank_collision"] = policy
			}
			if cmd.Flags().Changed("ledger") {
				overrides["ledger.path"] = ledgerFile
			}
			cfg, err := g.loadConfig(overrides)
			if err != nil {
				return err
			}

			source, err := paths.Normalize(args[0])
			if err != nil {
				return err
			}
			destArg := "."
			if len(args) == 2 {
				destArg = args[1]
			}
			destination, err := paths.Normalize(destArg)
			if err != nil {
				return err
			}
			ledgerPath, err := paths.LedgerPath(cfg.Ledger.Path)
			if err != nil {
				return err
			}
			out, err := renderer(cmd, cfg)
			if err != nil {
				return err
			}

			strategy := planner.StrategyVerbatim
			switch {
			case recursive:
				strategy = planner.StrategyRecursive
			case sequential:
				strategy = planner.StrategySequential
			}

			logger.Info().
				Str("source", source).
				Str("destination", destination).
				Str("strategy", strategy.String()).
				Bool("dryRun", g.dryRun).
				Msg("Starting link")

			result, err := linkcmd.Run(linkcmd.Options{
				FS:          filesystem.NewOS(),
				Source:      source,
				Destination: destination,
				Strategy:    strategy,
				Interactive: sequential && !auto,
				Sequence:    sequence,
				Filter:      filter,
				DryRun:      g.dryRun,
				Config:      cfg,
				LedgerPath:  ledgerPath,
				Prompter:    prompt.NewConsole(cmd.InOrStdin(), cmd.ErrOrStderr()),
			})
			if err != nil {
				return err
			}

			if result.Preview != nil {
				if err := out.RenderResult(result.Preview); err != nil {
					return err
				}
			}
			if err := out.RenderResult(result.Plan); err != nil {
				return err
			}
			if g.dryRun {
				return out.RenderMessage(MsgDryRunNotice)
			}
			return out.RenderMessage(fmt.Sprintf(MsgLedgerWritten, result.LedgerPath))
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, MsgFlagRecursive)
	cmd.Flags().BoolVarP(&sequential, "sequential", "s", false, MsgFlagSequential)
	cmd.Flags().BoolVarP(&auto, "auto", "a", false, MsgFlagAuto)
	cmd.Flags().StringVarP(&sequence, "sequence", "e", "", MsgFlagSequence)
	cmd.Flags().StringVarP(&filter, "filter", "f", "", MsgFlagFilter)
	cmd.Flags().StringVar(&policy, "overwrite-policy", "", MsgFlagOverwritePolicy)
	cmd.Flags().StringVar(&ledgerFile, "ledger", "", MsgFlagLedger)
	cmd.MarkFlagsMutuallyExclusive("recursive", "sequential")

	_ = cmd.RegisterFlagCompletionFunc("overwrite-policy", cobra.FixedCompletions(
		[]string{"overwrite", "confirm", "reprompt"}, cobra.ShellCompDirectiveNoFileComp))
	cmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveFilterDirs
	}

	return cmd
}

func newUndoCmd(g *globalFlags) *cobra.Command {
	var ledgerFile string

	cmd := &cobra.Command{
		Use:     "undo",
		Short:   MsgUndoShort,
		Long:    MsgUndoLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := g.overrides(cmd)
			if cmd.Flags().Changed("ledger") {
				overrides["ledger.path"] = ledgerFile
			}
			cfg, err := g.loadConfig(overrides)
			if err != nil {
				return err
			}
			ledgerPath, err := paths.LedgerPath(cfg.Ledger.Path)
			if err != nil {
				return err
			}
			out, err := renderer(cmd, cfg)
			if err != nil {
				return err
			}

			result, err := undocmd.Undo(undocmd.Options{
				FS:         filesystem.NewOS(),
				LedgerPath: ledgerPath,
				DryRun:     g.dryRun,
			})
			if err != nil {
				return err
			}
			if err := out.RenderResult(result); err != nil {
				return err
			}
			if g.dryRun {
				return out.RenderMessage(MsgUndoDryRun)
			}
			if result.Failed > 0 {
				return errors.Newf(errors.ErrRemove, MsgErrUndoFailed, result.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerFile, "ledger", "", MsgFlagLedger)
	return cmd
}

func newConfigCmd(g *globalFlags) *cobra.Command {
	var (
		defaults bool
		initFile bool
	)

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			if defaults || initFile {
				result, err := genconfig.GenConfig(genconfig.Options{Write: initFile})
				if err != nil {
					return err
				}
				switch {
				case !initFile:
					_, err = fmt.Fprintln(w, result.ConfigContent)
				case len(result.FilesWritten) > 0:
					_, err = fmt.Fprintf(w, MsgConfigWritten, result.FilesWritten[0])
				default:
					_, err = fmt.Fprint(w, MsgConfigExists)
				}
				return err
			}

			cfg, err := g.loadConfig(g.overrides(cmd))
			if err != nil {
				return err
			}
			content, err := cfg.TOML()
			if err != nil {
				return err
			}
			header := MsgConfigDefaults
			if len(cfg.Sources) > 0 {
				header = ""
				for _, source := range cfg.Sources {
					header += fmt.Sprintf(MsgConfigSources, source)
				}
			}
			_, err = fmt.Fprint(w, header+content)
			return err
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	cmd.Flags().BoolVar(&initFile, "init", false, MsgFlagInit)
	cmd.MarkFlagsMutuallyExclusive("defaults", "init")
	return cmd
}

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "guide [topic]",
		Short:   MsgGuideShort,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			manager, err := guide.New()
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			return manager.List(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := guide.New()
			if err != nil {
				return err
			}
			topic := guide.Overview
			if len(args) == 1 {
				topic = args[0]
			}
			return manager.Show(cmd.OutOrStdout(), topic, guideRenderer(cmd.OutOrStdout()))
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
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
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}
}
