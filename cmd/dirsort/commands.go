package dirsort

import (
	"fmt"

	"github.com/arthur-debert/dirsort/cmd/dirsort/commands/genconfig"
	"github.com/arthur-debert/dirsort/internal/version"
	"github.com/arthur-debert/dirsort/pkg/config"
	"github.com/arthur-debert/dirsort/pkg/errors"
	"github.com/arthur-debert/dirsort/pkg/logging"
	"github.com/arthur-debert/dirsort/pkg/organizer"
	"github.com/arthur-debert/dirsort/pkg/paths"
	"github.com/arthur-debert/dirsort/pkg/rules"
	"github.com/arthur-debert/dirsort/pkg/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// rootOptions holds the values bound to the root command flags
type rootOptions struct {
	verbosity  int
	noColor    bool
	configPath string
	rules      []string
	workers    int
	onConflict string
}

// loadConfig layers the flags that were set explicitly over the config
// file and environment. Without --config the default config file is used
// when it exists.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := paths.ExpandHome(o.configPath)
	if path == "" {
		if found, ok := paths.FindConfigFile(); ok {
			log.Debug().Str("path", found).Msg("Using default config file")
			path = found
		}
	}

	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("workers") {
		overrides[config.KeyWorkers] = o.workers
	}
	if cmd.Flags().Changed("on-conflict") {
		overrides[config.KeyOnConflict] = o.onConflict
	}
	return config.Load(path, overrides)
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "dirsort DIRECTORY [EXT=SUBDIR...]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.MinimumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			style.Init(opts.noColor)
			logging.SetupLogger(opts.verbosity, opts.noColor)
			logging.LogCommand(cmd.CommandPath(), args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrganize(cmd, opts, args)
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return nil, cobra.ShellCompDirectiveFilterDirs
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVar(&opts.noColor, "no-color", false, MsgFlagNoColor)
	flags.StringVar(&opts.configPath, "config", "", MsgFlagConfig)
	flags.StringArrayVarP(&opts.rules, "rules", "r", nil, MsgFlagRules)
	flags.IntVar(&opts.workers, "workers", 1, MsgFlagWorkers)
	flags.StringVar(&opts.onConflict, "on-conflict", string(organizer.ConflictSkip), MsgFlagOnConflict)

	_ = rootCmd.RegisterFlagCompletionFunc("on-conflict",
		func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return []string{string(organizer.ConflictSkip), string(organizer.ConflictRename)}, cobra.ShellCompDirectiveNoFileComp
		})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(genconfig.NewCommand(func(cmd *cobra.Command) (*config.Config, error) {
		cfg, err := opts.loadConfig(cmd)
		if err != nil {
			return nil, err
		}
		cfg.Rules = append(cfg.Rules, opts.rules...)
		return cfg, nil
	}))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

// runOrganize loads the configuration and rules, then sorts the directory.
// Every configuration error is returned before the filesystem is touched.
func runOrganize(cmd *cobra.Command, opts *rootOptions, args []string) error {
	logger := logging.GetLogger("cmd.organize")

	directory := args[0]
	tokens := append(append([]string{}, opts.rules...), args[1:]...)

	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		logger.Error().Err(err).Msg("Invalid configuration")
		return err
	}

	table, err := ruleTable(cfg, tokens)
	if err != nil {
		logger.Error().Err(err).Msg(MsgInvalidRules)
		return err
	}
	if table.Len() == 0 {
		return errors.New(errors.ErrInvalidInput, MsgErrNoRules)
	}

	logger.Debug().
		Str("directory", directory).
		Strs("rules", table.Keys()).
		Int("workers", cfg.Organize.Workers).
		Str("onConflict", cfg.Organize.OnConflict).
		Msg("Starting organize")

	report := organizer.Organize(directory, table,
		organizer.WithWorkers(cfg.Organize.Workers),
		organizer.WithConflictPolicy(cfg.ConflictPolicy()),
	)

	fmt.Fprintln(cmd.OutOrStdout(), style.RenderSummary(report))
	log.Info().Msg(MsgOrganizeComplete)
	return nil
}

// ruleTable merges the configured rules with the command-line tokens,
// command-line rules winning
func ruleTable(cfg *config.Config, tokens []string) (rules.Table, error) {
	configured, err := cfg.RuleTable()
	if err != nil {
		return rules.Table{}, err
	}
	given, err := rules.ParseTokens(tokens)
	if err != nil {
		return rules.Table{}, err
	}
	return configured.Merge(given), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// newManCmd prints the dirsort(1) man page
func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  MsgManShort,
		Args:   cobra.NoArgs,
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "DIRSORT",
				Section: "1",
				Source:  "dirsort " + version.Version,
				Manual:  "dirsort manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}
