package promptfill

import (
	"fmt"
	"os"

	"github.com/arthur-debert/promptfill/internal/version"
	"github.com/arthur-debert/promptfill/pkg/config"
	"github.com/arthur-debert/promptfill/pkg/logging"
	"github.com/arthur-debert/promptfill/pkg/style"
	"github.com/spf13/cobra"
)

// globals holds the state shared by every subcommand once the persistent
// pre-run has loaded it.
type globals struct {
	verbosity  int
	configFile string
	formatName string

	cfg    *config.Config
	format style.Format
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:     "promptfill",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&g.formatName, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newRenderCmd(g))
	rootCmd.AddCommand(newKeysCmd(g))
	rootCmd.AddCommand(newAliasesCmd(g))
	rootCmd.AddCommand(newOptionsCmd(g))
	rootCmd.AddCommand(newConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.SetHelpCommand(newHelpCmd(g, rootCmd))

	return rootCmd
}

func (g *globals) load(cmd *cobra.Command, args []string) error {
	format, err := style.ParseFormat(g.formatName)
	if err != nil {
		return err
	}
	g.format = style.Resolve(format, os.Stdout)
	style.Configure(g.format)

	logging.Setup(logging.Options{
		Verbosity: g.verbosity,
		Console:   cmd.ErrOrStderr(),
		NoColor:   g.format != style.FormatTerminal,
	})
	logging.LogCommand(cmd.CommandPath(), args)

	cfg, err := config.Load(config.LoadOptions{ExplicitFile: g.configFile})
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}
	g.cfg = cfg

	logger := logging.GetLogger("cmd.root")
	logger.Debug().
		Str("command", cmd.Name()).
		Str("format", g.format.String()).
		Msg("Command started")
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
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
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
