package promptfill

import (
	"fmt"

	"github.com/arthur-debert/promptfill/pkg/config"
	"github.com/arthur-debert/promptfill/pkg/output"
	"github.com/arthur-debert/promptfill/pkg/paths"
	"github.com/arthur-debert/promptfill/pkg/style"
	"github.com/spf13/cobra"
)

func newConfigCmd(g *globals) *cobra.Command {
	var (
		defaults bool
		initFile bool
		force    bool
	)

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := config.GenerateConfigContent()

			switch {
			case initFile:
				target := paths.NewDirs().ConfigFile()
				err := output.NewWriter().Write(cmd.Context(), target, []byte(content), output.WriteOptions{Force: force})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), style.Render("Success", fmt.Sprintf(MsgWroteConfig, target)))
				return nil

			case defaults:
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			data, err := g.cfg.MarshalTOML()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	cmd.Flags().BoolVar(&initFile, "init", false, MsgFlagInit)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	cmd.MarkFlagsMutuallyExclusive("defaults", "init")

	return cmd
}
