package promptfill

import (
	"fmt"

	"github.com/arthur-debert/promptfill/pkg/filesystem"
	"github.com/arthur-debert/promptfill/pkg/placeholders"
	"github.com/arthur-debert/promptfill/pkg/style"
	"github.com/arthur-debert/promptfill/pkg/values"
	"github.com/spf13/cobra"
)

// introspect loads the template and values shared by keys and options and
// returns them with a formatter configured from the loaded config.
func introspect(cmd *cobra.Command, g *globals, vf *valueFlags, args []string) (*placeholders.Formatter, string, values.Value, error) {
	fs := filesystem.NewOS()

	text, err := readTemplate(cmd, fs, templateArg(args))
	if err != nil {
		return nil, "", values.Null, err
	}
	bag, err := vf.bag(fs)
	if err != nil {
		return nil, "", values.Null, err
	}

	f := placeholders.New(placeholders.Options{
		ResolveFiles: g.cfg.Format.ResolveFiles,
		FS:           fs,
		NowLayout:    g.cfg.Format.NowLayout,
	})
	return f, text, bag, nil
}

func newKeysCmd(g *globals) *cobra.Command {
	vf := &valueFlags{}

	cmd := &cobra.Command{
		Use:     "keys [template]",
		Short:   MsgKeysShort,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, text, bag, err := introspect(cmd, g, vf, args)
			if err != nil {
				return err
			}

			used := make(map[placeholders.Key]bool)
			for _, key := range f.UsedKeys(text, bag) {
				used[key] = true
			}

			table := style.Table{Header: []string{"Key", "Alias", "Used", "Description"}}
			for _, info := range f.Table().Keys() {
				mark := ""
				if used[info.Key] {
					mark = MsgUsedMark
				}
				table.Rows = append(table.Rows, []string{string(info.Key), info.Alias, mark, info.Description})
			}
			return printTable(cmd, g, table)
		},
	}
	vf.register(cmd)

	return cmd
}

func newAliasesCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "aliases",
		Short:   MsgAliasesShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := style.Table{Header: []string{"Key", "Alias", "Description"}}
			for _, info := range placeholders.DefaultTable().Keys() {
				table.Rows = append(table.Rows, []string{string(info.Key), info.Alias, info.Description})
			}
			return printTable(cmd, g, table)
		},
	}
}

func newOptionsCmd(g *globals) *cobra.Command {
	vf := &valueFlags{}

	cmd := &cobra.Command{
		Use:     "options [template]",
		Short:   MsgOptionsShort,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, text, bag, err := introspect(cmd, g, vf, args)
			if err != nil {
				return err
			}

			pending := f.PendingOptions(text, bag)
			if len(pending) == 0 && g.format != style.FormatJSON {
				fmt.Fprintln(cmd.OutOrStdout(), style.Render("Muted", MsgNoPending))
				return nil
			}

			table := style.Table{Header: []string{"Path"}}
			for _, path := range pending {
				table.Rows = append(table.Rows, []string{path})
			}
			return printTable(cmd, g, table)
		},
	}
	vf.register(cmd)

	return cmd
}

func printTable(cmd *cobra.Command, g *globals, table style.Table) error {
	out, err := table.Render(g.format)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
