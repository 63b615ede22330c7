package promptfill

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/promptfill/pkg/dirtext"
	"github.com/arthur-debert/promptfill/pkg/errors"
	"github.com/arthur-debert/promptfill/pkg/filesystem"
	"github.com/arthur-debert/promptfill/pkg/logging"
	"github.com/arthur-debert/promptfill/pkg/output"
	"github.com/arthur-debert/promptfill/pkg/paths"
	"github.com/arthur-debert/promptfill/pkg/placeholders"
	"github.com/arthur-debert/promptfill/pkg/rules"
	"github.com/arthur-debert/promptfill/pkg/style"
	"github.com/spf13/cobra"
)

type renderFlags struct {
	values          valueFlags
	root            string
	noFiles         bool
	preserveEscapes bool
	output          string
	force           bool
	markdown        bool
	watch           bool
}

// renderer keeps the collaborators that survive between renders, so a
// watch loop reuses one ignore cache.
type renderer struct {
	g          *globals
	flags      *renderFlags
	template   string
	fs         filesystem.FS
	classifier *rules.Classifier
	writer     *output.Writer
}

func newRenderCmd(g *globals) *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:     "render [template]",
		Short:   MsgRenderShort,
		Long:    MsgRenderLong,
		Example: MsgRenderExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := filesystem.NewOS()
			r := &renderer{
				g:          g,
				flags:      flags,
				template:   templateArg(args),
				fs:         fs,
				classifier: rules.NewClassifier(fs, g.cfg.Directory.RulesOptions()),
				writer:     output.NewWriter(),
			}

			if flags.watch {
				return r.watch(cmd)
			}
			return r.render(cmd)
		},
	}

	flags.values.register(cmd)
	cmd.Flags().StringVar(&flags.root, "root", "", MsgFlagRoot)
	cmd.Flags().BoolVar(&flags.noFiles, "no-files", false, MsgFlagNoFiles)
	cmd.Flags().BoolVar(&flags.preserveEscapes, "preserve-escapes", false, MsgFlagPreserveEscapes)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", MsgFlagOutput)
	cmd.Flags().BoolVar(&flags.force, "force", false, MsgFlagForce)
	cmd.Flags().BoolVar(&flags.markdown, "markdown", false, MsgFlagMarkdown)
	cmd.Flags().BoolVar(&flags.watch, "watch", false, MsgFlagWatch)

	return cmd
}

// root returns the directory relative paths resolve against: --root, else
// the template's directory. Stdin templates have none.
func (r *renderer) root() (string, error) {
	root := r.flags.root
	if root == "" {
		if r.template == "" {
			return "", nil
		}
		root = filepath.Dir(r.template)
	}

	root = paths.SanitizePath(root)
	if paths.IsAbsolutePath(root) {
		return root, nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid root %s", root)
	}
	return abs, nil
}

func (r *renderer) formatter(root string) *placeholders.Formatter {
	cfg := r.g.cfg
	logger := logging.GetLogger("placeholders.formatter")

	return placeholders.New(placeholders.Options{
		Root:            root,
		ResolveFiles:    cfg.Format.ResolveFiles && !r.flags.noFiles,
		PreserveEscapes: cfg.Format.PreserveEscapes || r.flags.preserveEscapes,
		FS:              r.fs,
		Serializer:      dirtext.New(r.fs, r.classifier),
		NowLayout:       cfg.Format.NowLayout,
		Logger:          &logger,
	})
}

// render resolves the template once and delivers the result
func (r *renderer) render(cmd *cobra.Command) error {
	done := logging.LogOperationStart(logging.GetLogger("cmd.render"), "render")
	defer done()

	text, err := readTemplate(cmd, r.fs, r.template)
	if err != nil {
		return err
	}
	bag, err := r.flags.values.bag(r.fs)
	if err != nil {
		return err
	}
	root, err := r.root()
	if err != nil {
		return err
	}

	result := r.formatter(root).Format(text, bag)
	return r.deliver(cmd.Context(), cmd, result)
}

func (r *renderer) deliver(ctx context.Context, cmd *cobra.Command, result string) error {
	if r.flags.output != "" {
		target := paths.SanitizePath(r.flags.output)
		// Each watch re-render replaces the file written by the previous one
		opts := output.WriteOptions{Force: r.flags.force || r.flags.watch}
		if err := r.writer.Write(ctx, target, []byte(result), opts); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), style.Render("Success", fmt.Sprintf(MsgWroteOutput, target)))
		return nil
	}

	if r.flags.markdown && r.g.format == style.FormatTerminal {
		fmt.Fprint(cmd.OutOrStdout(), style.RenderMarkdown(result, 0))
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), result)
	return nil
}
