package promptfill

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/arthur-debert/promptfill/pkg/style"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// topics holds the markdown help topics shipped with the binary
type topics struct {
	content map[string]string
}

func loadTopics(files fs.FS) (*topics, error) {
	names, err := fs.Glob(files, "topics/*.md")
	if err != nil {
		return nil, err
	}

	t := &topics{content: make(map[string]string, len(names))}
	for _, name := range names {
		data, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, err
		}
		t.content[strings.TrimSuffix(path.Base(name), ".md")] = string(data)
	}
	return t, nil
}

// get accepts topic names written like flags (--syntax)
func (t *topics) get(name string) (string, bool) {
	content, ok := t.content[strings.TrimLeft(name, "-")]
	return content, ok
}

func (t *topics) names() []string {
	names := make([]string, 0, len(t.content))
	for name := range t.content {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// newHelpCmd replaces cobra's help command so that `help <topic>` prints a
// topic and anything else falls back to command help.
func newHelpCmd(g *globals, rootCmd *cobra.Command) *cobra.Command {
	t, err := loadTopics(topicFiles)
	if err != nil {
		panic(fmt.Sprintf("failed to load embedded help topics: %v", err))
	}
	defaultHelp := rootCmd.HelpFunc()

	return &cobra.Command{
		Use:   "help [command or topic]",
		Short: MsgHelpShort,
		Long:  fmt.Sprintf(MsgHelpLong, rootCmd.Name()),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			return append(completions, t.names()...), cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				defaultHelp(rootCmd, args)
				return
			}

			if args[0] == "topics" {
				fmt.Fprintln(out, style.Render("Title", MsgTopicsHeading))
				for _, name := range t.names() {
					fmt.Fprintf(out, "  %s\n", name)
				}
				fmt.Fprintf(out, "\n"+MsgTopicsFooter+"\n", rootCmd.Name())
				return
			}

			if content, ok := t.get(args[0]); ok {
				if g.format == style.FormatTerminal {
					content = style.RenderMarkdown(content, 0)
				}
				fmt.Fprint(out, content)
				return
			}

			target, _, err := rootCmd.Find(args)
			if err != nil || target == nil {
				fmt.Fprintf(cmd.ErrOrStderr(), MsgUnknownHelpTopic+"\n", strings.Join(args, " "))
				return
			}
			defaultHelp(target, args)
		},
	}
}
