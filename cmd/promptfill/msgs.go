package promptfill

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Fill {{placeholders}} in prompt templates"
	MsgRenderShort     = "Resolve every placeholder in a template"
	MsgKeysShort       = "Show which standard keys a template uses"
	MsgAliasesShort    = "List the standard keys and their aliases"
	MsgOptionsShort    = "List option: placeholders that still need a value"
	MsgConfigShort     = "Show or create the configuration file"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgHelpShort       = "Help about any command or topic"
	MsgHelpLong        = "Help for any command or topic.\n\nRun '%s help topics' to list the topics."

	// Status messages
	MsgWroteOutput      = "Wrote %s"
	MsgWroteConfig      = "Created config file %s"
	MsgNoPending        = "No pending options."
	MsgWatching         = "Watching for changes, press Ctrl-C to stop"
	MsgRerenderFailed   = "Render failed: %v"
	MsgVersionFormat    = "promptfill version %s\n  commit: %s\n  built:  %s\n"
	MsgUsedMark         = "yes"
	MsgTopicsHeading    = "Help topics:"
	MsgTopicsFooter     = "Use '%s help <topic>' to read a topic."
	MsgUnknownHelpTopic = "Unknown help topic or command %q"

	// Error messages
	MsgErrReadTemplate = "cannot read template %s"
	MsgErrReadStdin    = "cannot read template from stdin"
	MsgErrBadSet       = "invalid --set %q, expected key=value"
	MsgErrLoadConfig   = "failed to load configuration: %w"
	MsgErrWatchStdin   = "--watch needs a template file"

	// Flag descriptions
	MsgFlagVerbose         = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig          = "Config file (default is $XDG_CONFIG_HOME/promptfill/config.toml)"
	MsgFlagFormat          = "Output format: auto, term, text or json"
	MsgFlagValues          = "Values file (yaml, json or toml); repeat to layer files"
	MsgFlagSet             = "Set a value, dotted keys allowed (key=value); repeatable"
	MsgFlagRoot            = "Directory relative file: and content: paths resolve against"
	MsgFlagNoFiles         = "Leave file: and content: placeholders unresolved"
	MsgFlagPreserveEscapes = "Keep \\{\\{ escapes in the output"
	MsgFlagOutput          = "Write the result to a file instead of stdout"
	MsgFlagForce           = "Replace an existing output or config file"
	MsgFlagMarkdown        = "Preview the result as rendered markdown"
	MsgFlagWatch           = "Re-render when the template, values or root directory change"
	MsgFlagDefaults        = "Print the commented default configuration"
	MsgFlagInit            = "Write the commented default configuration to the user config file"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/render-long.txt
	msgRenderLongRaw string
	MsgRenderLong    = strings.TrimSpace(msgRenderLongRaw)

	//go:embed msgs/render-example.txt
	msgRenderExampleRaw string
	MsgRenderExample    = strings.TrimSpace(msgRenderExampleRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
