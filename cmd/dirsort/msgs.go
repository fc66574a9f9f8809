package dirsort

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Sort a directory's files into dated subdirectories by extension"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v DEBUG, -vv TRACE)"
	MsgFlagNoColor    = "Disable colored output"
	MsgFlagConfig     = "Config file (.toml, .yaml or .yml)"
	MsgFlagRules      = "Rule EXT=SUBDIR, repeatable (e.g. -r .txt=documents -r .jpg=images)"
	MsgFlagWorkers    = "Number of files moved concurrently"
	MsgFlagOnConflict = "When the destination exists: skip or rename"

	// Log messages
	MsgOrganizeComplete = "File organization complete."
	MsgInvalidRules     = "Invalid rule configuration"

	// Error messages
	MsgErrNoRules = "no rules given: use -r EXT=SUBDIR or a config file with rules"

	MsgVersionFormat = "dirsort version %s\n  commit: %s\n  built:  %s\n"
)

// Long messages, kept in text files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
