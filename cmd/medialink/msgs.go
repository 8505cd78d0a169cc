package medialink

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Organize media into a library with hardlinks"
	MsgLinkShort       = "Hardlink media files into a destination folder"
	MsgUndoShort       = "Remove everything the last link run created"
	MsgConfigShort     = "Show the effective configuration"
	MsgGuideShort      = "Read the medialink guide"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice   = "DRY RUN - nothing was created"
	MsgUndoDryRun     = "DRY RUN - nothing was removed"
	MsgLedgerWritten  = "Run recorded in %s; use 'medialink undo' to revert it"
	MsgConfigSources  = "# loaded from: %s\n"
	MsgConfigDefaults = "# using built-in defaults only\n"
	MsgConfigWritten  = "Wrote %s\n"
	MsgConfigExists   = "A config file already exists, nothing written\n"
	MsgVersionFormat  = "medialink version %s\n  commit: %s\n  built:  %s\n"

	// Flag descriptions
	MsgFlagVerbose         = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun          = "Preview changes without executing them"
	MsgFlagConfig          = "Config file (default $XDG_CONFIG_HOME/medialink/config.toml)"
	MsgFlagFormat          = "Output format: auto, term, text or json"
	MsgFlagLedger          = "Ledger file (default .medialink-ledger next to the binary)"
	MsgFlagRecursive       = "Mirror top-level folders of SOURCE with all their files"
	MsgFlagSequential      = "Rename files into '<name> - sXXeYY.<ext>'"
	MsgFlagAuto            = "With --sequential, only ask when a name is taken"
	MsgFlagSequence        = "Start sequence, optionally with an end: s01e01 or s01e01-s01e12"
	MsgFlagFilter          = "Regular expression selecting files (and top-level folders with -r)"
	MsgFlagOverwritePolicy = "Blank answer on a taken sequential name: overwrite, confirm or reprompt"
	MsgFlagDefaults        = "Print a commented config template"
	MsgFlagInit            = "Write the config template to the user config location"

	// Error messages
	MsgErrNoSource   = "a source directory is required"
	MsgErrAutoNeedsS = "--auto only applies to --sequential"
	MsgErrUndoFailed = "%d path(s) could not be removed; the ledger was kept"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/link-long.txt
	msgLinkLongRaw string
	MsgLinkLong    = strings.TrimSpace(msgLinkLongRaw)

	//go:embed msgs/link-example.txt
	msgLinkExampleRaw string
	MsgLinkExample    = strings.TrimRight(msgLinkExampleRaw, "\n")

	//go:embed msgs/undo-long.txt
	msgUndoLongRaw string
	MsgUndoLong    = strings.TrimSpace(msgUndoLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
