package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Build a merged resource pack archive"
	MsgBuildShort      = "Merge every source and write the pack archive"
	MsgConfigShort     = "Print the effective configuration"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRoot      = "Project root (default is $RPBUILDER_ROOT or the current directory)"
	MsgFlagConfig    = "Configuration file used instead of the project's rpbuilder.toml"
	MsgFlagFormat    = "Output format: auto, term, text or json"
	MsgFlagNoInstall = "Do not mirror the pack into the game installation"
	MsgFlagInstall   = "Game installation directory (overrides install.dir)"
	MsgFlagDefaults  = "Print the commented default configuration template"

	// Version output
	MsgVersionFormat = "rpbuilder version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrNoCommand   = "no command specified"
	MsgErrInitPaths   = "failed to initialize paths: %w"
	MsgErrBadFormat   = "invalid --format: %w"
	MsgErrRenderTOML  = "failed to render configuration: %w"
	MsgErrBuildFailed = "build failed"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/build-long.txt
	msgBuildLongRaw string
	MsgBuildLong    = strings.TrimSpace(msgBuildLongRaw)

	//go:embed msgs/build-example.txt
	msgBuildExampleRaw string
	MsgBuildExample    = strings.TrimRight(msgBuildExampleRaw, "\n")

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/config-example.txt
	msgConfigExampleRaw string
	MsgConfigExample    = strings.TrimRight(msgConfigExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
