package messages

// CLI messages for user-facing commands and flags.
const (
	// RootUse is the CLI command name.
	RootUse = "ppt-install"
	// RootShort is the short description for the root command.
	RootShort = "Install the ChatGPT Translate plugin for PotPlayer"
	RootLong  = `ppt-install copies the ChatGPT subtitle translation plugin into a PotPlayer
Translate directory, fills in the model and API settings, and records an
uninstall entry for each installed variant.

Run "ppt-install wizard" for guided setup or "ppt-install install" to script it.`
	RootFlagLogLevel            = "Log level for diagnostics on stderr (debug, info, warn, error)"
	RootLogLevelInvalidFmt      = "invalid log level %q"
	RootExecutablePathFailedFmt = "resolve installer path: %w"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt  = "commit %s"
	VersionBuildFmt   = "built %s"
	VersionFullFmt    = "%s (%s)"
	VersionTemplate   = "{{.Version}}\n"
	VersionRequired   = "version is required"
	VersionInvalidFmt = "version %q must be in the form vX.Y.Z or X.Y.Z: %w"

	InstallUse         = "install"
	InstallShort       = "Install plugin variants without prompts"
	InstallLong        = "Install the selected plugin variants into a PotPlayer Translate directory.\nSettings come from --config, the environment, and flags, in that order."
	InstallFlagsSource = "command-line flags"
	InstallDirRequired = "install directory is required; pass --dir or set install.dir in the config file"

	InstallFlagConfig       = "Path to a TOML settings file"
	InstallFlagDir          = "PotPlayer Translate directory to install into"
	InstallFlagVariant      = "Variant to install (with_context, without_context); repeatable"
	InstallFlagSourceDir    = "Directory holding the plugin bundle (defaults to the installer's directory)"
	InstallFlagLang         = "Installer language (en-US or zh-CN)"
	InstallFlagProvider     = "Model provider name, or \"custom\" to give a model and endpoint directly"
	InstallFlagModel        = "Model name"
	InstallFlagAPIBase      = "API base URL"
	InstallFlagAPIKey       = "API key (prefer the environment or --env-file)"
	InstallFlagEnvFile      = "Dotenv file to read the API key from"
	InstallFlagDelay        = "Delay between translation requests in milliseconds"
	InstallFlagRetry        = "Retry mode (off, once, until_success, until_success_delay)"
	InstallFlagDebug        = "Enable plugin debug logging"
	InstallFlagYes          = "Register every installed variant without asking"
	InstallFlagOnConflict   = "Answer for existing files: overwrite, rename, or cancel"
	InstallFlagRenameSuffix = "Suffix added before the extension when renaming"

	WizardUse     = "wizard"
	WizardShort   = "Install the plugin with an interactive setup wizard"
	WizardLong    = "Walk through language, directory, variants, provider, and behavior settings, then install and register the plugin."
	WizardFlagDir = "Pre-fill the install directory"

	StatusUse              = "status <dir>"
	StatusShort            = "Show registration records for an install directory"
	StatusNotRegisteredFmt = "%s: not registered\n"
	StatusRegisteredFmt    = "%s: registered as %s"
	StatusFieldFmt         = "  %-16s %s"
	KeyUse                 = "key <dir> <variant>"
	KeyShort               = "Print the registration key for a directory and variant"

	VerifyUse           = "verify"
	VerifyShort         = "Check that the configured API key and model work"
	VerifyRetryLaterFmt = "%w; try again later"
	VerifyOKFmt         = "API key verified for %s at %s\n"

	UninstallUse        = "uninstall <dir> <variant>"
	UninstallShort      = "Remove an installed variant and its registration"
	UninstallMissingFmt = "%s is not registered for %s"
	UninstallDoneFmt    = "Uninstalled %s\n"
)
