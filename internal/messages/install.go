package messages

// Install messages for the installer run and its prompts.
const (
	InstallCancelled               = "installation cancelled"
	InstallMissingSourceFile       = "plugin bundle file is missing"
	InstallDirectoryCreateFailed   = "could not create the install directory"
	InstallNoVariantSelected       = "no variant selected"
	InstallTemplateWriteFailed     = "could not write the configured plugin"
	InstallRegistrationWriteFailed = "could not write the registration record"

	InstallSystemRequired   = "install system is required"
	InstallPrompterRequired = "install prompter is required"
	InstallLedgerRequired   = "registration ledger is required"
	InstallStringsRequired  = "string table is required"

	InstallFileExistsPromptRequired = "file-exists prompt handler is required"
	InstallYesNoPromptRequired      = "yes/no prompt handler is required"
	InstallFreeTextPromptRequired   = "free-text prompt handler is required"
	InstallPromptFailedFmt          = "prompt failed: %w"

	InstallResolveDirFailedFmt   = "resolve install directory %s: %w"
	InstallCreateDirFailedFmt    = "create directory %s: %w"
	InstallToolsDirFailedFmt     = "create tools directory %s: %w"
	InstallStatSourceFailedFmt   = "stat %s: %w"
	InstallStatDestFailedFmt     = "stat %s: %w"
	InstallCopyFailedFmt         = "copy %s to %s: %w"
	InstallLedgerLookupFailedFmt = "look up registration %s: %w"
	InstallUnexpectedPanicFmt    = "installer stopped unexpectedly: %v"
	InstallDiffTruncatedFmt      = "... diff truncated after %d lines"

	VariantUnknownFmt      = "unknown variant %q"
	TemplateReadFailedFmt  = "read template %s: %w"
	TemplateWriteFailedFmt = "write plugin %s: %w"
)
