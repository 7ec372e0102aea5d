package messages

// Wizard messages that are not part of the bilingual string table.
const (
	WizardRequiresTerminal          = "the setup wizard requires an interactive terminal; use \"ppt-install install\" instead"
	WizardAborted                   = "setup wizard exited without installing"
	WizardDirRequired               = "install directory is required"
	WizardFirstStepEscapeExitPrompt = "Leave the setup wizard without installing?"
	WizardNumberRangeFmt            = "Enter a whole number between %d and %d."

	WizardVariantWithContextDescription    = "sends recent subtitles along with each line"
	WizardVariantWithoutContextDescription = "translates each line on its own"
	WizardProviderCustomDescription        = "enter a model name and endpoint yourself"

	WizardRetryOffDescription        = "give up after the first failure"
	WizardRetryOnceDescription       = "retry a failed request once"
	WizardRetryUntilDescription      = "retry until the request succeeds"
	WizardRetryUntilDelayDescription = "retry until success, waiting between attempts"

	WizardTruncationDropOldestDescription = "drop the oldest subtitles first"
	WizardTruncationSmartTrimDescription  = "trim long subtitles before dropping any"
	WizardCacheAutoDescription            = "reuse the provider's prompt cache when available"
	WizardCacheOffDescription             = "always send the full context"
)
