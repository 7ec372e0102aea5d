package messages

// Config messages for settings loading and validation.
const (
	ConfigMissingFileFmt           = "missing settings file %s: %w"
	ConfigInvalidConfigFmt         = "invalid settings in %s: %w"
	ConfigUnrecognizedKeysFmt      = "%s: unrecognized keys: %v"
	ConfigFieldInvalidFmt          = "%s: %s: %w"
	ConfigExpandPathFailedFmt      = "expand path %s: %w"
	ConfigEnvFileReadFailedFmt     = "read env file %s: %w"
	ConfigModelRequired            = "model is required"
	ConfigCustomModelRequired      = "a custom provider needs a model name"
	ConfigProviderUnknownFmt       = "unknown provider %q"
	ConfigDelayRangeFmt            = "delay %d ms is outside 0..%d"
	ConfigRetryModeInvalidFmt      = "retry mode %q is not one of off, once, until_success, until_success_delay"
	ConfigTruncationInvalidFmt     = "truncation mode %q is not one of drop_oldest, smart_trim"
	ConfigCacheModeInvalidFmt      = "cache mode %q is not one of auto, off"
	ConfigTokenBudgetRangeFmt      = "token budget %d is outside 0..%d"
	ConfigTokenLimitsInvalidFmt    = "invalid model token limits: %w"
	ConfigTokenLimitNonPositiveFmt = "token limit for %s must be positive, got %d"
)
