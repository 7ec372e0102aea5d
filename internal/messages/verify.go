package messages

// Verify messages for the API key check.
const (
	VerifyKeyRequired       = "API key is required"
	VerifyModelRequired     = "model is required"
	VerifyEncodeRequestFmt  = "encode verification request: %w"
	VerifyCreateRequestFmt  = "create verification request: %w"
	VerifyRequestFailedFmt  = "request %s: %w"
	VerifyStatusFmt         = "API returned %s"
	VerifyStatusDetailFmt   = "API returned %s: %s"
	VerifyDecodeResponseFmt = "decode verification response: %w"
	VerifyEmptyResponse     = "API returned no choices"
	VerifyRateLimitedFmt    = "API is rate limited (%s)"
)

// Lang messages for loading the bilingual string table.
const (
	LangDecodeFailedFmt    = "decode string table: %w"
	LangMissingLanguageFmt = "string table has no %s entries"
	LangInvalidCodeFmt     = "invalid language code %q: %w"
	LangMissingKeyFmt      = "string table for %s is missing %q"
)
