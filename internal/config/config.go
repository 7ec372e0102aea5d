// Package config holds the plugin configuration written into installed
// scripts, the provider presets, and the TOML install file.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/felix3322/potplayer-translate-installer/internal/messages"
)

// RetryMode selects how the plugin retries failed translation calls.
type RetryMode int

const (
	// RetryOff never retries.
	RetryOff RetryMode = iota
	// RetryOnce retries a failed call one time.
	RetryOnce
	// RetryUntilSuccess retries until the call succeeds.
	RetryUntilSuccess
	// RetryUntilSuccessDelay retries until success, waiting the delay between attempts.
	RetryUntilSuccessDelay
)

var retryNames = []string{"off", "once", "until_success", "until_success_delay"}

// String returns the config-file spelling of m.
func (m RetryMode) String() string {
	if !m.Valid() {
		return strconv.Itoa(int(m))
	}
	return retryNames[m]
}

// Valid reports whether m is a known retry mode.
func (m RetryMode) Valid() bool {
	return m >= RetryOff && m <= RetryUntilSuccessDelay
}

// ParseRetryMode accepts a retry mode name or its numeric value.
func ParseRetryMode(raw string) (RetryMode, error) {
	value := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "-", "_")
	for i, name := range retryNames {
		if value == name {
			return RetryMode(i), nil
		}
	}
	if n, err := strconv.Atoi(value); err == nil && RetryMode(n).Valid() {
		return RetryMode(n), nil
	}
	return RetryOff, fmt.Errorf(messages.ConfigRetryModeInvalidFmt, raw)
}

// Truncation is the history trimming strategy of the context variant.
type Truncation string

const (
	TruncationDropOldest Truncation = "drop_oldest"
	TruncationSmartTrim  Truncation = "smart_trim"
)

// CacheMode controls response caching in the context variant.
type CacheMode string

const (
	CacheAuto CacheMode = "auto"
	CacheOff  CacheMode = "off"
)

// Defaults applied when neither the wizard nor the install file sets a value.
const (
	DefaultProvider    = "gpt-5-nano"
	DefaultTokenBudget = 6000
	MaxTokenBudget     = 200000
	MaxDelayMS         = 60000
)

// ContextSettings only apply to variants that keep translation context.
type ContextSettings struct {
	// TokenBudget of 0 means the plugin picks a budget from the model limit.
	TokenBudget int
	Truncation  Truncation
	Cache       CacheMode
}

// Configuration is the user configuration written into plugin scripts.
type Configuration struct {
	APIKey  string
	Model   string
	APIBase string
	DelayMS int
	Retry   RetryMode
	Debug   bool
	Context ContextSettings
}

// Default returns the configuration used when nothing is overridden.
func Default() Configuration {
	preset, _ := LookupProvider(DefaultProvider)
	return Configuration{
		Model:   preset.Model,
		APIBase: preset.APIBase,
		Retry:   RetryOff,
		Context: ContextSettings{
			TokenBudget: DefaultTokenBudget,
			Truncation:  TruncationDropOldest,
			Cache:       CacheAuto,
		},
	}
}

// Validate checks value ranges. Errors wrap ErrConfigValidation.
func (c Configuration) Validate() error {
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: %s", ErrConfigValidation, messages.ConfigModelRequired)
	}
	if c.DelayMS < 0 || c.DelayMS > MaxDelayMS {
		return fmt.Errorf("%w: "+messages.ConfigDelayRangeFmt, ErrConfigValidation, c.DelayMS, MaxDelayMS)
	}
	if !c.Retry.Valid() {
		return fmt.Errorf("%w: "+messages.ConfigRetryModeInvalidFmt, ErrConfigValidation, c.Retry.String())
	}
	if c.Context.TokenBudget < 0 || c.Context.TokenBudget > MaxTokenBudget {
		return fmt.Errorf("%w: "+messages.ConfigTokenBudgetRangeFmt, ErrConfigValidation, c.Context.TokenBudget, MaxTokenBudget)
	}
	if !isValidOption(FieldContextTruncation, string(c.Context.Truncation)) {
		return fmt.Errorf("%w: "+messages.ConfigTruncationInvalidFmt, ErrConfigValidation, c.Context.Truncation)
	}
	if !isValidOption(FieldContextCache, string(c.Context.Cache)) {
		return fmt.Errorf("%w: "+messages.ConfigCacheModeInvalidFmt, ErrConfigValidation, c.Context.Cache)
	}
	return nil
}

// ParseTruncation validates raw as a truncation strategy.
func ParseTruncation(raw string) (Truncation, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if !isValidOption(FieldContextTruncation, value) {
		return "", fmt.Errorf(messages.ConfigTruncationInvalidFmt, raw)
	}
	return Truncation(value), nil
}

// ParseCacheMode validates raw as a cache mode.
func ParseCacheMode(raw string) (CacheMode, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if !isValidOption(FieldContextCache, value) {
		return "", fmt.Errorf(messages.ConfigCacheModeInvalidFmt, raw)
	}
	return CacheMode(value), nil
}
