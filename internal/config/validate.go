package config

import (
	"fmt"
	"strings"

	"github.com/felix3322/potplayer-translate-installer/internal/messages"
	"github.com/felix3322/potplayer-translate-installer/internal/variant"
)

// Validate checks every value the file sets. path is used for error context.
func (f *File) Validate(path string) error {
	if _, err := f.VariantIDs(); err != nil {
		return fmt.Errorf(messages.ConfigFieldInvalidFmt, path, FieldInstallVariants, err)
	}
	if name := strings.TrimSpace(f.API.Provider); name != "" && !isValidOption(FieldAPIProvider, strings.ToLower(name)) {
		return fmt.Errorf(messages.ConfigFieldInvalidFmt, path, FieldAPIProvider, fmt.Errorf(messages.ConfigProviderUnknownFmt, name))
	}
	if f.Behavior.DelayMS != nil && (*f.Behavior.DelayMS < 0 || *f.Behavior.DelayMS > MaxDelayMS) {
		return fmt.Errorf(messages.ConfigFieldInvalidFmt, path, FieldBehaviorDelay, fmt.Errorf(messages.ConfigDelayRangeFmt, *f.Behavior.DelayMS, MaxDelayMS))
	}
	if f.Behavior.RetryMode != "" {
		if _, err := ParseRetryMode(f.Behavior.RetryMode); err != nil {
			return fmt.Errorf(messages.ConfigFieldInvalidFmt, path, FieldBehaviorRetry, err)
		}
	}
	if f.Context.TokenBudget != nil && (*f.Context.TokenBudget < 0 || *f.Context.TokenBudget > MaxTokenBudget) {
		return fmt.Errorf(messages.ConfigFieldInvalidFmt, path, FieldContextBudget, fmt.Errorf(messages.ConfigTokenBudgetRangeFmt, *f.Context.TokenBudget, MaxTokenBudget))
	}
	if f.Context.Truncation != "" {
		if _, err := ParseTruncation(f.Context.Truncation); err != nil {
			return fmt.Errorf(messages.ConfigFieldInvalidFmt, path, FieldContextTruncation, err)
		}
	}
	if f.Context.Cache != "" {
		if _, err := ParseCacheMode(f.Context.Cache); err != nil {
			return fmt.Errorf(messages.ConfigFieldInvalidFmt, path, FieldContextCache, err)
		}
	}
	return nil
}

// VariantIDs parses the selected variants, dropping duplicates and keeping
// the first-seen order.
func (f *File) VariantIDs() ([]variant.ID, error) {
	out := make([]variant.ID, 0, len(f.Install.Variants))
	seen := make(map[variant.ID]struct{}, len(f.Install.Variants))
	for _, raw := range f.Install.Variants {
		id, err := variant.Parse(raw)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

// Configuration builds the plugin configuration from the file on top of Default.
func (f *File) Configuration() (Configuration, error) {
	cfg := Default()
	model, apiBase, err := Selection{
		Provider: f.API.Provider,
		Model:    f.API.Model,
		APIBase:  f.API.BaseURL,
	}.Resolve()
	if err != nil {
		return Configuration{}, err
	}
	cfg.Model = model
	cfg.APIBase = apiBase
	cfg.APIKey = strings.TrimSpace(f.API.Key)
	if f.Behavior.DelayMS != nil {
		cfg.DelayMS = *f.Behavior.DelayMS
	}
	if f.Behavior.RetryMode != "" {
		if cfg.Retry, err = ParseRetryMode(f.Behavior.RetryMode); err != nil {
			return Configuration{}, err
		}
	}
	cfg.Debug = f.Behavior.Debug
	if f.Context.TokenBudget != nil {
		cfg.Context.TokenBudget = *f.Context.TokenBudget
	}
	if f.Context.Truncation != "" {
		if cfg.Context.Truncation, err = ParseTruncation(f.Context.Truncation); err != nil {
			return Configuration{}, err
		}
	}
	if f.Context.Cache != "" {
		if cfg.Context.Cache, err = ParseCacheMode(f.Context.Cache); err != nil {
			return Configuration{}, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}
