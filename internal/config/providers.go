package config

import (
	"fmt"
	"strings"

	"github.com/felix3322/potplayer-translate-installer/internal/messages"
)

// DefaultAPIBase is the API root used when none is configured.
const DefaultAPIBase = "https://api.openai.com/v1"

// CustomProvider selects a user-supplied model and API base.
const CustomProvider = "custom"

// Provider is a preset model with its API root and billing page.
type Provider struct {
	Name        string
	Model       string
	APIBase     string
	PurchaseURL string
}

const openAIBilling = "https://platform.openai.com/account/billing"

var providers = []Provider{
	{Name: "gpt-5", Model: "gpt-5", APIBase: DefaultAPIBase, PurchaseURL: openAIBilling},
	{Name: "gpt-5-mini", Model: "gpt-5-mini", APIBase: DefaultAPIBase, PurchaseURL: openAIBilling},
	{Name: "gpt-5-nano", Model: "gpt-5-nano", APIBase: DefaultAPIBase, PurchaseURL: openAIBilling},
	{Name: "gpt-4o", Model: "gpt-4o", APIBase: DefaultAPIBase, PurchaseURL: openAIBilling},
	{Name: "gpt-4.1", Model: "gpt-4.1", APIBase: DefaultAPIBase, PurchaseURL: openAIBilling},
	{Name: "gpt-4.1-mini", Model: "gpt-4.1-mini", APIBase: DefaultAPIBase, PurchaseURL: openAIBilling},
	{Name: "glm-4", Model: "glm-4", APIBase: "https://open.bigmodel.cn/api/paas/v4", PurchaseURL: "https://open.bigmodel.cn/billing"},
}

// Providers returns the presets in display order.
func Providers() []Provider {
	out := make([]Provider, len(providers))
	copy(out, providers)
	return out
}

// LookupProvider returns the preset named name.
func LookupProvider(name string) (Provider, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range providers {
		if p.Name == name {
			return p, true
		}
	}
	return Provider{}, false
}

// MatchProvider returns the preset whose model and API root equal the given
// pair, or CustomProvider.
func MatchProvider(model string, apiBase string) string {
	base := NormalizeAPIBase(apiBase)
	for _, p := range providers {
		if p.Model == strings.TrimSpace(model) && p.APIBase == base {
			return p.Name
		}
	}
	return CustomProvider
}

// Selection is a provider choice as entered by the user.
type Selection struct {
	// Provider is a preset name or CustomProvider. Empty means DefaultProvider.
	Provider string
	// Model is required for CustomProvider and ignored otherwise.
	Model string
	// APIBase overrides the preset root when set.
	APIBase string
}

// Resolve returns the model and normalized API root for s.
func (s Selection) Resolve() (model string, apiBase string, err error) {
	name := strings.ToLower(strings.TrimSpace(s.Provider))
	if name == "" {
		name = DefaultProvider
	}
	if name == CustomProvider {
		model = strings.TrimSpace(s.Model)
		if model == "" {
			return "", "", fmt.Errorf("%w: %s", ErrConfigValidation, messages.ConfigCustomModelRequired)
		}
		return model, NormalizeAPIBase(s.APIBase), nil
	}
	preset, ok := LookupProvider(name)
	if !ok {
		return "", "", fmt.Errorf("%w: "+messages.ConfigProviderUnknownFmt, ErrConfigValidation, s.Provider)
	}
	apiBase = preset.APIBase
	if strings.TrimSpace(s.APIBase) != "" {
		apiBase = NormalizeAPIBase(s.APIBase)
	}
	return preset.Model, apiBase, nil
}

// NormalizeAPIBase trims whitespace and trailing slashes and strips a full
// endpoint path down to the API root. Empty input yields DefaultAPIBase.
func NormalizeAPIBase(raw string) string {
	u := strings.TrimRight(strings.TrimSpace(raw), "/")
	if u == "" {
		return DefaultAPIBase
	}
	for _, tail := range []string{"/chat/completions", "/responses"} {
		if strings.HasSuffix(u, tail) {
			return strings.TrimSuffix(u, tail)
		}
	}
	return u
}
