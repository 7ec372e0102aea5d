package wizard

import (
	"fmt"
	"slices"
	"strings"

	"github.com/felix3322/potplayer-translate-installer/internal/config"
	"github.com/felix3322/potplayer-translate-installer/internal/install"
	"github.com/felix3322/potplayer-translate-installer/internal/lang"
	"github.com/felix3322/potplayer-translate-installer/internal/messages"
	"github.com/felix3322/potplayer-translate-installer/internal/variant"
)

// Choices tracks user selections in the wizard.
type Choices struct {
	Language string
	Dir      string
	Variants []string

	// Provider is a preset name or config.CustomProvider.
	Provider string
	// Model and APIBase are only read for config.CustomProvider.
	Model   string
	APIBase string
	APIKey  string

	DelayMS int
	Retry   string
	Debug   bool

	ContextBudget int
	Truncation    string
	Cache         string
}

// NewChoices returns Choices initialized with the installer defaults.
func NewChoices() *Choices {
	def := config.Default()
	return &Choices{
		Language:      lang.English,
		Variants:      []string{string(variant.WithContext)},
		Provider:      config.DefaultProvider,
		DelayMS:       def.DelayMS,
		Retry:         def.Retry.String(),
		ContextBudget: def.Context.TokenBudget,
		Truncation:    string(def.Context.Truncation),
		Cache:         string(def.Context.Cache),
	}
}

// Clone returns a deep copy of c.
func (c *Choices) Clone() *Choices {
	if c == nil {
		return nil
	}
	out := *c
	out.Variants = slices.Clone(c.Variants)
	return &out
}

// WantsContext reports whether the context variant is selected.
func (c *Choices) WantsContext() bool {
	return slices.Contains(c.Variants, string(variant.WithContext))
}

// Endpoint returns the model and API root the choices resolve to.
func (c *Choices) Endpoint() (model string, apiBase string, err error) {
	return config.Selection{Provider: c.Provider, Model: c.Model, APIBase: c.APIBase}.Resolve()
}

// Request converts the choices into an install request. Variants keep the
// manifest order regardless of selection order.
func (c *Choices) Request(sourceDir string) (install.Request, error) {
	if strings.TrimSpace(c.Dir) == "" {
		return install.Request{}, fmt.Errorf(messages.WizardDirRequired)
	}
	model, apiBase, err := c.Endpoint()
	if err != nil {
		return install.Request{}, err
	}
	retry, err := config.ParseRetryMode(c.Retry)
	if err != nil {
		return install.Request{}, err
	}
	truncation, err := config.ParseTruncation(c.Truncation)
	if err != nil {
		return install.Request{}, err
	}
	cache, err := config.ParseCacheMode(c.Cache)
	if err != nil {
		return install.Request{}, err
	}
	cfg := config.Configuration{
		APIKey:  strings.TrimSpace(c.APIKey),
		Model:   model,
		APIBase: apiBase,
		DelayMS: c.DelayMS,
		Retry:   retry,
		Debug:   c.Debug,
		Context: config.ContextSettings{
			TokenBudget: c.ContextBudget,
			Truncation:  truncation,
			Cache:       cache,
		},
	}
	if err := cfg.Validate(); err != nil {
		return install.Request{}, err
	}

	var ids []variant.ID
	for _, id := range variant.All() {
		if slices.Contains(c.Variants, string(id)) {
			ids = append(ids, id)
		}
	}
	return install.Request{
		Dir:       c.Dir,
		Variants:  ids,
		SourceDir: sourceDir,
		Language:  c.Language,
		Config:    cfg,
	}, nil
}
