package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/felix3322/potplayer-translate-installer/internal/messages"
)

//go:embed model_token_limits.json
var embeddedTokenLimits []byte

// DefaultTokenLimitKey is the fallback entry used for unknown models.
const DefaultTokenLimitKey = "default"

// TokenLimits maps model names to context window sizes in tokens.
type TokenLimits struct {
	limits map[string]int
}

// LoadTokenLimits returns the bundled token limit table.
func LoadTokenLimits() (TokenLimits, error) {
	return ParseTokenLimits(embeddedTokenLimits)
}

// ParseTokenLimits decodes a JSON object of model name to token count.
func ParseTokenLimits(data []byte) (TokenLimits, error) {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return TokenLimits{}, fmt.Errorf(messages.ConfigTokenLimitsInvalidFmt, err)
	}
	limits := make(map[string]int, len(raw))
	for model, n := range raw {
		if n <= 0 {
			return TokenLimits{}, fmt.Errorf(messages.ConfigTokenLimitNonPositiveFmt, model, n)
		}
		limits[strings.ToLower(strings.TrimSpace(model))] = n
	}
	return TokenLimits{limits: limits}, nil
}

// Limit returns the window for model, falling back to the default entry.
func (t TokenLimits) Limit(model string) (int, bool) {
	if n, ok := t.limits[strings.ToLower(strings.TrimSpace(model))]; ok {
		return n, true
	}
	n, ok := t.limits[DefaultTokenLimitKey]
	return n, ok
}

// Models returns the model names in sorted order.
func (t TokenLimits) Models() []string {
	out := make([]string, 0, len(t.limits))
	for model := range t.limits {
		out = append(out, model)
	}
	sort.Strings(out)
	return out
}

// JSON returns the table as compact JSON with sorted keys.
func (t TokenLimits) JSON() string {
	if t.limits == nil {
		return "{}"
	}
	data, err := json.Marshal(t.limits)
	if err != nil {
		return "{}"
	}
	return string(data)
}
