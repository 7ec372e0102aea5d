// Package lang loads the installer's localized strings and picks a language
// for a user-supplied tag.
package lang

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/felix3322/potplayer-translate-installer/internal/messages"
	"github.com/felix3322/potplayer-translate-installer/internal/version"
)

//go:embed strings.yaml
var embeddedStrings []byte

// Supported language codes. English is the fallback.
const (
	English = "en"
	Chinese = "zh"
)

// VersionPlaceholder is replaced with the plugin version at load time.
const VersionPlaceholder = "{VERSION}"

// Table is the read-only set of strings for every supported language.
type Table struct {
	langs   map[string]map[string]string
	codes   []string
	matcher language.Matcher
}

// Load parses the bundled string table.
func Load() (*Table, error) {
	return Parse(embeddedStrings, version.Plugin)
}

// Parse decodes a YAML document of language code to key to text. Every
// language must define the same keys as English.
func Parse(data []byte, pluginVersion string) (*Table, error) {
	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf(messages.LangDecodeFailedFmt, err)
	}
	base, ok := raw[English]
	if !ok {
		return nil, fmt.Errorf(messages.LangMissingLanguageFmt, English)
	}

	codes := []string{English}
	for code := range raw {
		if code != English {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes[1:])

	tags := make([]language.Tag, 0, len(codes))
	langs := make(map[string]map[string]string, len(codes))
	for _, code := range codes {
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf(messages.LangInvalidCodeFmt, code, err)
		}
		entries := raw[code]
		for key := range base {
			if _, ok := entries[key]; !ok {
				return nil, fmt.Errorf(messages.LangMissingKeyFmt, code, key)
			}
		}
		expanded := make(map[string]string, len(entries))
		for key, text := range entries {
			expanded[key] = strings.ReplaceAll(text, VersionPlaceholder, pluginVersion)
		}
		tags = append(tags, tag)
		langs[code] = expanded
	}

	return &Table{
		langs:   langs,
		codes:   codes,
		matcher: language.NewMatcher(tags),
	}, nil
}

// Codes returns the supported language codes, English first.
func (t *Table) Codes() []string {
	out := make([]string, len(t.codes))
	copy(out, t.codes)
	return out
}

// Match returns the supported code closest to tag. Unknown or malformed
// tags select English.
func (t *Table) Match(tag string) string {
	parsed, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return English
	}
	_, index, confidence := t.matcher.Match(parsed)
	if confidence == language.No {
		return English
	}
	return t.codes[index]
}

// For returns the strings of the language closest to tag.
func (t *Table) For(tag string) Strings {
	code := t.Match(tag)
	return Strings{
		code:     code,
		entries:  t.langs[code],
		fallback: t.langs[English],
		printer:  message.NewPrinter(language.Make(code)),
	}
}

// Bilingual returns the English and Chinese texts for key separated by a
// blank line. args are applied to both.
func (t *Table) Bilingual(key string, args ...any) string {
	return t.For(English).Format(key, args...) + "\n\n" + t.For(Chinese).Format(key, args...)
}

// BilingualReason is Bilingual with the text of reasonKey, taken from the
// same language, as the only argument.
func (t *Table) BilingualReason(key string, reasonKey string) string {
	en, zh := t.For(English), t.For(Chinese)
	return en.Format(key, en.Get(reasonKey)) + "\n\n" + zh.Format(key, zh.Get(reasonKey))
}

// Strings is the string set of one language.
type Strings struct {
	code     string
	entries  map[string]string
	fallback map[string]string
	printer  *message.Printer
}

// Lang returns the language code of s.
func (s Strings) Lang() string {
	return s.code
}

// Get returns the text for key, falling back to English and then to the key.
func (s Strings) Get(key string) string {
	if text, ok := s.entries[key]; ok {
		return text
	}
	if text, ok := s.fallback[key]; ok {
		return text
	}
	return key
}

// Format applies args to the text for key.
func (s Strings) Format(key string, args ...any) string {
	text := s.Get(key)
	if len(args) == 0 {
		return text
	}
	if s.printer == nil {
		return fmt.Sprintf(text, args...)
	}
	return s.printer.Sprintf(text, args...)
}
