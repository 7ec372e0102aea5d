// Package variant describes the installable plugin flavors and the static
// manifest of files each one deploys.
package variant

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/felix3322/potplayer-translate-installer/internal/messages"
)

// ID identifies a plugin variant.
type ID string

const (
	// WithContext keeps prior subtitle lines as translation context.
	WithContext ID = "with_context"
	// WithoutContext translates each subtitle line independently.
	WithoutContext ID = "without_context"
)

// TemplatedExt is the extension of plugin scripts that receive user configuration.
const TemplatedExt = ".as"

// FilePair maps a bundled source file to its destination file name.
type FilePair struct {
	Source string
	Dest   string
}

var manifest = map[ID][]FilePair{
	WithContext: {
		{Source: "SubtitleTranslate - ChatGPT.as", Dest: "SubtitleTranslate - ChatGPT.as"},
		{Source: "SubtitleTranslate - ChatGPT.ico", Dest: "SubtitleTranslate - ChatGPT.ico"},
	},
	WithoutContext: {
		{Source: "SubtitleTranslate - ChatGPT - Without Context.as", Dest: "SubtitleTranslate - ChatGPT - Without Context.as"},
		{Source: "SubtitleTranslate - ChatGPT - Without Context.ico", Dest: "SubtitleTranslate - ChatGPT - Without Context.ico"},
	},
}

// All returns every known variant in presentation order.
func All() []ID {
	return []ID{WithContext, WithoutContext}
}

// Parse converts user input into a variant ID. Hyphens and case are ignored.
func Parse(raw string) (ID, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "-", "_")
	for _, id := range All() {
		if string(id) == normalized {
			return id, nil
		}
	}
	return "", fmt.Errorf(messages.VariantUnknownFmt, raw)
}

// Files returns a copy of the manifest entries for id in install order.
// Unknown variants have no files.
func Files(id ID) []FilePair {
	pairs := manifest[id]
	out := make([]FilePair, len(pairs))
	copy(out, pairs)
	return out
}

// SupportsContext reports whether the variant accepts context settings.
func (id ID) SupportsContext() bool {
	return id == WithContext
}

// LabelKey returns the language-table key of the variant's short label.
func (id ID) LabelKey() string {
	return string(id) + "_short"
}

// IsTemplated reports whether a destination file name receives configuration.
func IsTemplated(name string) bool {
	return strings.EqualFold(filepath.Ext(name), TemplatedExt)
}
