// Package version holds the product identity stamped into installed artifacts
// and registration records.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/felix3322/potplayer-translate-installer/internal/messages"
)

const (
	// Product is the display name of the installed plugin.
	Product = "PotPlayer ChatGPT Translate"
	// Plugin is the plugin version written into registration records.
	Plugin = "1.7"
	// Publisher is the publisher recorded alongside each registration.
	Publisher = "Felix3322"
)

// DisplayName formats the registration display name for a variant label.
func DisplayName(label string) string {
	return fmt.Sprintf("%s v%s [%s]", Product, Plugin, label)
}

// Compare compares two plugin versions. Versions may omit the patch segment
// (for example "1.7") or carry a leading "v".
// It returns -1, 0, or 1 when a is older than, equal to, or newer than b.
func Compare(a string, b string) (int, error) {
	va, err := parse(a)
	if err != nil {
		return 0, err
	}
	vb, err := parse(b)
	if err != nil {
		return 0, err
	}
	return va.Compare(vb), nil
}

func parse(raw string) (*semver.Version, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf(messages.VersionRequired)
	}
	v, err := semver.NewVersion(trimmed)
	if err != nil {
		return nil, fmt.Errorf(messages.VersionInvalidFmt, raw, err)
	}
	return v, nil
}
