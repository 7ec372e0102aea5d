// Package ledger derives registration keys, persists install records, and
// generates the uninstaller that removes a registered variant.
package ledger

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/felix3322/potplayer-translate-installer/internal/messages"
	"github.com/felix3322/potplayer-translate-installer/internal/variant"
)

// KeyPrefix namespaces every registration key.
const KeyPrefix = "PotPlayer_ChatGPT_Translate_"

// Record describes one registered (install directory, variant) pair.
type Record struct {
	Key             string `toml:"key"`
	DisplayName     string `toml:"display_name"`
	DisplayVersion  string `toml:"display_version"`
	InstallLocation string `toml:"install_location"`
	UninstallString string `toml:"uninstall_string"`
	Publisher       string `toml:"publisher"`
	DisplayIcon     string `toml:"display_icon"`
	ContextType     string `toml:"context_type"`
}

// Key returns the registration key for installDir and v. The directory is made
// absolute and lower-cased before hashing, so the key is stable across runs.
func Key(installDir string, v variant.ID) (string, error) {
	if strings.TrimSpace(installDir) == "" {
		return "", fmt.Errorf(messages.LedgerInstallDirRequired)
	}
	abs, err := filepath.Abs(installDir)
	if err != nil {
		return "", fmt.Errorf(messages.LedgerResolveDirFailedFmt, installDir, err)
	}
	sum := md5.Sum([]byte(strings.ToLower(abs) + "|" + string(v)))
	return KeyPrefix + hex.EncodeToString(sum[:])[:8], nil
}

// LocationKind says where a Store keeps a record.
type LocationKind int

const (
	// LocationFile is a record file on disk.
	LocationFile LocationKind = iota + 1
	// LocationRegistry is a key in the Windows registry.
	LocationRegistry
)

// Location identifies where a record lives so an uninstaller can remove it.
type Location struct {
	Kind LocationKind
	Path string
}

// Store persists registration records.
type Store interface {
	// Find returns the record for key; found is false when none exists.
	Find(key string) (rec Record, found bool, err error)
	// Write creates or replaces the record under rec.Key.
	Write(rec Record) error
	// Delete removes the record for key. Deleting a missing record is not an error.
	Delete(key string) error
	// Locate returns where the record for key is kept.
	Locate(key string) Location
}

// FindExisting looks up the record registered for installDir and v.
func FindExisting(store Store, installDir string, v variant.ID) (Record, bool, error) {
	key, err := Key(installDir, v)
	if err != nil {
		return Record{}, false, err
	}
	return store.Find(key)
}
