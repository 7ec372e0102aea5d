//go:build windows

package ledger

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"

	"github.com/felix3322/potplayer-translate-installer/internal/messages"
)

// UninstallRoot is the HKLM subtree Windows reads installed programs from.
const UninstallRoot = `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`

// Registry value names written for each record.
const (
	valueDisplayName     = "DisplayName"
	valueDisplayVersion  = "DisplayVersion"
	valueInstallLocation = "InstallLocation"
	valueUninstallString = "UninstallString"
	valuePublisher       = "Publisher"
	valueDisplayIcon     = "DisplayIcon"
	valueContextType     = "ContextType"
)

// RegistryStore keeps records under HKLM\UninstallRoot.
type RegistryStore struct{}

func registryPath(key string) string {
	return UninstallRoot + `\` + key
}

// Find reads the record values for key.
func (RegistryStore) Find(key string) (Record, bool, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, registryPath(key), registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return Record{}, false, nil
		}
		return Record{}, false, fmt.Errorf(messages.LedgerReadFailedFmt, key, err)
	}
	defer k.Close()

	rec := Record{Key: key}
	fields := []struct {
		name   string
		target *string
	}{
		{valueDisplayName, &rec.DisplayName},
		{valueDisplayVersion, &rec.DisplayVersion},
		{valueInstallLocation, &rec.InstallLocation},
		{valueUninstallString, &rec.UninstallString},
		{valuePublisher, &rec.Publisher},
		{valueDisplayIcon, &rec.DisplayIcon},
		{valueContextType, &rec.ContextType},
	}
	for _, field := range fields {
		value, _, err := k.GetStringValue(field.name)
		if err != nil {
			if errors.Is(err, registry.ErrNotExist) {
				continue
			}
			return Record{}, false, fmt.Errorf(messages.LedgerReadFailedFmt, key, err)
		}
		*field.target = value
	}
	return rec, true, nil
}

// Write creates or replaces the registry key for rec.
func (RegistryStore) Write(rec Record) error {
	if rec.Key == "" {
		return fmt.Errorf(messages.LedgerKeyRequired)
	}
	k, _, err := registry.CreateKey(registry.LOCAL_MACHINE, registryPath(rec.Key), registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf(messages.LedgerWriteFailedFmt, rec.Key, err)
	}
	defer k.Close()

	values := []struct {
		name  string
		value string
	}{
		{valueDisplayName, rec.DisplayName},
		{valueUninstallString, rec.UninstallString},
		{valueInstallLocation, rec.InstallLocation},
		{valuePublisher, rec.Publisher},
		{valueDisplayIcon, rec.DisplayIcon},
		{valueDisplayVersion, rec.DisplayVersion},
		{valueContextType, rec.ContextType},
	}
	for _, v := range values {
		if err := k.SetStringValue(v.name, v.value); err != nil {
			return fmt.Errorf(messages.LedgerWriteFailedFmt, rec.Key, err)
		}
	}
	return nil
}

// Delete removes the registry key for key.
func (RegistryStore) Delete(key string) error {
	if err := registry.DeleteKey(registry.LOCAL_MACHINE, registryPath(key)); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf(messages.LedgerDeleteFailedFmt, key, err)
	}
	return nil
}

// Locate returns the full registry path for key.
func (RegistryStore) Locate(key string) Location {
	return Location{Kind: LocationRegistry, Path: `HKLM\` + registryPath(key)}
}

// DefaultStore returns the registry-backed store. EnvStoreDir switches to a
// file store, which is useful for unprivileged test installs.
func DefaultStore() (Store, error) {
	if dirOverride() {
		store, err := defaultFileStore()
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return RegistryStore{}, nil
}
