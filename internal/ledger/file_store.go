package ledger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/felix3322/potplayer-translate-installer/internal/fsutil"
	"github.com/felix3322/potplayer-translate-installer/internal/messages"
)

// DefaultFileStoreDir is where records are kept on systems without a registry.
const DefaultFileStoreDir = "~/.config/potplayer-chatgpt-translate/registrations"

// EnvStoreDir overrides the record directory of the default file store.
const EnvStoreDir = "PPT_INSTALL_REGISTRY_DIR"

// FileStore keeps one TOML file per record under Dir.
type FileStore struct {
	Dir string
}

// NewFileStore returns a store rooted at dir; a leading "~" is expanded.
func NewFileStore(dir string) (*FileStore, error) {
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return nil, fmt.Errorf(messages.LedgerExpandDirFailedFmt, dir, err)
	}
	return &FileStore{Dir: expanded}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.Dir, key+".toml")
}

// Find reads the record file for key.
func (s *FileStore) Find(key string) (Record, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, false, nil
		}
		return Record{}, false, fmt.Errorf(messages.LedgerReadFailedFmt, key, err)
	}
	var rec Record
	if err := toml.Unmarshal(data, &rec); err != nil {
		return Record{}, false, fmt.Errorf(messages.LedgerDecodeFailedFmt, key, err)
	}
	if strings.TrimSpace(rec.Key) == "" {
		rec.Key = key
	}
	return rec, true, nil
}

// Write atomically replaces the record file for rec.Key.
func (s *FileStore) Write(rec Record) error {
	if strings.TrimSpace(rec.Key) == "" {
		return fmt.Errorf(messages.LedgerKeyRequired)
	}
	data, err := toml.Marshal(rec)
	if err != nil {
		return fmt.Errorf(messages.LedgerEncodeFailedFmt, rec.Key, err)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf(messages.LedgerWriteFailedFmt, rec.Key, err)
	}
	if err := fsutil.WriteFileAtomic(s.path(rec.Key), data, 0o644); err != nil {
		return fmt.Errorf(messages.LedgerWriteFailedFmt, rec.Key, err)
	}
	return nil
}

// Delete removes the record file for key.
func (s *FileStore) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf(messages.LedgerDeleteFailedFmt, key, err)
	}
	return nil
}

// Locate returns the record file path for key.
func (s *FileStore) Locate(key string) Location {
	return Location{Kind: LocationFile, Path: s.path(key)}
}

func dirOverride() bool {
	return strings.TrimSpace(os.Getenv(EnvStoreDir)) != ""
}

// defaultFileStore honors EnvStoreDir before falling back to DefaultFileStoreDir.
func defaultFileStore() (*FileStore, error) {
	if dirOverride() {
		return NewFileStore(strings.TrimSpace(os.Getenv(EnvStoreDir)))
	}
	return NewFileStore(DefaultFileStoreDir)
}
