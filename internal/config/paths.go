package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/felix3322/potplayer-translate-installer/internal/messages"
)

// DefaultFileName is the install file looked up in the working directory.
const DefaultFileName = "ppt-install.toml"

// DefaultFilePath returns the install file path inside dir.
func DefaultFilePath(dir string) string {
	return filepath.Join(dir, DefaultFileName)
}

// ResolvePath expands a leading "~" and anchors a relative p at base.
// Empty input stays empty.
func ResolvePath(base string, p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigExpandPathFailedFmt, p, err)
	}
	if filepath.IsAbs(expanded) {
		return filepath.Clean(expanded), nil
	}
	return filepath.Join(base, expanded), nil
}

// resolvePaths anchors the file's path fields at the directory of source.
func (f *File) resolvePaths(source string) error {
	base := filepath.Dir(source)
	for _, p := range []*string{&f.Install.Dir, &f.Install.SourceDir, &f.API.EnvFile} {
		resolved, err := ResolvePath(base, *p)
		if err != nil {
			return err
		}
		*p = resolved
	}
	return nil
}
