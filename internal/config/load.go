package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/felix3322/potplayer-translate-installer/internal/messages"
)

// ErrConfigValidation is a sentinel that wraps config validation failures
// (as opposed to TOML syntax, filesystem, or other loading errors).
// Callers can use errors.Is(err, ErrConfigValidation) to distinguish
// validation problems from other LoadFile failure modes.
var ErrConfigValidation = errors.New("config validation failed")

// File is the TOML install file used for non-interactive installs.
type File struct {
	Install  InstallSection  `toml:"install"`
	API      APISection      `toml:"api"`
	Behavior BehaviorSection `toml:"behavior"`
	Context  ContextSection  `toml:"context"`
}

// InstallSection names where and what to install.
type InstallSection struct {
	Dir       string   `toml:"dir"`
	Variants  []string `toml:"variants"`
	SourceDir string   `toml:"source_dir"`
	Language  string   `toml:"language"`
}

// APISection selects the model and credentials.
type APISection struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url"`
	Key      string `toml:"key"`
	EnvFile  string `toml:"env_file"`
}

// BehaviorSection holds the plugin call settings.
type BehaviorSection struct {
	DelayMS   *int   `toml:"delay_ms"`
	RetryMode string `toml:"retry_mode"`
	Debug     bool   `toml:"debug"`
}

// ContextSection holds settings for the context variant.
type ContextSection struct {
	TokenBudget *int   `toml:"token_budget"`
	Truncation  string `toml:"truncation"`
	Cache       string `toml:"cache"`
}

// LoadFile reads and validates the install file at path. Relative paths in
// the file are resolved against the file's directory.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigMissingFileFmt, path, err)
	}
	f, err := ParseFile(data, path)
	if err != nil {
		return nil, err
	}
	if err := f.resolvePaths(path); err != nil {
		return nil, err
	}
	return f, nil
}

// ParseFile parses and validates install file TOML data.
// data is the TOML content; source is used in error messages.
func ParseFile(data []byte, source string) (*File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt, ErrConfigValidation, source, err)
	}
	if err := f.Validate(source); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}
	return &f, nil
}

// decodeStrict re-decodes the TOML data with strict unknown-field rejection.
// This catches misspelled keys that toml.Unmarshal silently ignores.
func decodeStrict(data []byte) error {
	var f File
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&f)
}
