package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/felix3322/potplayer-translate-installer/internal/variant"
)

const sampleFile = `
[install]
dir = "Translate"
variants = ["without-context", "with_context", "without_context"]
source_dir = "bundle"
language = "zh"

[api]
provider = "gpt-4o"
key = "sk-test"
env_file = ".env"

[behavior]
delay_ms = 500
retry_mode = "once"
debug = true

[context]
token_budget = 0
truncation = "smart_trim"
cache = "off"
`

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := DefaultFilePath(dir)
	if err := os.WriteFile(path, []byte(sampleFile), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if f.Install.Dir != filepath.Join(dir, "Translate") {
		t.Fatalf("dir not anchored: %q", f.Install.Dir)
	}
	if f.Install.SourceDir != filepath.Join(dir, "bundle") || f.API.EnvFile != filepath.Join(dir, ".env") {
		t.Fatalf("paths not anchored: %q %q", f.Install.SourceDir, f.API.EnvFile)
	}

	ids, err := f.VariantIDs()
	if err != nil {
		t.Fatalf("VariantIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != variant.WithoutContext || ids[1] != variant.WithContext {
		t.Fatalf("unexpected variants %v", ids)
	}

	cfg, err := f.Configuration()
	if err != nil {
		t.Fatalf("Configuration: %v", err)
	}
	if cfg.Model != "gpt-4o" || cfg.APIBase != DefaultAPIBase || cfg.APIKey != "sk-test" {
		t.Fatalf("unexpected api settings %+v", cfg)
	}
	if cfg.DelayMS != 500 || cfg.Retry != RetryOnce || !cfg.Debug {
		t.Fatalf("unexpected behavior %+v", cfg)
	}
	if cfg.Context.TokenBudget != 0 || cfg.Context.Truncation != TruncationSmartTrim || cfg.Context.Cache != CacheOff {
		t.Fatalf("unexpected context %+v", cfg.Context)
	}
}

func TestParseFileDefaults(t *testing.T) {
	f, err := ParseFile([]byte("[install]\nvariants = [\"with_context\"]\n"), "inline")
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	cfg, err := f.Configuration()
	if err != nil {
		t.Fatalf("Configuration: %v", err)
	}
	want := Default()
	if cfg != want {
		t.Fatalf("expected defaults %+v, got %+v", want, cfg)
	}
}

func TestParseFileUnknownKey(t *testing.T) {
	_, err := ParseFile([]byte("[behavior]\ndelay = 5\n"), "inline")
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !errors.Is(err, ErrConfigValidation) {
		t.Fatalf("expected ErrConfigValidation, got %v", err)
	}
}

func TestParseFileSyntaxError(t *testing.T) {
	_, err := ParseFile([]byte("[install\n"), "inline")
	if err == nil {
		t.Fatal("expected syntax error")
	}
	if errors.Is(err, ErrConfigValidation) {
		t.Fatal("syntax errors are not validation errors")
	}
}

func TestParseFileInvalidValues(t *testing.T) {
	tests := map[string]string{
		"variant":    "[install]\nvariants = [\"everything\"]\n",
		"provider":   "[api]\nprovider = \"gpt-2\"\n",
		"delay":      "[behavior]\ndelay_ms = -1\n",
		"retry":      "[behavior]\nretry_mode = \"forever\"\n",
		"budget":     "[context]\ntoken_budget = -3\n",
		"big budget": "[context]\ntoken_budget = 200001\n",
		"truncation": "[context]\ntruncation = \"middle\"\n",
		"cache":      "[context]\ncache = \"always\"\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseFile([]byte(data), "inline")
			if !errors.Is(err, ErrConfigValidation) {
				t.Fatalf("expected ErrConfigValidation, got %v", err)
			}
			if !strings.Contains(err.Error(), "inline") {
				t.Fatalf("error must name the source: %v", err)
			}
		})
	}
}

func TestCustomProviderRequiresModel(t *testing.T) {
	f, err := ParseFile([]byte("[api]\nprovider = \"custom\"\n"), "inline")
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if _, err := f.Configuration(); !errors.Is(err, ErrConfigValidation) {
		t.Fatalf("expected ErrConfigValidation, got %v", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestResolvePath(t *testing.T) {
	got, err := ResolvePath("/base", "")
	if err != nil || got != "" {
		t.Fatalf("empty path: %q %v", got, err)
	}
	abs := filepath.Join(t.TempDir(), "x")
	if got, _ := ResolvePath("/base", abs); got != abs {
		t.Fatalf("absolute path changed: %q", got)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got, _ := ResolvePath("/base", "~/plugins"); got != filepath.Join(home, "plugins") {
		t.Fatalf("home not expanded: %q", got)
	}
}
