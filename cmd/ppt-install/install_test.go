package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felix3322/potplayer-translate-installer/internal/config"
	"github.com/felix3322/potplayer-translate-installer/internal/ledger"
	"github.com/felix3322/potplayer-translate-installer/internal/variant"
)

const withoutScript = "SubtitleTranslate - ChatGPT - Without Context.as"

func TestInstallNonInteractive(t *testing.T) {
	env := setupCLI(t)

	out, err := runCLI("install", "--dir", env.dir, "--variant", "without-context",
		"--api-key", "sk-flag", "--delay-ms", "250", "--retry-mode", "once", "--yes")
	require.NoError(t, err, out)

	script, err := os.ReadFile(filepath.Join(env.dir, withoutScript))
	require.NoError(t, err)
	assert.Contains(t, string(script), `pre_api_key = "sk-flag";`)
	assert.Contains(t, string(script), `pre_delay_ms = "250";`)
	assert.Contains(t, string(script), `pre_retry_mode = "1";`)
	assert.NoFileExists(t, filepath.Join(env.dir, "SubtitleTranslate - ChatGPT.as"))

	_, found, err := ledger.FindExisting(env.store, env.dir, variant.WithoutContext)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Contains(t, out, "success")
}

func TestInstallRerunCancelsByDefault(t *testing.T) {
	env := setupCLI(t)
	_, err := runCLI("install", "--dir", env.dir, "--source-dir", env.src, "--yes")
	require.NoError(t, err)

	_, err = runCLI("install", "--dir", env.dir, "--source-dir", env.src)
	var silent *SilentExitError
	require.True(t, errors.As(err, &silent), "got %v", err)
	assert.Equal(t, exitCancelled, silent.Code)
}

func TestInstallRerunRenames(t *testing.T) {
	env := setupCLI(t)
	_, err := runCLI("install", "--dir", env.dir, "--yes")
	require.NoError(t, err)

	_, err = runCLI("install", "--dir", env.dir, "--on-conflict", "rename", "--rename-suffix", "_v2")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(env.dir, "SubtitleTranslate - ChatGPT_v2.as"))
	assert.FileExists(t, filepath.Join(env.dir, "SubtitleTranslate - ChatGPT_v2.ico"))
}

func TestInstallFromConfigFile(t *testing.T) {
	env := setupCLI(t)
	cfgDir := t.TempDir()
	envFile := filepath.Join(cfgDir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(config.EnvAPIKey+"=sk-from-env-file\n"), 0o600))
	data := `
[install]
dir = "` + filepath.ToSlash(env.dir) + `"
variants = ["with_context"]
source_dir = "` + filepath.ToSlash(env.src) + `"

[api]
provider = "custom"
model = "my-model"
base_url = "https://llm.example/v1/chat/completions"
env_file = ".env"

[context]
token_budget = 9000
truncation = "smart_trim"
`
	cfgPath := filepath.Join(cfgDir, config.DefaultFileName)
	require.NoError(t, os.WriteFile(cfgPath, []byte(data), 0o600))

	out, err := runCLI("install", "--config", cfgPath, "--debug", "--yes")
	require.NoError(t, err, out)

	script, err := os.ReadFile(filepath.Join(env.dir, "SubtitleTranslate - ChatGPT.as"))
	require.NoError(t, err)
	text := string(script)
	assert.Contains(t, text, `pre_api_key = "sk-from-env-file";`)
	assert.Contains(t, text, `pre_selected_model = "my-model";`)
	assert.Contains(t, text, `pre_apiUrl = "https://llm.example/v1";`)
	assert.Contains(t, text, `pre_context_token_budget = "9000";`)
	assert.Contains(t, text, `pre_context_truncation_mode = "smart_trim";`)
}

func TestInstallRejectsBadInput(t *testing.T) {
	tests := map[string][]string{
		"missing dir":        {"install", "--yes"},
		"unknown variant":    {"install", "--dir", "x", "--variant", "director_cut"},
		"bad conflict":       {"install", "--dir", "x", "--on-conflict", "merge"},
		"delay out of range": {"install", "--dir", "x", "--delay-ms", "-1"},
		"bad retry":          {"install", "--dir", "x", "--retry-mode", "always"},
		"bad log level":      {"--log-level", "loud", "install", "--dir", "x"},
		"missing config":     {"install", "--config", "does-not-exist.toml"},
		"custom no model":    {"install", "--dir", "x", "--provider", "custom"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			env := setupCLI(t)
			resolved := make([]string, len(args))
			for i, arg := range args {
				if arg == "x" {
					arg = env.dir
				}
				resolved[i] = arg
			}
			_, err := runCLI(resolved...)
			require.Error(t, err)
			assert.NoDirExists(t, env.dir)
		})
	}
}

func TestInstallLogsAtDebugLevel(t *testing.T) {
	env := setupCLI(t)
	out, err := runCLI("--log-level", "debug", "install", "--dir", env.dir, "--yes")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "DBG") || strings.Contains(out, "INF"), out)
	assert.Contains(t, out, "Copying ")
}

func TestLoggerSerializesConcurrentWrites(t *testing.T) {
	f := &rootFlags{logLevel: "info"}
	var out bytes.Buffer
	log, err := f.logger(&out)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Info().Msg("tick")
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, strings.Count(out.String(), "tick"))
}
