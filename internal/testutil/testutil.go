package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/felix3322/potplayer-translate-installer/internal/variant"
)

// PluginScript is a minimal plugin script carrying every placeholder.
const PluginScript = `/*
	real time subtitle translate for PotPlayer using ChatGPT API
*/

string pre_api_key = "";
string pre_selected_model = "gpt-4o-mini";
string pre_apiUrl = "https://api.openai.com/v1/chat/completions";
string pre_delay_ms = "0";
string pre_retry_mode = "0";
string pre_context_token_budget = "0";
string pre_context_truncation_mode = "drop_oldest";
string pre_context_cache_mode = "auto";
string pre_model_token_limits_json = "{}";

string GetTitle() { return "{$CP949=ChatGPT$}{$CP0=ChatGPT$}"; }
`

// IconBytes stands in for a bundled .ico file.
var IconBytes = []byte{0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x10, 0x10}

// WriteBundle writes every manifest source file of every variant into dir
// and returns dir. Scripts get PluginScript; other files get IconBytes.
func WriteBundle(t *testing.T, dir string) string {
	t.Helper()
	for _, id := range variant.All() {
		for _, pair := range variant.Files(id) {
			content := IconBytes
			if variant.IsTemplated(pair.Source) {
				content = []byte(PluginScript)
			}
			if err := os.WriteFile(filepath.Join(dir, pair.Source), content, 0o644); err != nil {
				t.Fatalf("write bundle file: %v", err)
			}
		}
	}
	return dir
}

// WithWorkingDir runs fn with dir as the current working directory and restores the previous directory.
// t is the active test; dir is the temporary working directory for fn.
func WithWorkingDir(t *testing.T, dir string, fn func()) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() {
		if err := os.Chdir(cwd); err != nil {
			t.Fatalf("restore chdir: %v", err)
		}
	}()
	fn()
}
