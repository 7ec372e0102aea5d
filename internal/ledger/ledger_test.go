package ledger

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felix3322/potplayer-translate-installer/internal/fsutil"
	"github.com/felix3322/potplayer-translate-installer/internal/testutil"
	"github.com/felix3322/potplayer-translate-installer/internal/variant"
)

func TestKeyIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	first, err := Key(dir, variant.WithoutContext)
	require.NoError(t, err)
	second, err := Key(dir, variant.WithoutContext)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, KeyPrefix))
	assert.Len(t, strings.TrimPrefix(first, KeyPrefix), 8)
}

func TestKeyKnownValue(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("absolute POSIX path")
	}
	// md5("/opt/potplayer/translate|without_context")[:8]
	key, err := Key("/opt/PotPlayer/Translate", variant.WithoutContext)
	require.NoError(t, err)
	assert.Equal(t, "PotPlayer_ChatGPT_Translate_ad36c864", key)
}

func TestKeyNormalizesPath(t *testing.T) {
	dir := t.TempDir()
	upper, err := Key(strings.ToUpper(dir), variant.WithContext)
	require.NoError(t, err)
	lower, err := Key(strings.ToLower(dir), variant.WithContext)
	require.NoError(t, err)
	assert.Equal(t, upper, lower)

	dotted, err := Key(filepath.Join(dir, "sub", ".."), variant.WithContext)
	require.NoError(t, err)
	plain, err := Key(dir, variant.WithContext)
	require.NoError(t, err)
	assert.Equal(t, plain, dotted)

	testutil.WithWorkingDir(t, dir, func() {
		relative, err := Key(".", variant.WithContext)
		require.NoError(t, err)
		resolved, err := filepath.EvalSymlinks(dir)
		require.NoError(t, err)
		expected, err := Key(resolved, variant.WithContext)
		require.NoError(t, err)
		assert.Equal(t, expected, relative)
	})
}

func TestKeyDependsOnVariant(t *testing.T) {
	dir := t.TempDir()
	with, err := Key(dir, variant.WithContext)
	require.NoError(t, err)
	without, err := Key(dir, variant.WithoutContext)
	require.NoError(t, err)
	assert.NotEqual(t, with, without)
}

func TestKeyRequiresDir(t *testing.T) {
	_, err := Key("  ", variant.WithContext)
	require.Error(t, err)
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, found, err := store.Find("missing")
	require.NoError(t, err)
	assert.False(t, found)

	rec := Record{
		Key:             KeyPrefix + "deadbeef",
		DisplayName:     "PotPlayer ChatGPT Translate v1.7 [Without context]",
		DisplayVersion:  "1.7",
		InstallLocation: "/opt/translate",
		UninstallString: "/opt/translate/tools/uninstaller.sh",
		ContextType:     string(variant.WithoutContext),
	}
	require.NoError(t, store.Write(rec))

	got, found, err := store.Find(rec.Key)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, rec, got)

	rec.DisplayVersion = "1.8"
	require.NoError(t, store.Write(rec))
	entries, err := os.ReadDir(store.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "rewriting a record must replace it in place")

	require.NoError(t, store.Delete(rec.Key))
	require.NoError(t, store.Delete(rec.Key))
	_, found, err = store.Find(rec.Key)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStoreRejectsCorruptRecord(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir, "bad.toml"), []byte("= nope"), 0o644))

	_, _, err = store.Find("bad")
	require.Error(t, err)
}

func TestFileStoreWriteRequiresKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.Error(t, store.Write(Record{}))
}

func TestFindExisting(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	installDir := t.TempDir()
	key, err := Key(installDir, variant.WithContext)
	require.NoError(t, err)
	require.NoError(t, store.Write(Record{Key: key, DisplayVersion: "1.6"}))

	rec, found, err := FindExisting(store, installDir, variant.WithContext)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "1.6", rec.DisplayVersion)

	_, found, err = FindExisting(store, installDir, variant.WithoutContext)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDefaultStoreHonorsEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvStoreDir, dir)

	store, err := DefaultStore()
	require.NoError(t, err)
	fileStore, ok := store.(*FileStore)
	require.True(t, ok)
	assert.Equal(t, dir, fileStore.Dir)
}

func TestRenderBatchUninstaller(t *testing.T) {
	script := RenderUninstaller([]Target{
		{Path: `C:\PotPlayer\Translate\a.as`},
		{Path: `C:\PotPlayer\Translate\cache`, Dir: true},
	}, Location{Kind: LocationRegistry, Path: `HKLM\SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall\K`}, FlavorBatch)

	lines := strings.Split(strings.TrimRight(strings.ReplaceAll(script, "\r\n", "\n"), "\n"), "\n")
	assert.Equal(t, "@echo off", lines[0])
	assert.Equal(t, []string{
		`del "C:\PotPlayer\Translate\a.as" /f /q`,
		`rmdir /s /q "C:\PotPlayer\Translate\cache"`,
		`del "%~f0" /f /q`,
		`reg delete "HKLM\SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall\K" /f`,
		``,
		`exit`,
	}, lines[len(lines)-6:])
	assert.True(t, strings.HasSuffix(script, "\r\n"))
}

func TestRenderShellUninstallerQuotes(t *testing.T) {
	script := RenderUninstaller([]Target{{Path: "/x/it's.as"}}, Location{Kind: LocationFile, Path: "/r/k.toml"}, FlavorShell)

	assert.True(t, strings.HasPrefix(script, "#!/bin/sh\n"))
	assert.Contains(t, script, `rm -f -- '/x/it'\''s.as'`)
	selfIdx := strings.Index(script, `rm -f -- "$0"`)
	recordIdx := strings.Index(script, `rm -f -- '/r/k.toml'`)
	fileIdx := strings.Index(script, `/x/it`)
	require.True(t, fileIdx >= 0 && selfIdx >= 0 && recordIdx >= 0)
	assert.Less(t, fileIdx, selfIdx)
	assert.Less(t, selfIdx, recordIdx)
}

type osFiles struct{}

func (osFiles) Stat(name string) (os.FileInfo, error) { return os.Stat(name) }

func (osFiles) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return fsutil.WriteFileAtomic(filename, data, perm)
}

func TestGeneratedShellUninstallerRemovesEverything(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
	installDir := t.TempDir()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	script := filepath.Join(installDir, "SubtitleTranslate - ChatGPT.as")
	icon := filepath.Join(installDir, "SubtitleTranslate - ChatGPT.ico")
	extraDir := filepath.Join(installDir, "cache")
	require.NoError(t, os.WriteFile(script, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(icon, []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(extraDir, "nested"), 0o755))
	keep := filepath.Join(installDir, "unrelated.as")
	require.NoError(t, os.WriteFile(keep, []byte("x"), 0o644))

	key, err := Key(installDir, variant.WithContext)
	require.NoError(t, err)
	require.NoError(t, store.Write(Record{Key: key}))

	require.NoError(t, os.MkdirAll(filepath.Join(installDir, ToolsDir), 0o755))
	uninstaller := UninstallerPath(installDir, key, FlavorShell)
	require.NoError(t, GenerateUninstaller(osFiles{}, uninstaller, []string{script, icon, extraDir, uninstaller}, key, store, FlavorShell))

	require.NoError(t, RunUninstaller(context.Background(), uninstaller, FlavorShell))

	for _, gone := range []string{script, icon, extraDir, uninstaller, store.Locate(key).Path} {
		_, err := os.Stat(gone)
		assert.ErrorIs(t, err, os.ErrNotExist, gone)
	}
	_, err = os.Stat(keep)
	assert.NoError(t, err)
}

func TestUninstallerPath(t *testing.T) {
	path := UninstallerPath(filepath.FromSlash("/opt/t"), "K", FlavorBatch)
	assert.Equal(t, filepath.Join(filepath.FromSlash("/opt/t"), "tools", "uninstaller_K.bat"), path)
	assert.Equal(t, ".sh", FlavorShell.Ext())
}
