package main

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/felix3322/potplayer-translate-installer/internal/ledger"
	"github.com/felix3322/potplayer-translate-installer/internal/testutil"
	"github.com/felix3322/potplayer-translate-installer/internal/wizard"
)

type cliEnv struct {
	src   string
	dir   string
	store *ledger.FileStore
}

// setupCLI points the commands at a temp bundle and record store and makes
// stdin look like a pipe.
func setupCLI(t *testing.T) cliEnv {
	t.Helper()
	root := t.TempDir()
	src := filepath.Join(root, "bundle")
	require.NoError(t, os.MkdirAll(src, 0o755))
	testutil.WriteBundle(t, src)
	store, err := ledger.NewFileStore(filepath.Join(root, "registrations"))
	require.NoError(t, err)

	origStore, origTerminal, origExe, origUI := openStore, isTerminal, executablePath, newUI
	t.Cleanup(func() {
		openStore, isTerminal, executablePath, newUI = origStore, origTerminal, origExe, origUI
	})
	openStore = func() (ledger.Store, error) { return store, nil }
	isTerminal = func() bool { return false }
	executablePath = func() (string, error) { return filepath.Join(src, "ppt-install"), nil }
	newUI = func() wizard.UI { panic("unexpected interactive UI") }

	return cliEnv{src: src, dir: filepath.Join(root, "Translate"), store: store}
}

// lockedBuffer collects stdout and stderr, which are written from the
// orchestrator and driver goroutines at once.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func runCLI(args ...string) (string, error) {
	var out lockedBuffer
	err := execute(append([]string{"ppt-install"}, args...), &out, &out)
	return out.String(), err
}
