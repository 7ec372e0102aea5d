package ledger

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/felix3322/potplayer-translate-installer/internal/messages"
	"github.com/felix3322/potplayer-translate-installer/internal/version"
)

// ToolsDir is the install subdirectory holding generated uninstallers.
const ToolsDir = "tools"

// Flavor selects the uninstaller script dialect.
type Flavor int

const (
	// FlavorShell renders a POSIX sh script.
	FlavorShell Flavor = iota + 1
	// FlavorBatch renders a Windows batch file.
	FlavorBatch
)

// DefaultFlavor returns the script dialect of the running platform.
func DefaultFlavor() Flavor {
	if runtime.GOOS == "windows" {
		return FlavorBatch
	}
	return FlavorShell
}

// Ext returns the script file extension.
func (f Flavor) Ext() string {
	if f == FlavorBatch {
		return ".bat"
	}
	return ".sh"
}

// UninstallerPath returns where the uninstaller for key is written.
func UninstallerPath(installDir string, key string, f Flavor) string {
	return filepath.Join(installDir, ToolsDir, "uninstaller_"+key+f.Ext())
}

// Target is one tracked artifact removed by an uninstaller.
type Target struct {
	Path string
	Dir  bool
}

// Files is the filesystem surface needed to write an uninstaller.
type Files interface {
	Stat(name string) (os.FileInfo, error)
	WriteFileAtomic(filename string, data []byte, perm os.FileMode) error
}

// GenerateUninstaller writes an executable script at path that deletes every
// tracked path (directories recursively), then itself, then the registration
// entry for key. The registration entry goes last so an interrupted uninstall
// still leaves it for manual cleanup.
func GenerateUninstaller(files Files, path string, tracked []string, key string, store Store, f Flavor) error {
	self := filepath.Clean(path)
	targets := make([]Target, 0, len(tracked))
	for _, p := range tracked {
		if filepath.Clean(p) == self {
			continue
		}
		info, err := files.Stat(p)
		targets = append(targets, Target{Path: p, Dir: err == nil && info.IsDir()})
	}
	script := RenderUninstaller(targets, store.Locate(key), f)
	if err := files.WriteFileAtomic(path, []byte(script), 0o755); err != nil {
		return fmt.Errorf(messages.LedgerUninstallerWriteFailedFmt, path, err)
	}
	return nil
}

// RenderUninstaller returns the script text for targets and the record location.
func RenderUninstaller(targets []Target, record Location, f Flavor) string {
	if f == FlavorBatch {
		return renderBatch(targets, record)
	}
	return renderShell(targets, record)
}

func renderBatch(targets []Target, record Location) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\r\n", args...)
	}
	line("@echo off")
	line("REM %s uninstall script", version.Product)
	line("")
	for _, t := range targets {
		if t.Dir {
			line(`rmdir /s /q "%s"`, t.Path)
		} else {
			line(`del "%s" /f /q`, t.Path)
		}
	}
	line(`del "%%~f0" /f /q`)
	switch record.Kind {
	case LocationRegistry:
		line(`reg delete "%s" /f`, record.Path)
	case LocationFile:
		line(`del "%s" /f /q`, record.Path)
	}
	line("")
	line("exit")
	return b.String()
}

func renderShell(targets []Target, record Location) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}
	line("#!/bin/sh")
	line("# %s uninstall script", version.Product)
	line("")
	for _, t := range targets {
		if t.Dir {
			line("rm -rf -- %s", shellQuote(t.Path))
		} else {
			line("rm -f -- %s", shellQuote(t.Path))
		}
	}
	line(`rm -f -- "$0"`)
	switch record.Kind {
	case LocationFile:
		line("rm -f -- %s", shellQuote(record.Path))
	case LocationRegistry:
		line("# remove registry key %s manually", record.Path)
	}
	line("exit 0")
	return b.String()
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// RunUninstaller executes the uninstaller script at path.
func RunUninstaller(ctx context.Context, path string, f Flavor) error {
	var cmd *exec.Cmd
	if f == FlavorBatch {
		cmd = exec.CommandContext(ctx, "cmd", "/C", path)
	} else {
		cmd = exec.CommandContext(ctx, "/bin/sh", path)
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf(messages.LedgerUninstallerRunFailedFmt, path, err, strings.TrimSpace(string(out)))
	}
	return nil
}
