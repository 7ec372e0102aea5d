package wizard

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/felix3322/potplayer-translate-installer/internal/prompt"
)

// DefaultRenameSuffix is appended to renamed files when none is configured.
const DefaultRenameSuffix = "_new"

// AutoDriver answers every question from fixed settings. It implements
// prompt.Driver for non-interactive installs.
type AutoDriver struct {
	Out io.Writer
	// OnConflict answers every FileExists question.
	OnConflict prompt.Choice
	// RenameSuffix is inserted before the extension of renamed files.
	RenameSuffix string
	// Register answers every registration question.
	Register bool

	renames map[string]int
}

func (a *AutoDriver) writer() io.Writer {
	if a.Out == nil {
		return os.Stdout
	}
	return a.Out
}

// Progress prints line; the terminal marker is not printed.
func (a *AutoDriver) Progress(line string) {
	if line == prompt.DoneMarker {
		return
	}
	_, _ = fmt.Fprintln(a.writer(), line)
}

// FileExists returns OnConflict.
func (a *AutoDriver) FileExists(prompt.Question) (prompt.Choice, error) {
	return a.OnConflict, nil
}

// YesNo returns Register.
func (a *AutoDriver) YesNo(prompt.Question) (bool, error) {
	return a.Register, nil
}

// FreeText proposes "<stem><suffix>" for the file at q.Path, numbering later
// attempts for the same file so a taken name is never proposed twice.
func (a *AutoDriver) FreeText(q prompt.Question) (string, bool, error) {
	if a.renames == nil {
		a.renames = make(map[string]int)
	}
	suffix := a.RenameSuffix
	if strings.TrimSpace(suffix) == "" {
		suffix = DefaultRenameSuffix
	}
	base := filepath.Base(q.Path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext) + suffix
	a.renames[q.Path]++
	if n := a.renames[q.Path]; n > 1 {
		name += fmt.Sprintf("-%d", n)
	}
	return name + ext, true, nil
}

// Finished prints the terminal status.
func (a *AutoDriver) Finished(status prompt.Status, reason string) {
	switch status {
	case prompt.StatusSuccess:
		_, _ = color.New(color.FgGreen).Fprintln(a.writer(), status.String())
	case prompt.StatusCancelled:
		_, _ = color.New(color.FgYellow).Fprintln(a.writer(), status.String())
	default:
		_, _ = color.New(color.FgRed).Fprintf(a.writer(), "%s: %s\n", status, reason)
	}
}
