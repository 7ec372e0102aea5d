package wizard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/felix3322/potplayer-translate-installer/internal/lang"
	"github.com/felix3322/potplayer-translate-installer/internal/prompt"
	"github.com/felix3322/potplayer-translate-installer/internal/terminal"
)

// Driver answers installer questions with forms and prints progress lines.
// It implements prompt.Driver.
type Driver struct {
	ui    UI
	out   io.Writer
	table *lang.Table
	s     lang.Strings
	width int

	failedPrefixes []string
}

// NewDriver returns a driver that renders forms through ui and writes
// progress to out in the language closest to tag.
func NewDriver(ui UI, out io.Writer, table *lang.Table, tag string) *Driver {
	if out == nil {
		out = os.Stdout
	}
	d := &Driver{ui: ui, out: out, table: table, s: table.For(tag), width: terminal.DefaultWidth}
	if f, ok := out.(*os.File); ok {
		d.width = terminal.Width(f)
	}
	for _, code := range table.Codes() {
		d.failedPrefixes = append(d.failedPrefixes, formatPrefix(table.For(code).Get(lang.KeyInstallationFailed)))
	}
	return d
}

// formatPrefix returns the literal text before the first verb of format.
func formatPrefix(format string) string {
	if i := strings.Index(format, "%"); i >= 0 {
		return format[:i]
	}
	return format
}

// Progress prints line. Failures are red and the completion message green;
// the terminal marker is not printed.
func (d *Driver) Progress(line string) {
	if line == prompt.DoneMarker {
		return
	}
	switch {
	case d.isFailure(line):
		_, _ = color.New(color.FgRed).Fprintln(d.out, line)
	case line == d.table.Bilingual(lang.KeyInstallationComplete):
		_, _ = color.New(color.FgGreen).Fprintln(d.out, line)
	case line == d.table.Bilingual(lang.KeyInstallationCancelled):
		_, _ = color.New(color.FgYellow).Fprintln(d.out, line)
	default:
		_, _ = fmt.Fprintln(d.out, line)
	}
}

func (d *Driver) isFailure(line string) bool {
	for _, prefix := range d.failedPrefixes {
		if prefix != "" && strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// FileExists shows the pending change, when there is one, then asks how to
// resolve the conflict. Esc cancels.
func (d *Driver) FileExists(q prompt.Question) (prompt.Choice, error) {
	if q.Preview != "" {
		if err := d.ui.Note(d.s.Format(lang.KeyDiffPreviewTitle, filepath.Base(q.Path)), q.Preview); err != nil {
			if !errors.Is(err, errWizardBack) {
				return prompt.ChoiceCancel, err
			}
		}
	}
	options := []Option{
		{Label: d.s.Get(lang.KeyOverwrite), Value: prompt.ChoiceOverwrite.String()},
		{Label: d.s.Get(lang.KeyRenameOption), Value: prompt.ChoiceRename.String()},
		{Label: d.s.Get(lang.KeyCancel), Value: prompt.ChoiceCancel.String()},
	}
	current := prompt.ChoiceOverwrite.String()
	if err := d.ui.Select(q.Text, options, &current); err != nil {
		if errors.Is(err, errWizardBack) {
			return prompt.ChoiceCancel, nil
		}
		return prompt.ChoiceCancel, err
	}
	return prompt.ParseChoice(current)
}

// YesNo asks for consent. Esc answers no.
func (d *Driver) YesNo(q prompt.Question) (bool, error) {
	yes := true
	if err := d.ui.Confirm(q.Text, &yes); err != nil {
		if errors.Is(err, errWizardBack) {
			return false, nil
		}
		return false, err
	}
	return yes, nil
}

// FreeText asks for a line of text. Esc supplies no answer.
func (d *Driver) FreeText(q prompt.Question) (string, bool, error) {
	var text string
	if err := d.ui.Input(q.Text, &text); err != nil {
		if errors.Is(err, errWizardBack) {
			return "", false, nil
		}
		return "", false, err
	}
	return text, true, nil
}

// Finished prints the closing banner.
func (d *Driver) Finished(status prompt.Status, reason string) {
	_, _ = fmt.Fprintln(d.out, renderFinished(d.s, status, reason, d.width))
}
