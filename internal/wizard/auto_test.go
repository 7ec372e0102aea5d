package wizard

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felix3322/potplayer-translate-installer/internal/prompt"
)

func TestAutoDriverRenameNumbersRepeatedAttempts(t *testing.T) {
	a := &AutoDriver{}
	q := prompt.Question{Kind: prompt.KindFreeText, Path: "/x/SubtitleTranslate - ChatGPT.as"}

	var names []string
	for i := 0; i < 3; i++ {
		name, ok, err := a.FreeText(q)
		require.NoError(t, err)
		require.True(t, ok)
		names = append(names, name)
	}
	assert.Equal(t, []string{
		"SubtitleTranslate - ChatGPT_new.as",
		"SubtitleTranslate - ChatGPT_new-2.as",
		"SubtitleTranslate - ChatGPT_new-3.as",
	}, names)

	other, _, err := a.FreeText(prompt.Question{Path: "/x/icon.ico"})
	require.NoError(t, err)
	assert.Equal(t, "icon_new.ico", other)
}

func TestAutoDriverCustomSuffix(t *testing.T) {
	a := &AutoDriver{RenameSuffix: ".bak"}
	name, _, err := a.FreeText(prompt.Question{Path: "plugin.as"})
	require.NoError(t, err)
	assert.Equal(t, "plugin.bak.as", name)
}

func TestAutoDriverAnswersFromSettings(t *testing.T) {
	a := &AutoDriver{OnConflict: prompt.ChoiceRename, Register: true}

	choice, err := a.FileExists(prompt.Question{})
	require.NoError(t, err)
	assert.Equal(t, prompt.ChoiceRename, choice)

	yes, err := a.YesNo(prompt.Question{})
	require.NoError(t, err)
	assert.True(t, yes)
}

func TestAutoDriverOutput(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })
	var out bytes.Buffer
	a := &AutoDriver{Out: &out}

	a.Progress("Copying a.as")
	a.Progress(prompt.DoneMarker)
	a.Finished(prompt.StatusFailed, "disk full")

	assert.Equal(t, "Copying a.as\nfailed: disk full\n", out.String())
}
