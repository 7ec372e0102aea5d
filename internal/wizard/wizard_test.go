package wizard

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felix3322/potplayer-translate-installer/internal/config"
	"github.com/felix3322/potplayer-translate-installer/internal/lang"
	"github.com/felix3322/potplayer-translate-installer/internal/messages"
	"github.com/felix3322/potplayer-translate-installer/internal/variant"
)

type verifyCall struct {
	model   string
	apiBase string
	apiKey  string
}

func stubVerify(t *testing.T, ok bool, detail string) *[]verifyCall {
	t.Helper()
	orig := verifyFunc
	t.Cleanup(func() { verifyFunc = orig })
	var calls []verifyCall
	verifyFunc = func(_ context.Context, model string, apiURL string, apiKey string) (bool, string) {
		calls = append(calls, verifyCall{model: model, apiBase: apiURL, apiKey: apiKey})
		return ok, detail
	}
	return &calls
}

func en() lang.Strings {
	return testTable.For(lang.English)
}

// scriptedUI answers the required pages: directory and API key.
func scriptedUI(t *testing.T) (*fakeUI, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "Translate")
	ui := newFakeUI()
	ui.inputs[en().Get(lang.KeyInstallDirTitle)] = []string{dir}
	ui.inputs[en().Get(lang.KeyConfigKey)] = []string{" sk-abc "}
	return ui, dir
}

func TestCollectDefaults(t *testing.T) {
	calls := stubVerify(t, true, "")
	ui, dir := scriptedUI(t)

	choices, err := Collect(context.Background(), ui, testTable, nil)
	require.NoError(t, err)

	assert.Equal(t, lang.English, choices.Language)
	assert.Equal(t, dir, choices.Dir)
	assert.Equal(t, []string{string(variant.WithContext)}, choices.Variants)
	assert.Equal(t, config.DefaultProvider, choices.Provider)
	assert.Equal(t, "sk-abc", choices.APIKey)
	assert.Equal(t, 1, ui.count(en().Get(lang.KeyContextTitle)))
	assert.Contains(t, ui.notes, en().Get(lang.KeyVerifySuccess))
	require.Len(t, *calls, 1)
	assert.Equal(t, verifyCall{model: "gpt-5-nano", apiBase: config.DefaultAPIBase, apiKey: "sk-abc"}, (*calls)[0])

	req, err := choices.Request("/bundle")
	require.NoError(t, err)
	assert.Equal(t, []variant.ID{variant.WithContext}, req.Variants)
	assert.Equal(t, "gpt-5-nano", req.Config.Model)
	assert.Equal(t, config.DefaultTokenBudget, req.Config.Context.TokenBudget)
	assert.Equal(t, "/bundle", req.SourceDir)
}

func TestCollectSkipsContextPageWithoutContext(t *testing.T) {
	stubVerify(t, true, "")
	ui, _ := scriptedUI(t)
	ui.multi[en().Get(lang.KeyVariantsTitle)] = [][]string{{string(variant.WithoutContext)}}

	choices, err := Collect(context.Background(), ui, testTable, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{string(variant.WithoutContext)}, choices.Variants)
	assert.Zero(t, ui.count(en().Get(lang.KeyContextTitle)))
}

func TestCollectBackRevisitsPreviousPage(t *testing.T) {
	stubVerify(t, true, "")
	ui, _ := scriptedUI(t)
	ui.back[en().Get(lang.KeyRetryTitle)] = 1
	ui.inputs[en().Get(lang.KeyDelayTitle)] = []string{"100", "250"}

	choices, err := Collect(context.Background(), ui, testTable, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, ui.count(en().Get(lang.KeyDelayTitle)))
	assert.Equal(t, 250, choices.DelayMS)
}

func TestCollectBackSkipsHiddenContextPage(t *testing.T) {
	stubVerify(t, true, "")
	ui, _ := scriptedUI(t)
	ui.multi[en().Get(lang.KeyVariantsTitle)] = [][]string{{string(variant.WithoutContext)}}
	ui.back[en().Get(lang.KeyDebugTitle)] = 1

	_, err := Collect(context.Background(), ui, testTable, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, ui.count(en().Get(lang.KeyRetryTitle)))
	assert.Zero(t, ui.count(en().Get(lang.KeyContextTitle)))
}

func TestCollectBackRestoresPageState(t *testing.T) {
	stubVerify(t, true, "")
	ui, _ := scriptedUI(t)
	ui.selects[en().Get(lang.KeyRetryTitle)] = []string{"once"}
	ui.back[en().Get(lang.KeyContextTruncLabel)] = 1

	choices, err := Collect(context.Background(), ui, testTable, nil)
	require.NoError(t, err)

	// Retry was answered once before backing out of the context page.
	assert.Equal(t, "once", choices.Retry)
	assert.Equal(t, 2, ui.count(en().Get(lang.KeyContextTitle)))
}

func TestCollectFirstPageEscapeLeaves(t *testing.T) {
	stubVerify(t, true, "")
	ui, _ := scriptedUI(t)
	ui.back[en().Get(lang.KeyAppTitle)] = 1

	_, err := Collect(context.Background(), ui, testTable, nil)
	assert.ErrorIs(t, err, ErrAborted)
	assert.Equal(t, 1, ui.count(messages.WizardFirstStepEscapeExitPrompt))
}

func TestCollectFirstPageEscapeStays(t *testing.T) {
	stubVerify(t, true, "")
	ui, _ := scriptedUI(t)
	ui.back[en().Get(lang.KeyAppTitle)] = 1
	ui.confirms[messages.WizardFirstStepEscapeExitPrompt] = []bool{false}

	_, err := Collect(context.Background(), ui, testTable, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, ui.count(en().Get(lang.KeyAppTitle)))
}

func TestCollectCtrlCAborts(t *testing.T) {
	stubVerify(t, true, "")
	ui, _ := scriptedUI(t)
	ui.cancel = en().Get(lang.KeyConfigTitle)

	_, err := Collect(context.Background(), ui, testTable, nil)
	assert.ErrorIs(t, err, ErrAborted)
}

func TestCollectDeclinedInstallAborts(t *testing.T) {
	stubVerify(t, true, "")
	ui, _ := scriptedUI(t)
	ui.confirms[en().Get(lang.KeyConfirmInstall)] = []bool{false}

	_, err := Collect(context.Background(), ui, testTable, nil)
	assert.ErrorIs(t, err, ErrAborted)
}

func TestCollectLicenseMustBeAccepted(t *testing.T) {
	stubVerify(t, true, "")
	ui, _ := scriptedUI(t)
	ui.confirms[en().Get(lang.KeyLicenseTitle)] = []bool{false, true}

	_, err := Collect(context.Background(), ui, testTable, nil)
	require.NoError(t, err)
	assert.Contains(t, ui.notes, en().Get(lang.KeyLicenseRequired))
}

func TestCollectRepromptsRequiredAnswers(t *testing.T) {
	stubVerify(t, true, "")
	ui, dir := scriptedUI(t)
	ui.inputs[en().Get(lang.KeyInstallDirTitle)] = []string{"  ", dir}
	ui.multi[en().Get(lang.KeyVariantsTitle)] = [][]string{{}, {string(variant.WithoutContext)}}
	ui.inputs[en().Get(lang.KeyDelayTitle)] = []string{"abc", "70000", "300"}

	choices, err := Collect(context.Background(), ui, testTable, nil)
	require.NoError(t, err)

	assert.Contains(t, ui.notes, en().Get(lang.KeyInstallDirRequired))
	assert.Contains(t, ui.notes, en().Get(lang.KeyVariantsWarning))
	assert.Contains(t, ui.notes, fmt.Sprintf(messages.WizardNumberRangeFmt, 0, config.MaxDelayMS))
	assert.Equal(t, 300, choices.DelayMS)
	assert.Equal(t, dir, choices.Dir)
}

func TestCollectCapsContextBudget(t *testing.T) {
	stubVerify(t, true, "")
	ui, _ := scriptedUI(t)
	ui.inputs[en().Get(lang.KeyContextTitle)] = []string{"300000", "200000"}

	choices, err := Collect(context.Background(), ui, testTable, nil)
	require.NoError(t, err)

	assert.Contains(t, ui.notes, fmt.Sprintf(messages.WizardNumberRangeFmt, 0, config.MaxTokenBudget))
	assert.Equal(t, config.MaxTokenBudget, choices.ContextBudget)
}

func TestCollectCustomProvider(t *testing.T) {
	calls := stubVerify(t, false, "401 invalid key")
	ui, _ := scriptedUI(t)
	ui.selects[en().Get(lang.KeyConfigTitle)] = []string{config.CustomProvider}
	ui.inputs[en().Get(lang.KeyConfigModel)] = []string{"", "my-model"}
	ui.inputs[en().Get(lang.KeyConfigAPI)] = []string{"https://llm.example/v1/chat/completions/"}

	choices, err := Collect(context.Background(), ui, testTable, nil)
	require.NoError(t, err)

	assert.Contains(t, ui.notes, messages.ConfigCustomModelRequired)
	assert.Contains(t, ui.notes, en().Format(lang.KeyVerifyFail, "401 invalid key"))
	require.Len(t, *calls, 1)
	assert.Equal(t, "https://llm.example/v1", (*calls)[0].apiBase)

	req, err := choices.Request("")
	require.NoError(t, err)
	assert.Equal(t, "my-model", req.Config.Model)
	assert.Equal(t, "https://llm.example/v1", req.Config.APIBase)
}

func TestCollectSkipsVerifyWithoutKey(t *testing.T) {
	calls := stubVerify(t, true, "")
	ui, _ := scriptedUI(t)
	ui.inputs[en().Get(lang.KeyConfigKey)] = []string{""}

	_, err := Collect(context.Background(), ui, testTable, nil)
	require.NoError(t, err)
	assert.Empty(t, *calls)
	assert.Zero(t, ui.count(en().Get(lang.KeyVerifyPrompt)))
}

func TestCollectChinese(t *testing.T) {
	stubVerify(t, true, "")
	table := testTable
	zh := table.For(lang.Chinese)
	dir := filepath.Join(t.TempDir(), "Translate")
	ui := newFakeUI()
	ui.selects[en().Get(lang.KeyAppTitle)] = []string{lang.Chinese}
	ui.inputs[zh.Get(lang.KeyInstallDirTitle)] = []string{dir}

	choices, err := Collect(context.Background(), ui, table, nil)
	require.NoError(t, err)

	assert.Equal(t, lang.Chinese, choices.Language)
	assert.Equal(t, dir, choices.Dir)
	assert.Equal(t, 1, ui.count(zh.Get(lang.KeySummaryTitle)))
}

func TestCollectStartsFromInitialChoices(t *testing.T) {
	stubVerify(t, true, "")
	ui := newFakeUI()
	initial := NewChoices()
	initial.Dir = t.TempDir()
	initial.DelayMS = 1500

	choices, err := Collect(context.Background(), ui, testTable, initial)
	require.NoError(t, err)
	assert.Equal(t, 1500, choices.DelayMS)
	assert.Equal(t, initial.Dir, choices.Dir)
	assert.NotSame(t, initial, choices)
}
