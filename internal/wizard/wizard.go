// Package wizard collects install choices through interactive forms and
// drives an install run from the terminal.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/felix3322/potplayer-translate-installer/internal/config"
	"github.com/felix3322/potplayer-translate-installer/internal/lang"
	"github.com/felix3322/potplayer-translate-installer/internal/messages"
	"github.com/felix3322/potplayer-translate-installer/internal/verify"
)

var (
	verifyFunc         = verify.Verify
	errWizardBack      = errors.New("wizard back requested")
	errWizardCancelled = errors.New("wizard cancelled")
)

// ErrAborted is returned by Collect when the user leaves the wizard or
// declines to start the installation.
var ErrAborted = errors.New(messages.WizardAborted)

type wizardFlowStep int

const (
	wizardFlowStepLanguage wizardFlowStep = iota
	wizardFlowStepLicense
	wizardFlowStepDir
	wizardFlowStepVariants
	wizardFlowStepAPI
	wizardFlowStepDelay
	wizardFlowStepRetry
	wizardFlowStepContext
	wizardFlowStepDebug
	wizardFlowStepSummary
)

type flow struct {
	ctx     context.Context
	ui      UI
	table   *lang.Table
	s       lang.Strings
	choices *Choices
}

// Collect walks the wizard pages and returns the confirmed choices. Esc goes
// back one page; Esc on the first page asks whether to leave. Context pages
// are only shown when the context variant is selected. initial may be nil.
func Collect(ctx context.Context, ui UI, table *lang.Table, initial *Choices) (*Choices, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	choices := initial.Clone()
	if choices == nil {
		choices = NewChoices()
	}
	f := &flow{ctx: ctx, ui: ui, table: table, s: table.For(choices.Language), choices: choices}
	if err := f.run(); err != nil {
		if errors.Is(err, errWizardBack) || errors.Is(err, errWizardCancelled) {
			return nil, ErrAborted
		}
		return nil, err
	}
	return f.choices, nil
}

func (f *flow) run() error {
	step := wizardFlowStepLanguage
	for {
		snapshot := f.choices.Clone()
		err := f.page(step)
		if err == nil {
			if step == wizardFlowStepSummary {
				return nil
			}
			step = f.next(step)
			continue
		}
		if !errors.Is(err, errWizardBack) {
			return err
		}

		*f.choices = *snapshot
		f.s = f.table.For(f.choices.Language)
		if step == wizardFlowStepLanguage {
			exit, confirmErr := f.confirmExit()
			if confirmErr != nil {
				return confirmErr
			}
			if exit {
				return errWizardCancelled
			}
			continue
		}
		step = f.prev(step)
	}
}

func (f *flow) page(step wizardFlowStep) error {
	switch step {
	case wizardFlowStepLanguage:
		return f.promptLanguage()
	case wizardFlowStepLicense:
		return f.promptLicense()
	case wizardFlowStepDir:
		return f.promptDir()
	case wizardFlowStepVariants:
		return f.promptVariants()
	case wizardFlowStepAPI:
		return f.promptAPI()
	case wizardFlowStepDelay:
		return f.promptDelay()
	case wizardFlowStepRetry:
		return f.promptRetry()
	case wizardFlowStepContext:
		return f.promptContext()
	case wizardFlowStepDebug:
		return f.promptDebug()
	default:
		return f.confirmSummary()
	}
}

func (f *flow) skip(step wizardFlowStep) bool {
	return step == wizardFlowStepContext && !f.choices.WantsContext()
}

func (f *flow) next(step wizardFlowStep) wizardFlowStep {
	step++
	for f.skip(step) {
		step++
	}
	return step
}

func (f *flow) prev(step wizardFlowStep) wizardFlowStep {
	step--
	for f.skip(step) {
		step--
	}
	return step
}

func (f *flow) confirmExit() (bool, error) {
	exit := true
	if err := f.ui.Confirm(messages.WizardFirstStepEscapeExitPrompt, &exit); err != nil {
		if errors.Is(err, errWizardBack) {
			return false, nil
		}
		return false, err
	}
	return exit, nil
}

// heading joins a page title with its explanation.
func heading(title string, lines ...string) string {
	parts := []string{title}
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "\n")
}

func (f *flow) promptLanguage() error {
	options := make([]Option, 0, len(f.table.Codes()))
	for _, code := range f.table.Codes() {
		options = append(options, Option{Label: f.table.For(code).Get(lang.KeyLanguageName), Value: code})
	}
	current := f.table.Match(f.choices.Language)
	title := heading(f.s.Get(lang.KeyAppTitle), f.s.Get(lang.KeyChooseLanguage))
	if err := f.ui.Select(title, options, &current); err != nil {
		return err
	}
	f.choices.Language = current
	f.s = f.table.For(current)
	return nil
}

func (f *flow) promptLicense() error {
	if err := f.ui.Note(f.s.Get(lang.KeyWelcomeTitle), f.s.Get(lang.KeyWelcomeMessage)); err != nil {
		return err
	}
	for {
		agree := false
		if err := f.ui.Confirm(heading(f.s.Get(lang.KeyLicenseTitle), f.s.Get(lang.KeyLicenseAgree)), &agree); err != nil {
			return err
		}
		if agree {
			return nil
		}
		if err := f.ui.Note(f.s.Get(lang.KeyLicenseTitle), f.s.Get(lang.KeyLicenseRequired)); err != nil {
			return err
		}
	}
}

func (f *flow) promptDir() error {
	title := heading(f.s.Get(lang.KeyInstallDirTitle), f.s.Get(lang.KeyInstallDirExplain))
	for {
		value := f.choices.Dir
		if err := f.ui.Input(title, &value); err != nil {
			return err
		}
		value = strings.TrimSpace(value)
		if value == "" {
			if err := f.ui.Note(f.s.Get(lang.KeyInstallDirTitle), f.s.Get(lang.KeyInstallDirRequired)); err != nil {
				return err
			}
			continue
		}
		dir, err := config.ResolvePath("", value)
		if err != nil {
			if noteErr := f.ui.Note(f.s.Get(lang.KeyInstallDirTitle), err.Error()); noteErr != nil {
				return noteErr
			}
			continue
		}
		f.choices.Dir = dir
		return nil
	}
}

func (f *flow) promptVariants() error {
	values := config.FieldOptionValues(config.FieldInstallVariants)
	options := make([]Option, 0, len(values))
	for _, v := range values {
		options = append(options, Option{Label: f.s.Get(v) + ": " + f.s.Get(v+"_description"), Value: v})
	}
	title := heading(f.s.Get(lang.KeyVariantsTitle), f.s.Get(lang.KeyVariantsExplain))
	for {
		selected := slices.Clone(f.choices.Variants)
		if err := f.ui.MultiSelect(title, options, &selected); err != nil {
			return err
		}
		if len(selected) > 0 {
			f.choices.Variants = selected
			return nil
		}
		if err := f.ui.Note(f.s.Get(lang.KeyVariantsTitle), f.s.Get(lang.KeyVariantsWarning)); err != nil {
			return err
		}
	}
}

func (f *flow) providerOptions() []Option {
	values := config.FieldOptionValues(config.FieldAPIProvider)
	options := make([]Option, 0, len(values))
	for _, v := range values {
		if v == config.CustomProvider {
			options = append(options, Option{Label: f.s.Get(lang.KeyConfigCustom), Value: v})
			continue
		}
		p, _ := config.LookupProvider(v)
		options = append(options, Option{Label: fmt.Sprintf("%s (%s)", p.Model, p.APIBase), Value: v})
	}
	return options
}

func (f *flow) promptAPI() error {
	provider := f.choices.Provider
	title := heading(f.s.Get(lang.KeyConfigTitle), f.s.Get(lang.KeyConfigIntro), f.s.Get(lang.KeyConfigModelPreset))
	if err := f.ui.Select(title, f.providerOptions(), &provider); err != nil {
		return err
	}
	f.choices.Provider = provider

	hint := ""
	if provider == config.CustomProvider {
		if err := f.promptCustomEndpoint(); err != nil {
			return err
		}
	} else {
		f.choices.Model = ""
		f.choices.APIBase = ""
		if p, ok := config.LookupProvider(provider); ok && p.PurchaseURL != "" {
			hint = f.s.Format(lang.KeyPurchaseHint, p.PurchaseURL)
		}
	}

	key := f.choices.APIKey
	if err := f.ui.SecretInput(heading(f.s.Get(lang.KeyConfigKey), hint), &key); err != nil {
		return err
	}
	f.choices.APIKey = strings.TrimSpace(key)
	return f.promptVerify()
}

func (f *flow) promptCustomEndpoint() error {
	for {
		model := f.choices.Model
		if err := f.ui.Input(f.s.Get(lang.KeyConfigModel), &model); err != nil {
			return err
		}
		f.choices.Model = strings.TrimSpace(model)
		if f.choices.Model != "" {
			break
		}
		if err := f.ui.Note(f.s.Get(lang.KeyConfigTitle), messages.ConfigCustomModelRequired); err != nil {
			return err
		}
	}
	base := f.choices.APIBase
	if base == "" {
		base = config.DefaultAPIBase
	}
	if err := f.ui.Input(f.s.Get(lang.KeyConfigAPI), &base); err != nil {
		return err
	}
	f.choices.APIBase = config.NormalizeAPIBase(base)
	return nil
}

// promptVerify offers a live check of the API settings. A failed check is
// reported but does not block the wizard.
func (f *flow) promptVerify() error {
	if f.choices.APIKey == "" {
		return nil
	}
	check := true
	if err := f.ui.Confirm(f.s.Get(lang.KeyVerifyPrompt), &check); err != nil {
		return err
	}
	if !check {
		return nil
	}
	model, apiBase, err := f.choices.Endpoint()
	if err != nil {
		return f.ui.Note(f.s.Get(lang.KeyConfigTitle), f.s.Format(lang.KeyVerifyFail, err.Error()))
	}
	ok, detail := verifyFunc(f.ctx, model, apiBase, f.choices.APIKey)
	if ok {
		return f.ui.Note(f.s.Get(lang.KeyConfigTitle), f.s.Get(lang.KeyVerifySuccess))
	}
	return f.ui.Note(f.s.Get(lang.KeyConfigTitle), f.s.Format(lang.KeyVerifyFail, detail))
}

// promptNumber asks for an integer in [0, max] until one is given.
func (f *flow) promptNumber(title string, pageTitle string, value *int, max int) error {
	for {
		raw := strconv.Itoa(*value)
		if err := f.ui.Input(title, &raw); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err == nil && n >= 0 && n <= max {
			*value = n
			return nil
		}
		if err := f.ui.Note(pageTitle, fmt.Sprintf(messages.WizardNumberRangeFmt, 0, max)); err != nil {
			return err
		}
	}
}

func (f *flow) promptDelay() error {
	title := heading(f.s.Get(lang.KeyDelayTitle), f.s.Get(lang.KeyDelayIntro), f.s.Get(lang.KeyDelayLabel))
	return f.promptNumber(title, f.s.Get(lang.KeyDelayTitle), &f.choices.DelayMS, config.MaxDelayMS)
}

// enumOptions labels the registry options of field with language keys.
func (f *flow) enumOptions(field string, labelKeys map[string]string) []Option {
	values := config.FieldOptionValues(field)
	options := make([]Option, 0, len(values))
	for _, v := range values {
		options = append(options, Option{Label: f.s.Get(labelKeys[v]), Value: v})
	}
	return options
}

var retryLabelKeys = map[string]string{
	"off":                 "retry_off",
	"once":                "retry_once",
	"until_success":       "retry_until",
	"until_success_delay": "retry_until_delay",
}

var truncationLabelKeys = map[string]string{
	string(config.TruncationDropOldest): "context_trunc_drop_oldest",
	string(config.TruncationSmartTrim):  "context_trunc_smart_trim",
}

var cacheLabelKeys = map[string]string{
	string(config.CacheAuto): "context_cache_auto",
	string(config.CacheOff):  "context_cache_off",
}

func (f *flow) promptRetry() error {
	current := f.choices.Retry
	title := heading(f.s.Get(lang.KeyRetryTitle), f.s.Get(lang.KeyRetryIntro))
	if err := f.ui.Select(title, f.enumOptions(config.FieldBehaviorRetry, retryLabelKeys), &current); err != nil {
		return err
	}
	f.choices.Retry = current
	return nil
}

func (f *flow) promptContext() error {
	budgetTitle := heading(f.s.Get(lang.KeyContextTitle), f.s.Get(lang.KeyContextLengthLabel), f.s.Get(lang.KeyContextLengthHint))
	if err := f.promptNumber(budgetTitle, f.s.Get(lang.KeyContextTitle), &f.choices.ContextBudget, config.MaxTokenBudget); err != nil {
		return err
	}

	truncation := f.choices.Truncation
	if err := f.ui.Select(f.s.Get(lang.KeyContextTruncLabel), f.enumOptions(config.FieldContextTruncation, truncationLabelKeys), &truncation); err != nil {
		return err
	}
	f.choices.Truncation = truncation

	cache := f.choices.Cache
	cacheTitle := heading(f.s.Get(lang.KeyContextCacheLabel), f.s.Get(lang.KeyContextCacheHint))
	if err := f.ui.Select(cacheTitle, f.enumOptions(config.FieldContextCache, cacheLabelKeys), &cache); err != nil {
		return err
	}
	f.choices.Cache = cache
	return nil
}

func (f *flow) promptDebug() error {
	debug := f.choices.Debug
	if err := f.ui.Confirm(heading(f.s.Get(lang.KeyDebugTitle), f.s.Get(lang.KeyDebugLabel)), &debug); err != nil {
		return err
	}
	f.choices.Debug = debug
	return nil
}

func (f *flow) confirmSummary() error {
	if err := f.ui.Note(f.s.Get(lang.KeySummaryTitle), renderSummary(f.s, f.choices)); err != nil {
		return err
	}
	start := true
	if err := f.ui.Confirm(f.s.Get(lang.KeyConfirmInstall), &start); err != nil {
		return err
	}
	if !start {
		return errWizardCancelled
	}
	return nil
}
