// Package install deploys plugin variants into a PotPlayer translate
// directory, resolving conflicts through a Prompter and registering each
// installed variant with the ledger.
package install

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/felix3322/potplayer-translate-installer/internal/config"
	"github.com/felix3322/potplayer-translate-installer/internal/lang"
	"github.com/felix3322/potplayer-translate-installer/internal/ledger"
	"github.com/felix3322/potplayer-translate-installer/internal/messages"
	"github.com/felix3322/potplayer-translate-installer/internal/prompt"
	"github.com/felix3322/potplayer-translate-installer/internal/variant"
)

// Run failure classes. Any other error ends the run as an unexpected failure.
var (
	ErrMissingSourceFile       = errors.New(messages.InstallMissingSourceFile)
	ErrDirectoryCreateFailed   = errors.New(messages.InstallDirectoryCreateFailed)
	ErrNoVariantSelected       = errors.New(messages.InstallNoVariantSelected)
	ErrTemplateWriteFailed     = errors.New(messages.InstallTemplateWriteFailed)
	ErrRegistrationWriteFailed = errors.New(messages.InstallRegistrationWriteFailed)
	ErrCancelled               = errors.New(messages.InstallCancelled)
)

// Options controls installer behavior.
type Options struct {
	System   System
	Prompter Prompter
	Reporter Reporter
	Ledger   ledger.Store
	Strings  *lang.Table
	// TokenLimits is templated into every plugin script.
	TokenLimits  config.TokenLimits
	Flavor       ledger.Flavor
	DiffMaxLines int
	// Logger receives diagnostics. Nil disables logging.
	Logger *zerolog.Logger
}

// Request is the input of one run.
type Request struct {
	Dir       string
	Variants  []variant.ID
	SourceDir string
	// Language is a BCP 47 tag selecting the progress language.
	Language string
	Config   config.Configuration
}

// Outcome is the result of one run.
type Outcome struct {
	// Written lists every installed file in the order it was written.
	Written []string
	// Registered lists the registration keys written.
	Registered []string
	Status     prompt.Status
	Reason     string
	Err        error
	// Transcript holds every progress line; the last one is prompt.DoneMarker.
	Transcript []string
}

type installer struct {
	ctx          context.Context
	req          Request
	dir          string
	sys          System
	prompter     Prompter
	reporter     Reporter
	store        ledger.Store
	table        *lang.Table
	s            lang.Strings
	limitsJSON   string
	flavor       ledger.Flavor
	diffMaxLines int
	log          zerolog.Logger
	outcome      Outcome
	missing      []string
}

// Run installs every requested variant in order. It never returns early
// without a terminal status: the last transcript line is always
// prompt.DoneMarker, including on cancellation and failure.
func Run(ctx context.Context, req Request, opts Options) Outcome {
	if ctx == nil {
		ctx = context.Background()
	}
	inst := &installer{
		ctx:          ctx,
		req:          req,
		sys:          opts.System,
		prompter:     opts.Prompter,
		reporter:     opts.Reporter,
		store:        opts.Ledger,
		table:        opts.Strings,
		limitsJSON:   opts.TokenLimits.JSON(),
		flavor:       opts.Flavor,
		diffMaxLines: normalizeDiffMaxLines(opts.DiffMaxLines),
		log:          zerolog.Nop(),
	}
	if opts.Logger != nil {
		inst.log = *opts.Logger
	}
	if inst.flavor == 0 {
		inst.flavor = ledger.DefaultFlavor()
	}
	return inst.run(opts)
}

// Start runs the installer in its own goroutine, reporting to and prompting
// through link, and closes link with the terminal status. The returned
// channel delivers the outcome once.
func Start(ctx context.Context, req Request, opts Options, link *prompt.Link) <-chan Outcome {
	opts.Prompter = link
	opts.Reporter = link
	done := make(chan Outcome, 1)
	go func() {
		out := Run(ctx, req, opts)
		link.Finish(out.Status, out.Reason)
		done <- out
	}()
	return done
}

func (inst *installer) run(opts Options) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			inst.finish(fmt.Errorf(messages.InstallUnexpectedPanicFmt, r))
		}
		inst.emit(prompt.DoneMarker)
		out = inst.outcome
	}()

	if err := validateOptions(opts); err != nil {
		inst.finish(err)
		return
	}
	inst.s = inst.table.For(inst.req.Language)

	steps := []func() error{
		inst.ensureDir,
		inst.checkVariants,
		inst.installVariants,
	}
	inst.finish(runSteps(steps))
	return
}

func validateOptions(opts Options) error {
	switch {
	case opts.System == nil:
		return fmt.Errorf(messages.InstallSystemRequired)
	case opts.Prompter == nil:
		return fmt.Errorf(messages.InstallPrompterRequired)
	case opts.Ledger == nil:
		return fmt.Errorf(messages.InstallLedgerRequired)
	case opts.Strings == nil:
		return fmt.Errorf(messages.InstallStringsRequired)
	}
	return nil
}

func runSteps(steps []func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// emit appends line to the transcript and forwards it to the reporter.
func (inst *installer) emit(line string) {
	inst.outcome.Transcript = append(inst.outcome.Transcript, line)
	if inst.reporter != nil {
		inst.reporter.Progress(line)
	}
}

// finish records the terminal status for err and emits the closing message.
func (inst *installer) finish(err error) {
	switch {
	case err == nil:
		inst.outcome.Status = prompt.StatusSuccess
		inst.emitBilingual(lang.KeyInstallationComplete)
		inst.log.Info().Strs("written", inst.outcome.Written).Msg("install finished")
	case errors.Is(err, ErrCancelled):
		inst.outcome.Status = prompt.StatusCancelled
		inst.outcome.Err = err
		inst.emitBilingual(lang.KeyInstallationCancelled)
		inst.log.Info().Err(err).Msg("install cancelled")
	default:
		inst.outcome.Status = prompt.StatusFailed
		inst.outcome.Err = err
		inst.outcome.Reason = err.Error()
		if errors.Is(err, ErrNoVariantSelected) && inst.table != nil {
			inst.emit(inst.table.BilingualReason(lang.KeyInstallationFailed, lang.KeyNoVariantSelected))
		} else {
			inst.emitBilingual(lang.KeyInstallationFailed, err.Error())
		}
		inst.log.Error().Err(err).Msg("install failed")
	}
}

func (inst *installer) emitBilingual(key string, args ...any) {
	if inst.table == nil {
		if len(args) > 0 {
			inst.emit(fmt.Sprintf("%s: %v", key, args[0]))
			return
		}
		inst.emit(key)
		return
	}
	inst.emit(inst.table.Bilingual(key, args...))
}

func (inst *installer) ensureDir() error {
	raw := strings.TrimSpace(inst.req.Dir)
	if raw == "" {
		return fmt.Errorf("%w: %s", ErrDirectoryCreateFailed, messages.InstallDirRequired)
	}
	dir, err := filepath.Abs(raw)
	if err != nil {
		return fmt.Errorf("%w: "+messages.InstallResolveDirFailedFmt, ErrDirectoryCreateFailed, raw, err)
	}
	if err := inst.sys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: "+messages.InstallCreateDirFailedFmt, ErrDirectoryCreateFailed, dir, err)
	}
	inst.dir = dir
	return nil
}

func (inst *installer) checkVariants() error {
	if len(inst.req.Variants) > 0 {
		return nil
	}
	return ErrNoVariantSelected
}

// installVariants installs each variant in order. A missing bundle file
// aborts only its variant; the run still ends as failed once every variant
// was attempted.
func (inst *installer) installVariants() error {
	for _, id := range inst.req.Variants {
		err := inst.installVariant(id)
		if errors.Is(err, ErrMissingSourceFile) {
			inst.log.Warn().Str("variant", string(id)).Err(err).Msg("variant skipped")
			continue
		}
		if err != nil {
			return err
		}
	}
	if len(inst.missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingSourceFile, strings.Join(inst.missing, ", "))
	}
	return nil
}

// promptErr maps a prompter failure to the run outcome. A driver that went
// away or a cancelled context ends the run as cancelled.
func (inst *installer) promptErr(err error) error {
	if errors.Is(err, prompt.ErrAbandoned) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	return fmt.Errorf(messages.InstallPromptFailedFmt, err)
}
