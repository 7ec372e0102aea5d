package install

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/unicode/norm"

	"github.com/felix3322/potplayer-translate-installer/internal/lang"
	"github.com/felix3322/potplayer-translate-installer/internal/ledger"
	"github.com/felix3322/potplayer-translate-installer/internal/messages"
	"github.com/felix3322/potplayer-translate-installer/internal/prompt"
	"github.com/felix3322/potplayer-translate-installer/internal/templater"
	"github.com/felix3322/potplayer-translate-installer/internal/variant"
	"github.com/felix3322/potplayer-translate-installer/internal/version"
)

// variantRun is the state of one variant's installation.
type variantRun struct {
	id          variant.ID
	key         string
	existing    ledger.Record
	hasExisting bool
	files       []string
	register    bool
}

func (inst *installer) installVariant(id variant.ID) error {
	if err := inst.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	inst.emit(inst.s.Format(lang.KeyInstallingVariant, inst.s.Get(id.LabelKey())))
	log := inst.log.With().Str("variant", string(id)).Logger()

	key, err := ledger.Key(inst.dir, id)
	if err != nil {
		return err
	}
	run := &variantRun{id: id, key: key}
	rec, found, err := inst.store.Find(key)
	if err != nil {
		return fmt.Errorf(messages.InstallLedgerLookupFailedFmt, key, err)
	}
	if found {
		run.existing = rec
		run.hasExisting = true
		inst.upgradeNotice(rec)
	}
	log.Debug().Str("key", key).Bool("existing", found).Msg("variant started")

	for _, pair := range variant.Files(id) {
		if err := inst.installPair(run, pair); err != nil {
			return err
		}
	}
	if !run.register {
		log.Debug().Msg("registration skipped")
		return nil
	}
	return inst.register(run)
}

// upgradeNotice reports how this run relates to the registered version.
func (inst *installer) upgradeNotice(rec ledger.Record) {
	inst.emit(inst.s.Format(lang.KeyExistingInstall, rec.DisplayVersion))
	cmp, err := version.Compare(version.Plugin, rec.DisplayVersion)
	if err != nil {
		inst.log.Warn().Err(err).Str("key", rec.Key).Msg("registered version not comparable")
		return
	}
	switch {
	case cmp > 0:
		inst.emit(inst.s.Format(lang.KeyUpgradeNotice, rec.DisplayVersion, version.Plugin))
	case cmp == 0:
		inst.emit(inst.s.Format(lang.KeyReinstallNotice, version.Plugin))
	default:
		inst.emit(inst.s.Format(lang.KeyDowngradeNotice, rec.DisplayVersion, version.Plugin))
	}
}

func (inst *installer) installPair(run *variantRun, pair variant.FilePair) error {
	src := filepath.Join(inst.req.SourceDir, pair.Source)
	info, err := inst.sys.Stat(src)
	if err != nil || info.IsDir() {
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf(messages.InstallStatSourceFailedFmt, src, err)
		}
		inst.missing = append(inst.missing, pair.Source)
		inst.emit(inst.s.Format(lang.KeyInstallationFailed, inst.s.Format(lang.KeyMissingFile, pair.Source)))
		return fmt.Errorf("%w: %s", ErrMissingSourceFile, pair.Source)
	}
	inst.emit(inst.s.Format(lang.KeyCopyingFile, pair.Source, humanize.Bytes(uint64(info.Size()))))

	dest := filepath.Join(inst.dir, pair.Dest)
	exists, err := inst.exists(dest)
	if err != nil {
		return err
	}
	if !exists {
		if err := inst.deploy(run, src, dest); err != nil {
			return err
		}
		inst.emit(inst.s.Format(lang.KeyInstalledFile, pair.Dest))
		return inst.askRegistration(run, lang.KeyAskRegNew)
	}

	choice, err := inst.prompter.FileExists(inst.ctx, inst.conflictQuestion(run, src, dest))
	if err != nil {
		return inst.promptErr(err)
	}
	switch choice {
	case prompt.ChoiceOverwrite:
		if err := inst.deploy(run, src, dest); err != nil {
			return err
		}
		inst.emit(inst.s.Format(lang.KeyInstalledOverwritten, pair.Dest))
		if run.hasExisting {
			return inst.askRegistration(run, lang.KeyAskRegUpgrade)
		}
		return inst.askRegistration(run, lang.KeyAskRegWrite)
	case prompt.ChoiceRename:
		renamed, err := inst.rename(run, src, pair.Dest)
		if err != nil {
			return err
		}
		if err := inst.deploy(run, src, renamed); err != nil {
			return err
		}
		inst.emit(inst.s.Format(lang.KeyInstalledFile, filepath.Base(renamed)))
		return inst.askRegistration(run, lang.KeyAskRegNew)
	default:
		return ErrCancelled
	}
}

// rename asks for a new destination name until one is free. Blank names are
// asked again; no answer or a Cancel on a colliding name cancels the run.
func (inst *installer) rename(run *variantRun, src string, original string) (string, error) {
	ext := filepath.Ext(original)
	for {
		text, ok, err := inst.prompter.FreeText(inst.ctx, prompt.Question{
			Title: inst.s.Get(lang.KeyAppTitle),
			Text:  inst.s.Get(lang.KeyRename),
			Path:  filepath.Join(inst.dir, original),
		})
		if err != nil {
			return "", inst.promptErr(err)
		}
		if !ok {
			return "", ErrCancelled
		}
		name := norm.NFC.String(strings.TrimSpace(text))
		if name == "" {
			continue
		}
		if !validFileName(name) {
			inst.emit(inst.s.Format(lang.KeyInvalidName, name))
			continue
		}
		if !hasExtension(name) {
			name += ext
		}
		dest := filepath.Join(inst.dir, name)
		exists, err := inst.exists(dest)
		if err != nil {
			return "", err
		}
		if !exists {
			return dest, nil
		}
		choice, err := inst.prompter.FileExists(inst.ctx, inst.conflictQuestion(run, src, dest))
		if err != nil {
			return "", inst.promptErr(err)
		}
		if choice == prompt.ChoiceCancel {
			return "", ErrCancelled
		}
	}
}

// hasExtension reports whether name carries an extension. Leading dots mark a
// hidden file, not an extension, so ".custom" has none.
func hasExtension(name string) bool {
	return filepath.Ext(strings.TrimLeft(name, ".")) != ""
}

// validFileName rejects names that would leave the install directory.
func validFileName(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

func (inst *installer) exists(path string) (bool, error) {
	_, err := inst.sys.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf(messages.InstallStatDestFailedFmt, path, err)
}

// deploy copies src to dest, templates plugin scripts, and records dest.
func (inst *installer) deploy(run *variantRun, src string, dest string) error {
	n, err := inst.sys.CopyFile(src, dest)
	if err != nil {
		return fmt.Errorf(messages.InstallCopyFailedFmt, src, dest, err)
	}
	inst.log.Debug().Str("variant", string(run.id)).Str("path", dest).Int64("bytes", n).Msg("copied")
	if variant.IsTemplated(dest) {
		if err := templater.ApplyFile(inst.sys, dest, inst.values(run.id)); err != nil {
			return fmt.Errorf("%w: %w", ErrTemplateWriteFailed, err)
		}
		inst.log.Debug().Str("variant", string(run.id)).Str("path", dest).Msg("templated")
	}
	run.files = append(run.files, dest)
	inst.outcome.Written = append(inst.outcome.Written, dest)
	return nil
}

// values returns the template values for id. Context fields are only set for
// variants that keep context.
func (inst *installer) values(id variant.ID) templater.Values {
	cfg := inst.req.Config
	limits := inst.limitsJSON
	v := templater.Values{
		APIKey:          cfg.APIKey,
		Model:           cfg.Model,
		APIBase:         cfg.APIBase,
		DelayMS:         cfg.DelayMS,
		RetryMode:       int(cfg.Retry),
		Debug:           cfg.Debug,
		TokenLimitsJSON: &limits,
	}
	if id.SupportsContext() {
		budget := cfg.Context.TokenBudget
		truncation := string(cfg.Context.Truncation)
		cache := string(cfg.Context.Cache)
		v.ContextBudget = &budget
		v.TruncationMode = &truncation
		v.CacheMode = &cache
	}
	return v
}

func (inst *installer) conflictQuestion(run *variantRun, src string, dest string) prompt.Question {
	return prompt.Question{
		Title:   inst.s.Get(lang.KeyAppTitle),
		Text:    inst.s.Format(lang.KeyFileExists, filepath.Base(dest)),
		Path:    dest,
		Source:  src,
		Preview: inst.preview(run.id, src, dest),
	}
}

// preview diffs the installed file against what would replace it. Read
// failures only drop the preview.
func (inst *installer) preview(id variant.ID, src string, dest string) string {
	current, err := inst.sys.ReadFile(dest)
	if err != nil {
		inst.log.Debug().Err(err).Str("path", dest).Msg("no diff preview")
		return ""
	}
	next, err := inst.sys.ReadFile(src)
	if err != nil {
		inst.log.Debug().Err(err).Str("path", src).Msg("no diff preview")
		return ""
	}
	if variant.IsTemplated(dest) && !isBinary(next) {
		next = []byte(templater.Apply(string(next), inst.values(id)))
	}
	return diffPreview(filepath.Base(dest), current, next, inst.diffMaxLines)
}

func (inst *installer) askRegistration(run *variantRun, key string) error {
	yes, err := inst.prompter.YesNo(inst.ctx, prompt.Question{
		Title: inst.s.Get(lang.KeyAppTitle),
		Text:  inst.s.Get(key),
		Path:  inst.dir,
	})
	if err != nil {
		return inst.promptErr(err)
	}
	if yes {
		run.register = true
	}
	return nil
}
