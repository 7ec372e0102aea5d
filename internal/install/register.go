package install

import (
	"fmt"
	"path/filepath"

	"github.com/felix3322/potplayer-translate-installer/internal/lang"
	"github.com/felix3322/potplayer-translate-installer/internal/ledger"
	"github.com/felix3322/potplayer-translate-installer/internal/messages"
	"github.com/felix3322/potplayer-translate-installer/internal/version"
)

// register writes the uninstaller and the registration record for run. The
// uninstaller tracks every file of the variant plus itself.
func (inst *installer) register(run *variantRun) error {
	toolsDir := filepath.Join(inst.dir, ledger.ToolsDir)
	if err := inst.sys.MkdirAll(toolsDir, 0o755); err != nil {
		return fmt.Errorf("%w: "+messages.InstallToolsDirFailedFmt, ErrRegistrationWriteFailed, toolsDir, err)
	}

	uninstaller := ledger.UninstallerPath(inst.dir, run.key, inst.flavor)
	tracked := make([]string, 0, len(run.files)+1)
	tracked = append(tracked, run.files...)
	tracked = append(tracked, uninstaller)
	if err := ledger.GenerateUninstaller(inst.sys, uninstaller, tracked, run.key, inst.store, inst.flavor); err != nil {
		return fmt.Errorf("%w: %w", ErrRegistrationWriteFailed, err)
	}
	inst.emit(inst.s.Format(lang.KeyUninstallerWritten, uninstaller))

	// Display names always use the English label.
	label := inst.table.For(lang.English).Get(run.id.LabelKey())
	rec := ledger.Record{
		Key:             run.key,
		DisplayName:     version.DisplayName(label),
		DisplayVersion:  version.Plugin,
		InstallLocation: inst.dir,
		UninstallString: uninstaller,
		Publisher:       version.Publisher,
		DisplayIcon:     uninstaller,
		ContextType:     string(run.id),
	}
	if err := inst.store.Write(rec); err != nil {
		return fmt.Errorf("%w: %w", ErrRegistrationWriteFailed, err)
	}
	inst.outcome.Registered = append(inst.outcome.Registered, run.key)
	inst.emit(inst.s.Format(lang.KeyRegistered, run.key))
	inst.log.Info().Str("variant", string(run.id)).Str("key", run.key).Str("path", uninstaller).Msg("registered")
	return nil
}
