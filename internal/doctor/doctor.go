// Package doctor runs read-only health checks over a plugin bundle, an install
// directory, and its registrations.
package doctor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/felix3322/potplayer-translate-installer/internal/config"
	"github.com/felix3322/potplayer-translate-installer/internal/ledger"
	"github.com/felix3322/potplayer-translate-installer/internal/messages"
	"github.com/felix3322/potplayer-translate-installer/internal/variant"
)

// Status is the outcome of one check.
type Status string

const (
	StatusOK   Status = "OK"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Result is one reported finding.
type Result struct {
	Status         Status
	CheckName      string
	Message        string
	Recommendation string
}

var statFunc = os.Stat

// Failed reports whether any result failed.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}

// CheckBundle verifies that every source file of every variant is present in
// sourceDir.
func CheckBundle(sourceDir string) []Result {
	var results []Result
	for _, id := range variant.All() {
		var missing []string
		for _, pair := range variant.Files(id) {
			info, err := statFunc(filepath.Join(sourceDir, pair.Source))
			if err != nil || info.IsDir() {
				missing = append(missing, pair.Source)
			}
		}
		if len(missing) > 0 {
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameBundle,
				Message:        fmt.Sprintf(messages.DoctorBundleMissingFmt, id, strings.Join(missing, ", ")),
				Recommendation: fmt.Sprintf(messages.DoctorBundleMissingRecommendFmt, sourceDir),
			})
			continue
		}
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameBundle,
			Message:   fmt.Sprintf(messages.DoctorBundleCompleteFmt, id),
		})
	}
	return results
}

// CheckInstallDir reports whether dir is usable as an install directory. A
// missing directory is only a warning; the installer creates it.
func CheckInstallDir(dir string) Result {
	info, err := statFunc(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return Result{
			Status:    StatusWarn,
			CheckName: messages.DoctorCheckNameInstallDir,
			Message:   fmt.Sprintf(messages.DoctorInstallDirMissingFmt, dir),
		}
	case err != nil:
		return Result{
			Status:    StatusFail,
			CheckName: messages.DoctorCheckNameInstallDir,
			Message:   fmt.Sprintf(messages.DoctorInstallDirStatFailedFmt, dir, err),
		}
	case !info.IsDir():
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameInstallDir,
			Message:        fmt.Sprintf(messages.DoctorPathNotDirFmt, dir),
			Recommendation: messages.DoctorPathNotDirRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameInstallDir,
		Message:   fmt.Sprintf(messages.DoctorDirExistsFmt, dir),
	}
}

// CheckRegistrations reports, per variant, whether the registration record,
// its uninstaller, and the installed files agree.
func CheckRegistrations(store ledger.Store, dir string, flavor ledger.Flavor) []Result {
	var results []Result
	for _, id := range variant.All() {
		key, err := ledger.Key(dir, id)
		if err != nil {
			results = append(results, Result{
				Status:    StatusFail,
				CheckName: messages.DoctorCheckNameRegistration,
				Message:   err.Error(),
			})
			continue
		}
		_, found, err := store.Find(key)
		if err != nil {
			results = append(results, Result{
				Status:    StatusFail,
				CheckName: messages.DoctorCheckNameRegistration,
				Message:   fmt.Sprintf(messages.DoctorRegistrationReadFailedFmt, id, err),
			})
			continue
		}
		installed := installedFiles(dir, id)
		if !found {
			if installed {
				results = append(results, Result{
					Status:         StatusWarn,
					CheckName:      messages.DoctorCheckNameRegistration,
					Message:        fmt.Sprintf(messages.DoctorUnregisteredInstallFmt, id),
					Recommendation: messages.DoctorUnregisteredInstallRecommend,
				})
				continue
			}
			results = append(results, Result{
				Status:    StatusOK,
				CheckName: messages.DoctorCheckNameRegistration,
				Message:   fmt.Sprintf(messages.DoctorNotInstalledFmt, id),
			})
			continue
		}
		if _, err := statFunc(ledger.UninstallerPath(dir, key, flavor)); err != nil {
			results = append(results, Result{
				Status:         StatusWarn,
				CheckName:      messages.DoctorCheckNameRegistration,
				Message:        fmt.Sprintf(messages.DoctorUninstallerMissingFmt, id, key),
				Recommendation: messages.DoctorReinstallRecommend,
			})
			continue
		}
		if !installed {
			results = append(results, Result{
				Status:         StatusWarn,
				CheckName:      messages.DoctorCheckNameRegistration,
				Message:        fmt.Sprintf(messages.DoctorFilesMissingFmt, id),
				Recommendation: messages.DoctorReinstallRecommend,
			})
			continue
		}
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameRegistration,
			Message:   fmt.Sprintf(messages.DoctorRegisteredFmt, id, key),
		})
	}
	return results
}

// installedFiles reports whether every manifest file of id sits in dir under
// its default name.
func installedFiles(dir string, id variant.ID) bool {
	for _, pair := range variant.Files(id) {
		if _, err := statFunc(filepath.Join(dir, pair.Dest)); err != nil {
			return false
		}
	}
	return true
}

// CheckAPIKey reports whether an API key can be resolved from explicit,
// envFile, or the environment.
func CheckAPIKey(explicit string, envFile string) Result {
	key, err := config.ResolveAPIKey(explicit, envFile)
	if err != nil {
		return Result{
			Status:    StatusFail,
			CheckName: messages.DoctorCheckNameAPIKey,
			Message:   err.Error(),
		}
	}
	if key == "" {
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameAPIKey,
			Message:        messages.DoctorAPIKeyMissing,
			Recommendation: fmt.Sprintf(messages.DoctorAPIKeyMissingRecommendFmt, config.EnvAPIKey),
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameAPIKey,
		Message:   messages.DoctorAPIKeyFound,
	}
}

// CheckConfigFile validates the install file at path.
func CheckConfigFile(path string) Result {
	if _, err := config.LoadFile(path); err != nil {
		recommend := messages.DoctorConfigLoadRecommend
		if !errors.Is(err, config.ErrConfigValidation) {
			recommend = ""
		}
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameConfig,
			Message:        fmt.Sprintf(messages.DoctorConfigLoadFailedFmt, err),
			Recommendation: recommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameConfig,
		Message:   fmt.Sprintf(messages.DoctorConfigLoadedFmt, path),
	}
}
