package messages

// Doctor messages for installer health checks.
const (
	DoctorUse             = "doctor [dir]"
	DoctorShort           = "Check the plugin bundle, install directory, and registrations"
	DoctorHealthCheckFmt  = "Checking installer health (bundle: %s)\n\n"
	DoctorFailureSummary  = "Some checks failed. Follow the suggestions above."
	DoctorFailureError    = "doctor checks failed"
	DoctorSuccessSummary  = "Everything looks good."
	DoctorCheckNameBundle = "Bundle"

	DoctorBundleMissingFmt          = "%s is missing files: %s"
	DoctorBundleMissingRecommendFmt = "Unpack the full release archive into %s, or pass --source-dir."
	DoctorBundleCompleteFmt         = "%s files present"

	DoctorCheckNameInstallDir     = "InstallDir"
	DoctorInstallDirMissingFmt    = "%s does not exist yet; it is created on install"
	DoctorInstallDirStatFailedFmt = "cannot read %s: %v"
	DoctorPathNotDirFmt           = "%s is not a directory"
	DoctorPathNotDirRecommend     = "Point --dir at PotPlayer's Extension/Subtitle/Translate folder."
	DoctorDirExistsFmt            = "%s exists"

	DoctorCheckNameRegistration        = "Registry"
	DoctorRegistrationReadFailedFmt    = "%s: cannot read registration: %v"
	DoctorUnregisteredInstallFmt       = "%s is installed but not registered"
	DoctorUnregisteredInstallRecommend = "Re-run the installer and answer yes to the registration prompt."
	DoctorNotInstalledFmt              = "%s is not installed"
	DoctorUninstallerMissingFmt        = "%s registration %s points to a missing uninstaller"
	DoctorReinstallRecommend           = "Re-run the installer for this directory to repair it."
	DoctorFilesMissingFmt              = "%s is registered but its plugin files are missing"
	DoctorRegisteredFmt                = "%s registered as %s"

	DoctorCheckNameAPIKey           = "APIKey"
	DoctorAPIKeyMissing             = "No API key found"
	DoctorAPIKeyMissingRecommendFmt = "Set %s or add api_key to your settings file."
	DoctorAPIKeyFound               = "API key found"

	DoctorCheckNameConfig     = "Config"
	DoctorConfigLoadRecommend = "Fix the settings file and run doctor again."
	DoctorConfigLoadFailedFmt = "Failed to load settings: %v"
	DoctorConfigLoadedFmt     = "Settings loaded from %s"

	DoctorStatusOKLabel        = "[OK]  "
	DoctorStatusWarnLabel      = "[WARN]"
	DoctorStatusFailLabel      = "[FAIL]"
	DoctorResultLineFmt        = "%s %-12s %s\n"
	DoctorRecommendationPrefix = "       💡 "
	DoctorRecommendationIndent = "         "
)
