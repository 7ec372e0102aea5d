package lang

// Keys read by the installer core and drivers.
const (
	KeyAppTitle              = "app_title"
	KeyInstallingVariant     = "installing_variant"
	KeyCopyingFile           = "copying_file"
	KeyInstalledFile         = "installed_file"
	KeyInstalledOverwritten  = "installed_file_overwritten"
	KeyFileExists            = "file_exists_3choice"
	KeyRename                = "rename"
	KeyInvalidName           = "invalid_name"
	KeyAskRegNew             = "ask_reg_new"
	KeyAskRegUpgrade         = "ask_reg_upgrade"
	KeyAskRegWrite           = "ask_reg_write"
	KeyExistingInstall       = "existing_install_found"
	KeyUpgradeNotice         = "upgrade_notice"
	KeyReinstallNotice       = "reinstall_notice"
	KeyDowngradeNotice       = "downgrade_notice"
	KeyRegistered            = "registered"
	KeyUninstallerWritten    = "uninstaller_written"
	KeyMissingFile           = "missing_file"
	KeyNoVariantSelected     = "no_variant_selected"
	KeyInstallationComplete  = "installation_complete"
	KeyInstallationFailed    = "installation_failed"
	KeyInstallationCancelled = "installation_cancelled"
)

// Keys read by the wizard pages.
const (
	KeyChooseLanguage       = "choose_language"
	KeyLanguageName         = "language_name"
	KeyWelcomeTitle         = "welcome_title"
	KeyWelcomeMessage       = "welcome_message"
	KeyLicenseTitle         = "license_title"
	KeyLicenseAgree         = "license_agree"
	KeyLicenseRequired      = "license_required"
	KeyInstallDirTitle      = "select_install_dir_title"
	KeyInstallDirExplain    = "select_install_dir_explain"
	KeyInstallDirRequired   = "install_dir_required"
	KeyVariantsTitle        = "choose_version_title"
	KeyVariantsExplain      = "version_explain"
	KeyVariantsWarning      = "version_select_warning"
	KeyConfigTitle          = "config_title"
	KeyConfigIntro          = "config_intro"
	KeyConfigCustom         = "config_custom"
	KeyConfigModelPreset    = "config_model_preset"
	KeyConfigModel          = "config_model"
	KeyConfigAPI            = "config_api"
	KeyConfigKey            = "config_key"
	KeyPurchaseHint         = "purchase_hint"
	KeyVerifyPrompt         = "verify_prompt"
	KeyVerifySuccess        = "verify_success"
	KeyVerifyFail           = "verify_fail"
	KeyDelayTitle           = "delay_title"
	KeyDelayIntro           = "delay_intro"
	KeyDelayLabel           = "delay_label"
	KeyRetryTitle           = "retry_title"
	KeyRetryIntro           = "retry_intro"
	KeyContextTitle         = "context_title"
	KeyContextLengthLabel   = "context_length_label"
	KeyContextLengthHint    = "context_length_hint"
	KeyContextTruncLabel    = "context_trunc_label"
	KeyContextCacheLabel    = "context_cache_label"
	KeyContextCacheHint     = "context_cache_hint"
	KeyDebugTitle           = "debug_title"
	KeyDebugLabel           = "debug_label"
	KeySummaryTitle         = "summary_title"
	KeyConfirmInstall       = "confirm_install"
	KeyOverwrite            = "overwrite"
	KeyRenameOption         = "rename_option"
	KeyCancel               = "cancel"
	KeyDiffPreviewTitle     = "diff_preview_title"
	KeyInstallProgressTitle = "install_progress_title"
	KeyFinishTitle          = "finish_title"
)
