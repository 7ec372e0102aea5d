package messages

// Ledger messages for registration records and uninstallers.
const (
	LedgerInstallDirRequired        = "install directory is required"
	LedgerKeyRequired               = "registration key is required"
	LedgerExpandDirFailedFmt        = "expand ledger directory %s: %w"
	LedgerResolveDirFailedFmt       = "resolve install directory %s: %w"
	LedgerReadFailedFmt             = "read registration %s: %w"
	LedgerDecodeFailedFmt           = "decode registration %s: %w"
	LedgerEncodeFailedFmt           = "encode registration %s: %w"
	LedgerWriteFailedFmt            = "write registration %s: %w"
	LedgerDeleteFailedFmt           = "delete registration %s: %w"
	LedgerUninstallerWriteFailedFmt = "write uninstaller %s: %w"
	LedgerUninstallerRunFailedFmt   = "run uninstaller %s: %w: %s"
)
