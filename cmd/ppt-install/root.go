package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/felix3322/potplayer-translate-installer/internal/config"
	"github.com/felix3322/potplayer-translate-installer/internal/install"
	"github.com/felix3322/potplayer-translate-installer/internal/lang"
	"github.com/felix3322/potplayer-translate-installer/internal/ledger"
	"github.com/felix3322/potplayer-translate-installer/internal/messages"
	"github.com/felix3322/potplayer-translate-installer/internal/prompt"
	"github.com/felix3322/potplayer-translate-installer/internal/terminal"
	"github.com/felix3322/potplayer-translate-installer/internal/verify"
	"github.com/felix3322/potplayer-translate-installer/internal/wizard"
)

var (
	openStore         = ledger.DefaultStore
	isTerminal        = terminal.IsInteractive
	executablePath    = os.Executable
	newUI             = func() wizard.UI { return wizard.NewHuhUI() }
	checkAPI          = verify.Check
	runUninstaller    = ledger.RunUninstaller
	uninstallerFlavor = ledger.DefaultFlavor
)

const defaultLogLevel = "warn"

type rootFlags struct {
	logLevel string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", defaultLogLevel, messages.RootFlagLogLevel)

	cmd.AddCommand(
		newInstallCmd(flags),
		newWizardCmd(flags),
		newStatusCmd(),
		newKeyCmd(),
		newVerifyCmd(),
		newDoctorCmd(),
		newUninstallCmd(),
	)
	return cmd
}

// logger builds the diagnostic logger written to w. The orchestrator logs
// from its own goroutine, so writes to w are serialized.
func (f *rootFlags) logger(w io.Writer) (zerolog.Logger, error) {
	raw := strings.ToLower(strings.TrimSpace(f.logLevel))
	if raw == "" {
		raw = defaultLogLevel
	}
	level, err := zerolog.ParseLevel(raw)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf(messages.RootLogLevelInvalidFmt, f.logLevel)
	}
	return zerolog.New(zerolog.SyncWriter(zerolog.ConsoleWriter{Out: w, NoColor: true})).
		Level(level).
		With().
		Timestamp().
		Logger(), nil
}

// defaultSourceDir is the directory holding the installer executable, where
// the plugin bundle ships.
func defaultSourceDir() (string, error) {
	exe, err := executablePath()
	if err != nil {
		return "", fmt.Errorf(messages.RootExecutablePathFailedFmt, err)
	}
	return filepath.Dir(exe), nil
}

// baseOptions loads the shared collaborators of an install run. Prompter
// and Reporter are set by the run itself.
func baseOptions(log *zerolog.Logger) (install.Options, error) {
	table, err := lang.Load()
	if err != nil {
		return install.Options{}, err
	}
	limits, err := config.LoadTokenLimits()
	if err != nil {
		return install.Options{}, err
	}
	store, err := openStore()
	if err != nil {
		return install.Options{}, err
	}
	return install.Options{
		System:      install.RealSystem{},
		Ledger:      store,
		Strings:     table,
		TokenLimits: limits,
		Logger:      log,
	}, nil
}

// exitForOutcome maps a finished run to the process exit code. The driver
// has already reported the result.
func exitForOutcome(out install.Outcome) error {
	switch out.Status {
	case prompt.StatusSuccess:
		return nil
	case prompt.StatusCancelled:
		return &SilentExitError{Code: exitCancelled}
	default:
		return &SilentExitError{Code: exitFailed}
	}
}

const (
	exitFailed    = 1
	exitCancelled = 2
)
