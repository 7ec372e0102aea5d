package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felix3322/potplayer-translate-installer/internal/config"
	"github.com/felix3322/potplayer-translate-installer/internal/install"
	"github.com/felix3322/potplayer-translate-installer/internal/lang"
	"github.com/felix3322/potplayer-translate-installer/internal/messages"
	"github.com/felix3322/potplayer-translate-installer/internal/prompt"
	"github.com/felix3322/potplayer-translate-installer/internal/variant"
	"github.com/felix3322/potplayer-translate-installer/internal/wizard"
)

type installFlags struct {
	configPath   string
	dir          string
	variants     []string
	sourceDir    string
	language     string
	provider     string
	model        string
	apiBase      string
	apiKey       string
	envFile      string
	delayMS      int
	retryMode    string
	debug        bool
	yes          bool
	onConflict   string
	renameSuffix string
}

func newInstallCmd(root *rootFlags) *cobra.Command {
	flags := &installFlags{}
	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Long:  messages.InstallLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := flags.file(cmd)
			if err != nil {
				return err
			}
			req, err := buildRequest(file)
			if err != nil {
				return err
			}
			conflict, err := prompt.ParseChoice(flags.onConflict)
			if err != nil {
				return err
			}
			log, err := root.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			opts, err := baseOptions(&log)
			if err != nil {
				return err
			}

			var driver prompt.Driver
			if isTerminal() && !flags.yes {
				driver = wizard.NewDriver(newUI(), cmd.OutOrStdout(), opts.Strings, req.Language)
			} else {
				driver = &wizard.AutoDriver{
					Out:          cmd.OutOrStdout(),
					OnConflict:   conflict,
					RenameSuffix: flags.renameSuffix,
					Register:     flags.yes,
				}
			}
			out, err := wizard.Install(cmd.Context(), req, opts, driver)
			if err != nil {
				return err
			}
			return exitForOutcome(out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.configPath, "config", "", messages.InstallFlagConfig)
	f.StringVar(&flags.dir, "dir", "", messages.InstallFlagDir)
	f.StringSliceVar(&flags.variants, "variant", nil, messages.InstallFlagVariant)
	f.StringVar(&flags.sourceDir, "source-dir", "", messages.InstallFlagSourceDir)
	f.StringVar(&flags.language, "lang", "", messages.InstallFlagLang)
	f.StringVar(&flags.provider, "provider", "", messages.InstallFlagProvider)
	f.StringVar(&flags.model, "model", "", messages.InstallFlagModel)
	f.StringVar(&flags.apiBase, "api-base", "", messages.InstallFlagAPIBase)
	f.StringVar(&flags.apiKey, "api-key", "", messages.InstallFlagAPIKey)
	f.StringVar(&flags.envFile, "env-file", "", messages.InstallFlagEnvFile)
	f.IntVar(&flags.delayMS, "delay-ms", 0, messages.InstallFlagDelay)
	f.StringVar(&flags.retryMode, "retry-mode", "", messages.InstallFlagRetry)
	f.BoolVar(&flags.debug, "debug", false, messages.InstallFlagDebug)
	f.BoolVarP(&flags.yes, "yes", "y", false, messages.InstallFlagYes)
	f.StringVar(&flags.onConflict, "on-conflict", prompt.ChoiceCancel.String(), messages.InstallFlagOnConflict)
	f.StringVar(&flags.renameSuffix, "rename-suffix", wizard.DefaultRenameSuffix, messages.InstallFlagRenameSuffix)
	return cmd
}

// file loads the install file named by --config, or an empty one, and lays
// the explicitly set flags over it.
func (o *installFlags) file(cmd *cobra.Command) (*config.File, error) {
	file := &config.File{}
	if strings.TrimSpace(o.configPath) != "" {
		loaded, err := config.LoadFile(o.configPath)
		if err != nil {
			return nil, err
		}
		file = loaded
	}

	changed := cmd.Flags().Changed
	strs := []struct {
		flag  string
		value string
		dst   *string
	}{
		{"dir", o.dir, &file.Install.Dir},
		{"source-dir", o.sourceDir, &file.Install.SourceDir},
		{"lang", o.language, &file.Install.Language},
		{"provider", o.provider, &file.API.Provider},
		{"model", o.model, &file.API.Model},
		{"api-base", o.apiBase, &file.API.BaseURL},
		{"api-key", o.apiKey, &file.API.Key},
		{"env-file", o.envFile, &file.API.EnvFile},
		{"retry-mode", o.retryMode, &file.Behavior.RetryMode},
	}
	for _, s := range strs {
		if changed(s.flag) {
			*s.dst = s.value
		}
	}
	for _, p := range []*string{&file.Install.Dir, &file.Install.SourceDir, &file.API.EnvFile} {
		if !strings.HasPrefix(*p, "~") {
			continue
		}
		resolved, err := config.ResolvePath("", *p)
		if err != nil {
			return nil, err
		}
		*p = resolved
	}
	if changed("variant") {
		file.Install.Variants = o.variants
	}
	if len(file.Install.Variants) == 0 {
		file.Install.Variants = []string{string(variant.WithContext)}
	}
	if changed("delay-ms") {
		delay := o.delayMS
		file.Behavior.DelayMS = &delay
	}
	if changed("debug") {
		file.Behavior.Debug = o.debug
	}
	if err := file.Validate(messages.InstallFlagsSource); err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrConfigValidation, err)
	}
	return file, nil
}

// buildRequest turns a validated install file into an install request.
func buildRequest(file *config.File) (install.Request, error) {
	if strings.TrimSpace(file.Install.Dir) == "" {
		return install.Request{}, fmt.Errorf(messages.InstallDirRequired)
	}
	ids, err := file.VariantIDs()
	if err != nil {
		return install.Request{}, err
	}
	cfg, err := file.Configuration()
	if err != nil {
		return install.Request{}, err
	}
	cfg.APIKey, err = config.ResolveAPIKey(file.API.Key, file.API.EnvFile)
	if err != nil {
		return install.Request{}, err
	}
	source := file.Install.SourceDir
	if strings.TrimSpace(source) == "" {
		if source, err = defaultSourceDir(); err != nil {
			return install.Request{}, err
		}
	}
	language := file.Install.Language
	if strings.TrimSpace(language) == "" {
		language = lang.English
	}
	return install.Request{
		Dir:       file.Install.Dir,
		Variants:  ids,
		SourceDir: source,
		Language:  language,
		Config:    cfg,
	}, nil
}

// printLines writes each line followed by a newline.
func printLines(w io.Writer, lines ...string) {
	for _, line := range lines {
		_, _ = fmt.Fprintln(w, line)
	}
}
