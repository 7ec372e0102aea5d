package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felix3322/potplayer-translate-installer/internal/config"
	"github.com/felix3322/potplayer-translate-installer/internal/messages"
	"github.com/felix3322/potplayer-translate-installer/internal/wizard"
)

func newWizardCmd(root *rootFlags) *cobra.Command {
	var dir, sourceDir, language string

	cmd := &cobra.Command{
		Use:   messages.WizardUse,
		Short: messages.WizardShort,
		Long:  messages.WizardLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := root.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			opts, err := baseOptions(&log)
			if err != nil {
				return err
			}
			source := strings.TrimSpace(sourceDir)
			if source == "" {
				if source, err = defaultSourceDir(); err != nil {
					return err
				}
			}

			initial := wizard.NewChoices()
			if dir != "" {
				if initial.Dir, err = config.ResolvePath("", dir); err != nil {
					return err
				}
			}
			if language != "" {
				initial.Language = opts.Strings.Match(language)
			}

			ui := newUI()
			choices, err := wizard.Collect(cmd.Context(), ui, opts.Strings, initial)
			if err != nil {
				if errors.Is(err, wizard.ErrAborted) {
					return &SilentExitError{Code: exitCancelled}
				}
				return err
			}
			req, err := choices.Request(source)
			if err != nil {
				return err
			}
			driver := wizard.NewDriver(ui, cmd.OutOrStdout(), opts.Strings, choices.Language)
			out, err := wizard.Install(cmd.Context(), req, opts, driver)
			if err != nil {
				return err
			}
			return exitForOutcome(out)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", messages.WizardFlagDir)
	cmd.Flags().StringVar(&sourceDir, "source-dir", "", messages.InstallFlagSourceDir)
	cmd.Flags().StringVar(&language, "lang", "", messages.InstallFlagLang)
	return cmd
}
