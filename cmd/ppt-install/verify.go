package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felix3322/potplayer-translate-installer/internal/config"
	"github.com/felix3322/potplayer-translate-installer/internal/messages"
	"github.com/felix3322/potplayer-translate-installer/internal/verify"
)

func newVerifyCmd() *cobra.Command {
	var provider, model, apiBase, apiKey, envFile string

	cmd := &cobra.Command{
		Use:   messages.VerifyUse,
		Short: messages.VerifyShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolvedModel, base, err := config.Selection{Provider: provider, Model: model, APIBase: apiBase}.Resolve()
			if err != nil {
				return err
			}
			key, err := config.ResolveAPIKey(apiKey, envFile)
			if err != nil {
				return err
			}
			if err := checkAPI(cmd.Context(), resolvedModel, base, key); err != nil {
				if verify.IsRateLimitError(err) {
					return fmt.Errorf(messages.VerifyRetryLaterFmt, err)
				}
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), messages.VerifyOKFmt, resolvedModel, verify.Endpoint(base))
			return err
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", messages.InstallFlagProvider)
	cmd.Flags().StringVar(&model, "model", "", messages.InstallFlagModel)
	cmd.Flags().StringVar(&apiBase, "api-base", "", messages.InstallFlagAPIBase)
	cmd.Flags().StringVar(&apiKey, "api-key", "", messages.InstallFlagAPIKey)
	cmd.Flags().StringVar(&envFile, "env-file", "", messages.InstallFlagEnvFile)
	return cmd
}
