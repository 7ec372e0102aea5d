package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felix3322/potplayer-translate-installer/internal/ledger"
	"github.com/felix3322/potplayer-translate-installer/internal/messages"
	"github.com/felix3322/potplayer-translate-installer/internal/variant"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.StatusUse,
		Short: messages.StatusShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, id := range variant.All() {
				rec, found, err := ledger.FindExisting(store, args[0], id)
				if err != nil {
					return err
				}
				if !found {
					_, _ = fmt.Fprintf(out, messages.StatusNotRegisteredFmt, id)
					continue
				}
				printLines(out,
					fmt.Sprintf(messages.StatusRegisteredFmt, id, rec.Key),
					fmt.Sprintf(messages.StatusFieldFmt, "display_name", rec.DisplayName),
					fmt.Sprintf(messages.StatusFieldFmt, "display_version", rec.DisplayVersion),
					fmt.Sprintf(messages.StatusFieldFmt, "install_location", rec.InstallLocation),
					fmt.Sprintf(messages.StatusFieldFmt, "uninstall_string", rec.UninstallString),
				)
			}
			return nil
		},
	}
}

func newKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.KeyUse,
		Short: messages.KeyShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := variant.Parse(args[1])
			if err != nil {
				return err
			}
			key, err := ledger.Key(args[0], id)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), key)
			return err
		},
	}
}
