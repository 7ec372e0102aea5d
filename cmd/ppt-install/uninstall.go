package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felix3322/potplayer-translate-installer/internal/ledger"
	"github.com/felix3322/potplayer-translate-installer/internal/messages"
	"github.com/felix3322/potplayer-translate-installer/internal/variant"
)

func newUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.UninstallUse,
		Short: messages.UninstallShort,
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
			flavor := uninstallerFlavor()
			path := ledger.UninstallerPath(args[0], key, flavor)
			if _, err := os.Stat(path); err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf(messages.UninstallMissingFmt, id, args[0])
				}
				return err
			}
			if err := runUninstaller(cmd.Context(), path, flavor); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), messages.UninstallDoneFmt, id)
			return err
		},
	}
}
