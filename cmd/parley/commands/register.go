package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"parley/internal/domain"
)

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Publish your public key to the relay directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readPIN("PIN", false)
			if err != nil {
				return err
			}
			active, err := wire.Identity.UnlockIdentity(p)
			if err != nil {
				return err
			}
			defer active.Wipe()

			profile := domain.Profile{Username: active.Username, Key: active.Keys.Public}
			if err := wire.Relay.RegisterKey(cmd.Context(), profile); err != nil {
				return err
			}
			fmt.Printf("Registered %s with the relay\n", active.Username)
			return nil
		},
	}
}
