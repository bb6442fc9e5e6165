package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"parley/internal/crypto"
)

func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print your fingerprint and contact code",
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

			fmt.Printf("Username:     %s\n", active.Username)
			fmt.Printf("Fingerprint:  %s\n", crypto.Fingerprint(active.Keys.Public.Slice()))
			fmt.Printf("Contact code: %s\n", crypto.ContactCode(active.Keys.Public))
			return nil
		},
	}
}
