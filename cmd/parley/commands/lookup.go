package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"parley/internal/crypto"
	"parley/internal/domain"
)

// lookup <peer>: fetch a peer's directory entry without touching the vault.
func lookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <peer>",
		Short: "Fetch a peer's directory entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			peer := domain.Username(args[0])
			profile, err := wire.Relay.LookupKey(cmd.Context(), peer)
			if err != nil {
				return err
			}
			fmt.Printf("Username:     %s\n", profile.Username)
			fmt.Printf("Public key:   %s\n", crypto.B64(profile.Key.Slice()))
			fmt.Printf("Fingerprint:  %s\n", crypto.Fingerprint(profile.Key.Slice()))
			fmt.Printf("Contact code: %s\n", crypto.ContactCode(profile.Key))

			// Sending keeps using the pinned key; a directory answer that
			// disagrees with it is worth shouting about.
			if c, ok, err := wire.Contacts.LoadContact(peer); err == nil && ok && c.Key != profile.Key {
				fmt.Printf("\nWARNING: directory key differs from your pinned key for %s\n", peer)
				fmt.Printf("Pinned fingerprint: %s\n", crypto.Fingerprint(c.Key.Slice()))
				fmt.Println("Verify the contact code out of band before trusting either key.")
			}
			return nil
		},
	}
}
