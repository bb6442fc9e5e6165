package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"parley/internal/domain"
)

// restore: rebuild the identity from a recovery phrase, replacing whatever
// vault is on disk.
func restoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Rebuild your identity from a recovery phrase",
		RunE: func(cmd *cobra.Command, args []string) error {
			phrase, err := promptLine("Recovery phrase")
			if err != nil {
				return err
			}
			p, err := readPIN("Choose a new PIN", true)
			if err != nil {
				return err
			}

			id, fp, err := wire.Identity.RestoreIdentity(domain.Username(username), phrase, p)
			if err != nil {
				return err
			}
			fmt.Printf("Identity restored for %s.\nFingerprint: %s\n", id.Username, fp)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "name peers will address you by")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}
