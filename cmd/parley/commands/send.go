package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"parley/internal/domain"
)

// send <peer> <message>: seal and send a message to <peer>.
func sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <peer> <message>",
		Short: "Seal and send a message to a peer",
		Args:  cobra.ExactArgs(2),
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

			rec, err := wire.Messages.SendMessage(
				cmd.Context(), active, domain.Username(args[0]), args[1])
			if err != nil {
				return err
			}
			fmt.Printf("sent %s\n", rec.ID)
			return nil
		},
	}
}
