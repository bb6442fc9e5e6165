package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// recv: fetch, open and acknowledge queued messages.
func recvCmd() *cobra.Command {
	var max int
	cmd := &cobra.Command{
		Use:   "recv",
		Short: "Fetch and read your queued messages",
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

			// Messages handled before an error are already acked, so print
			// them even when the batch stopped early.
			msgs, err := wire.Messages.ReceiveMessages(cmd.Context(), active, max)
			for _, m := range msgs {
				if m.Failed {
					fmt.Printf("[%s] (failed to decrypt)\n", m.From)
					continue
				}
				fmt.Printf("[%s] %s\n", m.From, m.Text)
			}
			if err != nil {
				return err
			}
			if len(msgs) == 0 {
				fmt.Println("no new messages")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&max, "max", 0, "fetch at most this many messages (0 = all)")
	return cmd
}
