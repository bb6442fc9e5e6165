package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"parley/internal/domain"
)

// history [peer]: list the local archive of sent messages. The wire copy of
// a sent message cannot be reopened by its author, so this archive is the
// only place your own messages stay readable.
func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [peer]",
		Short: "Show the local archive of sent messages",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var peer domain.Username
			if len(args) == 1 {
				peer = domain.Username(args[0])
			}

			records, err := wire.Messages.SentHistory(peer)
			if err != nil {
				return err
			}
			for _, r := range records {
				at := time.Unix(r.SentAt, 0).Format("2006-01-02 15:04")
				fmt.Printf("[%s] to %s: %s\n", at, r.To, r.Text)
			}
			if len(records) == 0 {
				fmt.Println("no sent messages")
			}
			return nil
		},
	}
}
