package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// passwd: re-seal the vault under a new PIN. The vault package re-derives
// at its current default work factor, so changing the PIN also migrates
// older vaults to the newer iteration count.
func passwdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change the vault PIN",
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := readPIN("Current PIN", false)
			if err != nil {
				return err
			}
			next, err := promptSecret("New PIN", true)
			if err != nil {
				return err
			}

			if err := wire.Identity.ChangePIN(current, next); err != nil {
				return err
			}
			fmt.Println("PIN changed")
			return nil
		},
	}
}
