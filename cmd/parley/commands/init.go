package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"parley/internal/domain"
)

func initCmd() *cobra.Command {
	var recoverable bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create your identity and seal it under a PIN",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readPIN("Choose a PIN", true)
			if err != nil {
				return err
			}

			if recoverable {
				id, fp, phrase, err := wire.Identity.CreateRecoverableIdentity(
					domain.Username(username), p)
				if err != nil {
					return err
				}
				fmt.Printf("Identity created for %s.\nFingerprint: %s\n", id.Username, fp)
				fmt.Printf("\nRecovery phrase (write it down now, it is shown once):\n  %s\n", phrase)
				return nil
			}

			id, fp, err := wire.Identity.CreateIdentity(domain.Username(username), p)
			if err != nil {
				return err
			}
			fmt.Printf("Identity created for %s.\nFingerprint: %s\n", id.Username, fp)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "name peers will address you by")
	_ = cmd.MarkFlagRequired("username")
	cmd.Flags().BoolVar(&recoverable, "recovery", false, "derive keys from a recovery phrase and print it")
	return cmd
}
