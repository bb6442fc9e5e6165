package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"parley/internal/app"
)

var (
	home       string
	relayURL   string
	pin        string
	username   string
	iterations int

	wire *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:   "parley",
		Short: "End-to-end encrypted messaging CLI",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".parley")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			var err error
			wire, err = app.NewWire(app.Config{Home: home, RelayURL: relayURL, Iterations: iterations})
			return err
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "data dir (default ~/.parley)")
	root.PersistentFlags().StringVar(&relayURL, "relay", "http://127.0.0.1:8080", "relay base URL")
	root.PersistentFlags().StringVar(&pin, "pin", "", "vault PIN (prompted when empty)")
	root.PersistentFlags().IntVar(&iterations, "kdf-iterations", 0, "PBKDF2 work factor for new vaults (0 = built-in default)")

	root.AddCommand(
		initCmd(),
		restoreCmd(),
		registerCmd(),
		lookupCmd(),
		sendCmd(),
		recvCmd(),
		historyCmd(),
		fingerprintCmd(),
		passwdCmd(),
	)
	return root.Execute()
}
