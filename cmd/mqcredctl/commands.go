package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kholes/mqcred/pkg/authentication"
	"github.com/kholes/mqcred/pkg/credentials"
)

var (
	addClientID   string
	passwdValue   string
	checkClientID string
	checkAddr     string
	checkPassword string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty credential file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := credentials.NewFileStore(credFile)
		if err := store.Init(); err != nil {
			return err
		}
		fmt.Printf("Created %s\n", credFile)
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Add a client record",
	Long: `Add a client record with no password material. Until a password is
set with "passwd", authentication for the user defers to other
sources.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := credentials.NewFileStore(credFile)
		if err := store.Add(args[0], addClientID); err != nil {
			return err
		}
		fmt.Printf("Added %s\n", args[0])
		return nil
	},
}

var passwdCmd = &cobra.Command{
	Use:   "passwd <username>",
	Short: "Set a client's password",
	Long: `Set a client's password. The password is read from the terminal
unless --password is given. Setting a password always generates a
fresh random salt and uses the current default iteration count.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pw := passwdValue
		if pw == "" {
			var err error
			pw, err = promptPassword(true)
			if err != nil {
				return err
			}
		}
		if pw == "" {
			return fmt.Errorf("password must not be empty")
		}

		store := credentials.NewFileStore(credFile)
		if err := store.SetPassword(args[0], pw); err != nil {
			return err
		}
		fmt.Printf("Updated password for %s\n", args[0])
		return nil
	},
}

var enableCmd = &cobra.Command{
	Use:   "enable <username>",
	Short: "Re-enable a disabled client record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := credentials.NewFileStore(credFile)
		return store.SetDisabled(args[0], false)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <username>",
	Short: "Disable a client record without removing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := credentials.NewFileStore(credFile)
		return store.SetDisabled(args[0], true)
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <username>",
	Short: "Remove a client record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := credentials.NewFileStore(credFile)
		return store.Remove(args[0])
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List client records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := credentials.NewFileStore(credFile)
		creds, err := store.List()
		if err != nil {
			return err
		}
		for _, cred := range creds {
			line := cred.Username
			if cred.ClientID != "" {
				line += fmt.Sprintf(" clientid=%s", cred.ClientID)
			}
			if cred.Disabled {
				line += " (disabled)"
			}
			if cred.Password == nil {
				line += " (no password)"
			}
			fmt.Println(line)
		}
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <username>",
	Short: "Check a username/password pair against the credential file",
	Long: `Check a username/password pair against the credential file, using
the same decision logic the broker plugin applies on CONNECT. Prints
the outcome (accept, reject, defer or error) and exits non-zero for
anything but accept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pw := checkPassword
		if pw == "" {
			var err error
			pw, err = promptPassword(false)
			if err != nil {
				return err
			}
		}

		auth, err := authentication.NewAuthenticator(credentials.NewFileSource(credFile), nil, nil)
		if err != nil {
			return err
		}

		outcome := auth.Authenticate(args[0], pw, authentication.Client{
			ID:   checkClientID,
			Addr: checkAddr,
		})
		fmt.Println(outcome)
		if outcome != authentication.Accept {
			return fmt.Errorf("authentication outcome: %s", outcome)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addClientID, "clientid", "", "pin the record to a client identifier")
	passwdCmd.Flags().StringVar(&passwdValue, "password", "", "password (prompted when omitted)")
	checkCmd.Flags().StringVar(&checkClientID, "clientid", "", "connecting client identifier")
	checkCmd.Flags().StringVar(&checkAddr, "addr", "", "connecting client address")
	checkCmd.Flags().StringVar(&checkPassword, "password", "", "password (prompted when omitted)")

	rootCmd.AddCommand(initCmd, addCmd, passwdCmd, enableCmd, disableCmd, removeCmd, listCmd, checkCmd)
}
