package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kholes/mqcred/pkg/logging"
)

var (
	version = "dev" // Will be set during build

	credFile    string
	debug       bool
	showVersion bool
)

func main() {
	cobra.CheckErr(rootCmd.Execute())
}

var rootCmd = &cobra.Command{
	Use:           "mqcredctl",
	Short:         "Manage broker credential files",
	SilenceUsage:  true,
	SilenceErrors: false,
	Long: `mqcredctl manages the JSON credential file used by the broker's
credential authentication plugin.

Passwords are stored as salted PBKDF2-HMAC-SHA512 hashes with a
per-record iteration count; plaintext passwords never touch the file.
A record may pin a client identifier and may be disabled without being
removed.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := logging.LogLevelWarn
		if debug {
			level = logging.LogLevelDebug
		}
		if err := logging.Initialize("", "", level); err != nil {
			return fmt.Errorf("failed to initialize logging: %v", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("mqcredctl %s\n", version)
			return nil
		}
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&credFile, "file", "f", "credentials.json", "path to the credential file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "show version information")
}
