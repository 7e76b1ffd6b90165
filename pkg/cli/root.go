// Package cli implements the pinya administration CLI. Commands operate
// directly on the SQLite database, so they work without a running server.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// Execute runs the CLI.
func Execute() int {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// NewRootCmd builds the root command tree. Exported for tests.
func NewRootCmd() *cobra.Command {
	var dbPath string

	rootCmd := &cobra.Command{
		Use:           "pinya",
		Short:         "Pinya planning administration CLI",
		Long:          "Command-line administration for the pinya planning database: members, layouts, publication, and check-ins.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			// Flag > env > default.
			if dbPath == "" {
				dbPath = os.Getenv("DB_PATH")
			}
			if dbPath == "" {
				dbPath = "pinya.sqlite"
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the SQLite database (default $DB_PATH or pinya.sqlite)")

	rootCmd.AddCommand(newMigrateCmd(&dbPath))
	rootCmd.AddCommand(newMemberCmd(&dbPath))
	rootCmd.AddCommand(newLayoutCmd(&dbPath))
	rootCmd.AddCommand(newCheckinCmd(&dbPath))

	return rootCmd
}
