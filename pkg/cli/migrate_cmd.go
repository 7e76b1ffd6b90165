package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openStores(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "database %s is up to date\n", *dbPath)
			return nil
		},
	}
}
