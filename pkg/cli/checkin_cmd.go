package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pinya-planner/internal/domain"
)

func newCheckinCmd(dbPath *string) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "checkin <nickname>",
		Short: "Record a member check-in",
		Long:  "Record a check-in for a date. Unknown nicknames are registered as new members.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStores(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			if date == "" {
				date = domain.Today()
			}
			if err := s.roster.CheckIn(cmd.Context(), args[0], date); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s checked in for %s\n", args[0], date)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "check-in date (default today)")
	return cmd
}
