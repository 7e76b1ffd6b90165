package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pinya-planner/internal/domain"
)

func newMemberCmd(dbPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage troupe members",
	}
	cmd.AddCommand(newMemberListCmd(dbPath))
	cmd.AddCommand(newMemberAddCmd(dbPath))
	return cmd
}

func newMemberListCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openStores(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			members, err := s.roster.ListMembers(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NICKNAME\tNAME\tPOSITION\tPOSITION2\tADMIN")
			for _, m := range members {
				admin := ""
				if m.IsAdmin {
					admin = "yes"
				}
				fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\t%s\n", m.Nickname, m.Name, m.Surname, m.Position, m.Position2, admin)
			}
			return w.Flush()
		},
	}
}

func newMemberAddCmd(dbPath *string) *cobra.Command {
	var (
		name      string
		surname   string
		position  string
		position2 string
		admin     bool
	)
	cmd := &cobra.Command{
		Use:   "add <nickname>",
		Short: "Register a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStores(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			m, err := s.roster.CreateMember(cmd.Context(), domain.CreateMemberRequest{
				Nickname:  args[0],
				Name:      name,
				Surname:   surname,
				Position:  position,
				Position2: position2,
				IsAdmin:   admin,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "member %s created\n", m.Nickname)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "given name")
	cmd.Flags().StringVar(&surname, "surname", "", "family name")
	cmd.Flags().StringVar(&position, "position", "", "primary position")
	cmd.Flags().StringVar(&position2, "position2", "", "secondary position")
	cmd.Flags().BoolVar(&admin, "admin", false, "grant the admin flag")
	return cmd
}
