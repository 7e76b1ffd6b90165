package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"pinya-planner/internal/domain"
)

func newLayoutCmd(dbPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Manage saved layouts and their publication",
	}
	cmd.AddCommand(newLayoutListCmd(dbPath))
	cmd.AddCommand(newLayoutPublishCmd(dbPath))
	cmd.AddCommand(newLayoutUnpublishCmd(dbPath))
	cmd.AddCommand(newLayoutDeleteCmd(dbPath))
	return cmd
}

func newLayoutListCmd(dbPath *string) *cobra.Command {
	var folder string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openStores(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			var folderFilter *string
			if cmd.Flags().Changed("folder") {
				folderFilter = &folder
			}
			layouts, err := s.layouts.List(cmd.Context(), folderFilter)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tFOLDER\tROLES\tPUBLISHED")
			for _, l := range layouts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					l.ID, l.Name, l.Folder, len(l.Positions), strings.Join(l.PublishedDates, ","))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&folder, "folder", "", "only layouts in this folder")
	return cmd
}

func newLayoutPublishCmd(dbPath *string) *cobra.Command {
	var (
		date   string
		global bool
	)
	cmd := &cobra.Command{
		Use:   "publish <layout-id>...",
		Short: "Publish layouts for a date or globally",
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			var set []string
			cmd.Flags().Visit(func(f *pflag.Flag) {
				if f.Name == "date" || f.Name == "global" {
					set = append(set, f.Name)
				}
			})
			if len(set) != 1 {
				return fmt.Errorf("exactly one of --date or --global is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStores(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			mode := domain.PublishDated
			if global {
				mode = domain.PublishGlobal
			}
			err = s.layouts.Publish(cmd.Context(), domain.PublishRequest{
				LayoutIDs: args,
				Mode:      mode,
				Date:      date,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published %d layout(s)\n", len(args))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "ISO date (YYYY-MM-DD) the layouts become visible on")
	cmd.Flags().BoolVar(&global, "global", false, "publish for every date")
	return cmd
}

func newLayoutUnpublishCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "unpublish <layout-id>...",
		Short: "Clear layouts' publication state",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStores(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.layouts.Unpublish(cmd.Context(), args); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "unpublished %d layout(s)\n", len(args))
			return nil
		},
	}
}

func newLayoutDeleteCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <layout-id>",
		Short: "Delete a layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStores(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.layouts.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "layout %s deleted\n", args[0])
			return nil
		},
	}
}
