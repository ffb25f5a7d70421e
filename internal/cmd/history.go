package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// newHistoryCmd builds the selection-history command group.
func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show and manage past selections",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			filter, _ := cmd.Flags().GetString("filter")
			return showHistory(limit, filter)
		},
	}
	cmd.Flags().Int("limit", 25, "maximum rows to print")
	cmd.Flags().String("filter", "", "only show selections containing this text")

	cmd.AddCommand(newHistoryClearCmd())
	return cmd
}

func showHistory(limit int, filter string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	if a.selections == nil {
		return fmt.Errorf("selection log unavailable")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rows, err := a.selections.Recent(ctx, filter, limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, row := range rows {
		when := time.Unix(row.TsUnix, 0).Format("2006-01-02 15:04")
		fmt.Fprintf(w, "%s\t%s\t%s\t%q\n", when, row.Plugin, row.Text, row.Query)
	}
	return w.Flush()
}

// newHistoryClearCmd wipes both the selection log and the usage history,
// resetting ranking to alphabetical.
func newHistoryClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded selections and usage history",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.close()

			a.frecency.Clear()

			if a.selections != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := a.selections.Clear(ctx); err != nil {
					return err
				}
			}
			fmt.Fprintln(os.Stdout, "history cleared")
			return nil
		},
	}
}
