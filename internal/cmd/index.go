package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// newIndexCmd builds the index inspection command.
func newIndexCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Rebuild the bookmark index and report its contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.close()

			entries := a.index.Entries()
			if !list {
				fmt.Fprintf(os.Stdout, "%d bookmarks indexed\n", len(entries))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Profile, e.Folder, e.Title, e.URL)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "print every indexed bookmark")
	return cmd
}
