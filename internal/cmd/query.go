package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// queryRow is the JSON shape of one printed choice. Actions and ranking
// internals are deliberately left out.
type queryRow struct {
	Text    string `json:"text"`
	SubText string `json:"sub_text,omitempty"`
	Type    string `json:"type"`
	Plugin  string `json:"plugin,omitempty"`
	UUID    string `json:"uuid,omitempty"`
	URL     string `json:"url,omitempty"`
}

// newQueryCmd builds the one-shot query command: resolve once, print the
// ranked choices, and exit. Useful for scripting and for inspecting what
// the picker would show.
func newQueryCmd() *cobra.Command {
	var (
		asJSON bool
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "query <text>",
		Short: "Resolve a query once and print the ranked choices",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.close()

			choices := a.engine.Query(strings.Join(args, " "))
			if limit > 0 && len(choices) > limit {
				choices = choices[:limit]
			}

			if asJSON {
				rows := make([]queryRow, 0, len(choices))
				for _, c := range choices {
					rows = append(rows, queryRow{
						Text:    c.Text,
						SubText: c.SubText,
						Type:    c.Type,
						Plugin:  c.Plugin,
						UUID:    c.UUID,
						URL:     c.URL,
					})
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			for _, c := range choices {
				line := c.Text
				if c.SubText != "" {
					line += "\t" + c.SubText
				}
				fmt.Fprintf(os.Stdout, "%-10s %s\n", c.Type, line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print choices as JSON")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum choices to print (0 = all)")
	return cmd
}
