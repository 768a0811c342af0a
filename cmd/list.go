package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/caseops/casectl/internal/utils"
	"github.com/caseops/casectl/pkg/api"
	"github.com/caseops/casectl/pkg/records"
)

var listCmd = &cobra.Command{
	Use:   "list <type>",
	Short: "List records of a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")
		search, _ := cmd.Flags().GetString("search")

		client := newClient()
		result, err := client.List(context.Background(), args[0], api.ListOptions{
			Page:     page,
			PageSize: pageSize,
			Search:   search,
		})
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			for _, rec := range result.Items {
				fmt.Println(rec.Raw())
			}
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSUMMARY\tSTATUS")
		for _, rec := range result.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\n", rec.ID(), utils.Truncate(summarize(rec), 60), rec.Get("status").String())
		}
		w.Flush()

		if result.Total >= 0 {
			fmt.Printf("\n%d of %d record(s)\n", len(result.Items), result.Total)
		} else {
			fmt.Printf("\n%d record(s)\n", len(result.Items))
		}
		return nil
	},
}

// summarize picks the first human-looking field a record carries.
func summarize(rec *records.Record) string {
	for _, key := range []string{"full_name", "name", "title", "username", "label", "description"} {
		if v := rec.Get(key); v.String() != "" {
			return v.String()
		}
	}
	return ""
}

func init() {
	listCmd.Flags().Int("page", 1, "Page number")
	listCmd.Flags().Int("page-size", 25, "Records per page")
	listCmd.Flags().StringP("search", "s", "", "Search filter")
	listCmd.Flags().Bool("json", false, "Print raw JSON records")
	rootCmd.AddCommand(listCmd)
}
