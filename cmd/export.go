package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caseops/casectl/pkg/api"
	"github.com/caseops/casectl/pkg/export"
	"github.com/caseops/casectl/pkg/records"
)

var exportCmd = &cobra.Command{
	Use:   "export <type>",
	Short: "Export a collection to an .xlsx workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			out = args[0] + ".xlsx"
		}
		search, _ := cmd.Flags().GetString("search")
		pageSize, _ := cmd.Flags().GetInt("page-size")
		maxPages, _ := cmd.Flags().GetInt("max-pages")
		sheet, _ := cmd.Flags().GetString("sheet")

		client := newClient()
		ctx := context.Background()

		var all []*records.Record
		for page := 1; page <= maxPages; page++ {
			result, err := client.List(ctx, args[0], api.ListOptions{
				Page:     page,
				PageSize: pageSize,
				Search:   search,
			})
			if err != nil {
				return err
			}
			all = append(all, result.Items...)
			if len(result.Items) < pageSize {
				break
			}
			if result.Total >= 0 && len(all) >= result.Total {
				break
			}
		}

		if err := export.WriteXLSX(out, sheet, all); err != nil {
			return err
		}
		fmt.Printf("Exported %d record(s) to %s\n", len(all), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output path (default: <type>.xlsx)")
	exportCmd.Flags().StringP("search", "s", "", "Search filter")
	exportCmd.Flags().Int("page-size", 100, "Records per request")
	exportCmd.Flags().Int("max-pages", 50, "Safety cap on pages fetched")
	exportCmd.Flags().String("sheet", "Records", "Worksheet name")
	rootCmd.AddCommand(exportCmd)
}
