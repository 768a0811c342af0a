package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/caseops/casectl/internal/utils"
	"github.com/caseops/casectl/pkg/api"
	"github.com/caseops/casectl/pkg/debounce"
)

var searchCmd = &cobra.Command{
	Use:   "search <type>",
	Short: "Interactive search-as-you-type over a collection",
	Long: `Reads query lines from stdin and looks them up against the backend.
Input is debounced: only the last value of a quick burst hits the network,
and repeating the previous query is suppressed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, _ := cmd.Flags().GetDuration("debounce")
		limit, _ := cmd.Flags().GetInt("limit")

		client := newClient()
		ctx := context.Background()

		d := debounce.New(interval)
		go func() {
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				d.Send(strings.TrimSpace(scanner.Text()))
			}
			d.Close()
		}()

		fmt.Println("Type a query and press enter (Ctrl+D to exit)")
		for query := range d.C() {
			if query == "" {
				continue
			}
			page, err := client.List(ctx, args[0], api.ListOptions{Search: query, PageSize: limit})
			if err != nil {
				utils.Log.Error("search failed: ", err)
				continue
			}
			fmt.Printf("%q: %d match(es)\n", query, len(page.Items))
			for _, rec := range page.Items {
				fmt.Printf("  %s  %s\n", rec.ID(), utils.Truncate(summarize(rec), 60))
			}
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().Duration("debounce", 200*time.Millisecond, "Quiet period before a lookup fires")
	searchCmd.Flags().Int("limit", 10, "Max matches per lookup")
	rootCmd.AddCommand(searchCmd)
}
