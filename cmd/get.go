package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <type> <id>",
	Short: "Fetch one record and show its editable fields",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		rec, err := client.GetRecord(context.Background(), args[0], args[1])
		if err != nil {
			return err
		}

		showRaw, _ := cmd.Flags().GetBool("raw")
		if !cmd.Flags().Changed("raw") {
			st := openState()
			showRaw = st.ShowRaw()
			st.Close()
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			fmt.Println(rec.Raw())
			return nil
		}
		printRecord(rec, showRaw)
		return nil
	},
}

func init() {
	getCmd.Flags().Bool("raw", false, "Also print the raw record (default: stored preference)")
	getCmd.Flags().Bool("json", false, "Print the raw JSON only")
	rootCmd.AddCommand(getCmd)
}
