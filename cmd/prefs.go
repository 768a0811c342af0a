package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change stored console preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := openState()
		defer st.Close()

		if layout, _ := cmd.Flags().GetString("layout"); layout != "" {
			st.SetLayout(layout)
		}
		if cmd.Flags().Changed("show-raw") {
			showRaw, _ := cmd.Flags().GetBool("show-raw")
			st.SetShowRaw(showRaw)
		}

		layout := st.Layout()
		if layout == "" {
			layout = "table"
		}
		fmt.Printf("layout: %s\n", layout)
		fmt.Printf("show-raw: %t\n", st.ShowRaw())
		return nil
	},
}

func init() {
	prefsCmd.Flags().String("layout", "", "Set the layout preference (table, cards)")
	prefsCmd.Flags().Bool("show-raw", false, "Set the raw-view visibility toggle")
	rootCmd.AddCommand(prefsCmd)
}
