package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <type> <id>",
	Short: "Delete one record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to delete %s/%s without --yes", args[0], args[1])
		}
		client := newClient()
		if err := client.DeleteRecord(context.Background(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s/%s\n", args[0], args[1])
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "Confirm the deletion")
	rootCmd.AddCommand(deleteCmd)
}
