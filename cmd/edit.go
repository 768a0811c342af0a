package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caseops/casectl/pkg/api"
	"github.com/caseops/casectl/pkg/records"
)

var editCmd = &cobra.Command{
	Use:   "edit <type> <id>",
	Short: "Edit record fields and send a minimal PATCH",
	Long: `Edit fetches the record, applies the given key=value edits to its
editable field set and sends only the fields whose normalized value actually
changed. No changed fields means no network write.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, id := args[0], args[1]
		client := newClient()
		ctx := context.Background()

		rec, err := client.GetRecord(ctx, typ, id)
		if err != nil {
			return err
		}

		sets, _ := cmd.Flags().GetStringArray("set")
		changes, err := applyEdits(rec, sets)
		if err != nil {
			return err
		}

		// Visibility edits bypass the generic form on purpose.
		if cmd.Flags().Changed("visibility") {
			visible, _ := cmd.Flags().GetBool("visibility")
			changes[records.VisibilityKey] = visible
		}

		updated, err := client.UpdateRecord(ctx, typ, id, changes)
		if errors.Is(err, api.ErrNoChanges) {
			fmt.Println("Nothing to update")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Printf("Updated %d field(s) on %s/%s\n", len(changes), typ, updated.ID())
		return nil
	},
}

func init() {
	editCmd.Flags().StringArray("set", nil, "Field edit (key=value, repeatable)")
	editCmd.Flags().Bool("visibility", false, "Set the record's visibility")
	rootCmd.AddCommand(editCmd)
}
