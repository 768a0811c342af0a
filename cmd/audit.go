package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/caseops/casectl/internal/utils"
	"github.com/caseops/casectl/pkg/api"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the backend audit log",
}

var auditLogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "List audit log entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := api.AuditOptions{}
		opts.Limit, _ = cmd.Flags().GetInt("limit")
		opts.Offset, _ = cmd.Flags().GetInt("offset")
		opts.UserID, _ = cmd.Flags().GetString("user")
		opts.Action, _ = cmd.Flags().GetString("action")
		opts.Resource, _ = cmd.Flags().GetString("resource")

		client := newClient()
		page, err := client.AuditLogs(context.Background(), opts)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tUSER\tACTION\tRESOURCE")
		for _, rec := range page.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				rec.Get("created_at").String(),
				rec.Get("user_id").String(),
				rec.Get("action").String(),
				utils.Truncate(rec.Get("resource").String(), 50))
		}
		w.Flush()
		return nil
	},
}

var auditClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the whole audit log (admin only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to clear the audit log without --yes")
		}
		client := newClient()
		if err := client.ClearAuditLogs(context.Background()); err != nil {
			return err
		}
		fmt.Println("Audit log cleared")
		return nil
	},
}

func init() {
	auditLogsCmd.Flags().Int("limit", 50, "Max entries")
	auditLogsCmd.Flags().Int("offset", 0, "Entries to skip")
	auditLogsCmd.Flags().String("user", "", "Filter by user id")
	auditLogsCmd.Flags().String("action", "", "Filter by action")
	auditLogsCmd.Flags().String("resource", "", "Filter by resource")
	auditClearCmd.Flags().BoolP("yes", "y", false, "Confirm clearing")
	auditCmd.AddCommand(auditLogsCmd)
	auditCmd.AddCommand(auditClearCmd)
	rootCmd.AddCommand(auditCmd)
}
