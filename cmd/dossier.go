package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/caseops/casectl/internal/utils"
	"github.com/caseops/casectl/pkg/dossier"
)

var dossierCmd = &cobra.Command{
	Use:   "dossier <person-id>",
	Short: "Fetch a person's aggregate dossier (ETag-cached)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		limits := dossier.Limits{}
		limits.Profiles, _ = cmd.Flags().GetInt("profiles")
		limits.Notes, _ = cmd.Flags().GetInt("notes")
		limits.Activities, _ = cmd.Flags().GetInt("activities")
		force, _ := cmd.Flags().GetBool("force")

		client := newClient()
		fetcher := dossier.NewFetcher(client, dossier.NewCache())
		ctx := context.Background()

		if pdf, _ := cmd.Flags().GetBool("pdf"); pdf {
			res, err := fetcher.FetchPDF(ctx, id, limits, force)
			if err != nil {
				return err
			}
			out, _ := cmd.Flags().GetString("output")
			if out == "" {
				out = res.Filename
			}
			if err := os.WriteFile(out, res.Data, 0o644); err != nil {
				return err
			}
			fmt.Printf("Wrote %s (%d bytes)\n", out, len(res.Data))
			return nil
		}

		if interval, _ := cmd.Flags().GetDuration("watch"); interval > 0 {
			return watchDossier(ctx, fetcher, id, limits, interval)
		}

		res, err := fetcher.Fetch(ctx, id, limits, force)
		if err != nil {
			return err
		}
		fmt.Print(dossier.Render(res.Data))

		if sections, _ := cmd.Flags().GetBool("sections"); sections {
			sec, err := fetcher.Sections(ctx, id, limits)
			if err != nil {
				// Partial data still renders; the combined error is advisory.
				utils.Log.Warn(err)
			}
			fmt.Printf("\nLoaded %d profile(s), %d note(s), %d activit(ies) fresh\n",
				len(sec.Profiles), len(sec.Notes), len(sec.Activities))
		}
		return nil
	},
}

// watchDossier polls with conditional requests; unchanged dossiers cost a
// 304 and render nothing. A Viewer guards against a slow stale response
// landing after a newer one.
func watchDossier(ctx context.Context, fetcher *dossier.Fetcher, id string, limits dossier.Limits, interval time.Duration) error {
	viewer := dossier.NewViewer(fetcher)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		res, applied, err := viewer.Refresh(ctx, id, limits, false)
		if err != nil {
			utils.Log.Warn("dossier refresh failed: ", err)
		} else if applied && !res.FromCache {
			fmt.Printf("--- %s ---\n", time.Now().Format(time.RFC3339))
			fmt.Print(dossier.Render(res.Data))
		}
		<-ticker.C
	}
}

func init() {
	dossierCmd.Flags().Int("profiles", 5, "Profiles limit")
	dossierCmd.Flags().Int("notes", 5, "Notes limit")
	dossierCmd.Flags().Int("activities", 5, "Activities limit")
	dossierCmd.Flags().Bool("force", false, "Skip the conditional-request cache")
	dossierCmd.Flags().Bool("pdf", false, "Fetch the PDF export instead")
	dossierCmd.Flags().StringP("output", "o", "", "PDF output path (default: server-provided filename)")
	dossierCmd.Flags().Bool("sections", false, "Also fetch profiles/notes/activities directly")
	dossierCmd.Flags().Duration("watch", 0, "Re-poll at this interval and print on change")
	rootCmd.AddCommand(dossierCmd)
}
