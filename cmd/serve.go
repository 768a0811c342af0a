package cmd

import (
	"github.com/spf13/cobra"

	"github.com/caseops/casectl/internal/server"
	"github.com/caseops/casectl/pkg/dossier"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local JSON console server",
	Long: `Serve exposes normalized records, field descriptors and the cached
dossier over a local HTTP API, so a browser front end can sit on top without
talking to the backend directly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		user, _ := cmd.Flags().GetString("user")
		pass, _ := cmd.Flags().GetString("pass")

		client := newClient()
		fetcher := dossier.NewFetcher(client, dossier.NewCache())
		return server.New(client, fetcher, user, pass).Start(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "127.0.0.1:8099", "Listen address")
	serveCmd.Flags().String("user", "", "Basic auth username (empty disables auth)")
	serveCmd.Flags().String("pass", "", "Basic auth password")
	rootCmd.AddCommand(serveCmd)
}
