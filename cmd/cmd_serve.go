package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/kovalyov-valentin/news-selects/internal/dispatch"
	"github.com/kovalyov-valentin/news-selects/internal/server"
)

var serveAddr string

// serveCmd запускает дашборд
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the review dashboard and its JSON API",
	Long: `Serve the single page dashboard together with /api/load, /api/save,
/api/dispatch and /api/days. Missing Google credentials or GitHub token do not
stop the server: the requests that need them fail with a 500 instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b := newBackend(cfg)
		defer b.Close()

		addr := cfg.ListenAddr
		if serveAddr != "" {
			addr = serveAddr
		}

		trigger := dispatch.NewWorkflowTrigger(
			&http.Client{Timeout: 15 * time.Second},
			cfg.GitHubAPIURL,
			cfg.GitHubPAT,
			cfg.DispatchRepo,
			cfg.DispatchWorkflow,
			cfg.DispatchRef,
		)

		handler := server.NewHandler(b.service(), trigger, cfg.DaysPerPage)

		return server.Run(cmd.Context(), server.New(handler, b.snapshot().PublicPath()), addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides listen_addr)")
}
