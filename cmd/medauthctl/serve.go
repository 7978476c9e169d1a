package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/bitacora-medica/medauth/metrics/export/prometheus"
	"github.com/bitacora-medica/medauth/shell"
)

func serveCmd(flags *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the guarded route shell",
		Long: `Starts the session core and serves the guarded application shell over HTTP.
Route access is re-evaluated against the live session on every request, and
core metrics are exposed at /metrics in Prometheus text format.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := buildClient(flags)
			if err != nil {
				return err
			}
			defer client.Close()
			client.Start()

			exporter := prometheus.NewPrometheusExporter(client)

			mux := http.NewServeMux()
			mux.Handle("/metrics", exporter.Handler())
			mux.Handle("/", shell.Router(client.Store()))

			srv := &http.Server{
				Addr:              addr,
				Handler:           mux,
				ReadHeaderTimeout: 5 * time.Second,
			}

			fmt.Printf("Listening on %s\n", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8787", "Listen address")

	return cmd
}
