package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ectool/lpscorer/internal/handlers"
	"github.com/ectool/lpscorer/internal/storage"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the JSON API server",
		Long: `Starts the lpscorer HTTP API on the specified port.

Endpoints:
  GET    /api/rakuten?q=&scraping=true&hits=   marketplace search
  POST   /api/lp-scorer                        score a landing page
  POST   /api/scrape-product                   extract a product page
  POST   /api/scrape-images                    merge scraped images with API images
  GET    /api/scores                           scoring history
  GET    /api/scores/{id}, DELETE              one stored score
  GET    /api/scores/export?format=            json, yaml or parquet export
  GET    /api/health, /healthcheck, /metrics`,
		Example: `  # Start server on default port 8888
  lpscorer serve

  # Start server on custom port
  lpscorer serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadServices()
			if err != nil {
				return err
			}
			scorer, err := svc.scorer("", "")
			if err != nil {
				return err
			}
			if port == "" {
				port = svc.cfg.Port
			}

			handler := handlers.New(handlers.Deps{
				Search:    svc.search,
				Scraper:   svc.scraper,
				Extractor: svc.extractor,
				Scorer:    scorer,
				Store:     storage.New(),
			})

			addr := ":" + port
			server := &http.Server{
				Addr:              addr,
				Handler:           handler.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("lpscorer API available", "addr", addr, "url", "http://localhost"+addr, "provider", scorer.Provider(), "model", scorer.Model())
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default $PORT or 8888)")

	return cmd
}
