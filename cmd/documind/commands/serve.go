// ABOUTME: Serve command starting the HTTP API
// ABOUTME: Runs until interrupted, then drains in-flight requests
package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/documind/documind/internal/api"
	"github.com/documind/documind/internal/config"
)

var servePort int

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the DocuMind HTTP API.

Endpoints:
  POST   /documents/upload
  POST   /query
  GET    /admin/documents
  DELETE /admin/documents/{file_name}
  GET    /admin/statistics
  GET    /health

Examples:
  documind serve
  documind serve --port 9000`,
		RunE: runServe,
	}

	cmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides DOCUMIND_PORT)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	pipeline, closeStore, err := buildPipeline()
	if err != nil {
		return err
	}
	defer closeStore()

	port := servePort
	if port == 0 {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		port = cfg.Port
	}

	server := api.NewServer(pipeline, port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "DocuMind listening on port %d\n", port)
	}

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	return nil
}
