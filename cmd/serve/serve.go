// Package serve runs the HTTP API
package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fjacquet/mocktest/cmd/root"
	"fjacquet/mocktest/internal/logging"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the mock-test HTTP API",
	Long: `Serve the mock-test HTTP API until interrupted.
A token signing secret must be configured (MOCKTEST_AUTH_JWT_SECRET or JWT_SECRET).`,
	RunE: serveFunc,
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
}

func serveFunc(cmd *cobra.Command, args []string) error {
	logger := root.GetLogger()
	cfg := root.GetConfig()
	if err := cfg.RequireJWTSecret(); err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	c, err := root.GetContainer(cmd.Context())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           c.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return run(ctx, srv, logger)
}

// run serves srv until ctx ends, then shuts it down gracefully.
func run(ctx context.Context, srv *http.Server, logger logging.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP API listening", logging.F(logging.FieldAddr, srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP API")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
