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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/go-petr/pet-bank/cmd/httpserver"
	"github.com/go-petr/pet-bank/internal/middleware"
	"github.com/go-petr/pet-bank/pkg/configpkg"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	var configDir string
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bank HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := configpkg.Load(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if address != "" {
				config.ServerAddress = address
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, config)
		},
	}

	cmd.Flags().StringVar(&configDir, "config", "./configs", "directory holding app.env")
	cmd.Flags().StringVar(&address, "addr", "", "listen address, overrides SERVER_ADDRESS")

	return cmd
}

func runServe(ctx context.Context, config configpkg.Config) error {
	logger := middleware.CreateLogger(config)

	if config.Environement != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	server, err := httpserver.New(logger, config)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              config.ServerAddress,
		Handler:           server,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)

	go func() {
		logger.Info().Str("address", config.ServerAddress).Msg("BANK API SERVER HAS STARTED")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
