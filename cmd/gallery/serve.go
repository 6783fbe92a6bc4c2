package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sir_venger/s3_gallery/internal/app/webhttp"
	"github.com/sir_venger/s3_gallery/internal/config"
	"github.com/sir_venger/s3_gallery/internal/logging"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// runServe поднимает HTTP-сервер и корректно гасит его по SIGINT/SIGTERM.
func runServe(cmd *cobra.Command, _ []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// LOG_LEVEL мог прийти из .env, поэтому логгер пересоздаём после загрузки конфига
	logger := logging.New()
	slog.SetDefault(logger)

	handler, srv, err := webhttp.NewServer(cfg, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("gallery listening",
			"addr", cfg.ListenAddr,
			"upload_api", cfg.UploadAPIURL,
			"list_api", cfg.ListAPIURL,
			"max_upload_bytes", cfg.Upload.MaxBytes,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Сценарий graceful shutdown: сигнал или падение ListenAndServe.
	g.Go(func() error {
		<-gctx.Done()
		srv.SetReady(false)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("gallery stopped")
		return nil
	})

	return g.Wait()
}
