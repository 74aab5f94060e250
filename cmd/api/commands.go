package main

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
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"graphd/infrastructure/config"
	"graphd/infrastructure/di"
	"graphd/interfaces/http/rest"
)

var (
	rootCmd = &cobra.Command{
		Use:   "graphd",
		Short: "Serves a directed graph of conditional nodes over HTTP",
		Long: `graphd keeps a directed graph of titled nodes in memory and exposes
node, edge, shortest path and cycle operations through a JSON API.`,
		SilenceUsage: true,
	}
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Starts the HTTP server",
		Args:  cobra.NoArgs,
		RunE:  runServeCommand,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Prints the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), di.Version)
		},
	}

	configPath string
	listenAddr string
)

func init() {
	serveCmd.Flags().StringVarP(&configPath, "config", "c", os.Getenv("CONFIG_FILE"), "path to a YAML config file")
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address, overrides SERVER_ADDRESS")

	rootCmd.AddCommand(serveCmd, versionCmd)
	rootCmd.RunE = runServeCommand
}

func runServeCommand(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if listenAddr != "" {
		cfg.ServerAddress = listenAddr
	}

	container, cleanup, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize container: %w", err)
	}
	defer cleanup()
	logger := container.Logger

	router := rest.NewRouter(
		container.CommandBus,
		container.QueryBus,
		container.Graph,
		container.Metrics,
		logger,
		rest.Options{
			Debug:          cfg.IsDevelopment(),
			EnableMetrics:  cfg.EnableMetrics,
			EnableCORS:     cfg.EnableCORS,
			AllowedOrigins: cfg.AllowedOrigins,
			RateLimitRPS:   cfg.RateLimitRPS,
			RateLimitBurst: cfg.RateLimitBurst,
			Version:        di.Version,
		},
	)

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Only the log level is applied live; other settings need a restart
	container.ConfigWatcher.OnChange(func(next *config.Config) {
		logger.Info("Configuration reloaded",
			zap.String("logLevel", next.LogLevel),
			zap.Bool("restartRequired", next.ServerAddress != cfg.ServerAddress || next.RateLimitRPS != cfg.RateLimitRPS),
		)
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
			zap.String("version", di.Version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return container.ConfigWatcher.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return err
	}

	logger.Info("Server exited")
	return nil
}
