package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hackry/mymlhmock/internal/config"
	"github.com/hackry/mymlhmock/internal/daemon"
	"github.com/hackry/mymlhmock/internal/logs"
)

var (
	configFile   string
	listen       string
	clientID     string
	clientSecret string
	callbackURLs []string
	logLevel     string
	logToFile    bool
	logDir       string

	version = "v0.1.0" // This will be injected by -ldflags during build
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "mymlhmockd",
		Short:   "Standalone MyMLH mock provider - OAuth2 authorization and profile endpoints for testing",
		Version: version,
		RunE:    runDaemon,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&listen, "listen", "l", "", "Listen address (default: "+config.DefaultListen+")")
	rootCmd.PersistentFlags().StringVar(&clientID, "client-id", "", "OAuth client id the mock accepts")
	rootCmd.PersistentFlags().StringVar(&clientSecret, "client-secret", "", "OAuth client secret the mock accepts")
	rootCmd.PersistentFlags().StringSliceVar(&callbackURLs, "callback-urls", nil, "Registered callback URLs (repeatable)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logToFile, "log-to-file", false, "Enable logging to a rotated file")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Log directory path")

	if err := config.BindFlags(rootCmd.PersistentFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runDaemon(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Logging flags override the config file.
	if cfg.Logging == nil {
		cfg.Logging = config.Default().Logging
	}
	cfg.Logging.Level = logLevel
	if logToFile {
		cfg.Logging.EnableFile = true
	}
	if logDir != "" {
		cfg.Logging.LogDir = logDir
	}

	logger, err := logs.Setup(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to setup logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("Starting mymlhmockd",
		zap.String("version", version),
		zap.String("listen", cfg.Listen),
		zap.String("client_id", cfg.ClientID),
		zap.Int("callback_urls", len(cfg.CallbackURLs)),
		zap.Int("authenticated_users", len(cfg.AuthenticatedUsers)),
		zap.Int("unauthenticated_users", len(cfg.UnauthenticatedUsers)))

	srv, err := daemon.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	return srv.Run(ctx)
}
