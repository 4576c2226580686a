package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"marketplace/conf"
	"marketplace/log"
	"marketplace/metrics"
	"marketplace/router"
	"marketplace/service"
	"marketplace/view"
)

var errCollectionsFailed = errors.New("collections failed to load")

var (
	envFile string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "marketplace",
	Short:         "NFT marketplace web client",
	Long:          "Serves the NFT marketplace landing page and renders the collections published by the marketplace API.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the landing page (default command)",
	RunE:  runServe,
}

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "Load the collections once and print them",
	RunE:  runCollections,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", conf.EnvFile, "env file overriding the default configuration")
	collectionsCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "how long the collections component stays mounted")
	rootCmd.AddCommand(serveCmd, collectionsCmd)
}

// @title       NFT marketplace web client
// @version     1.0
// @description Landing page and collections view of the NFT marketplace, backed by the marketplace API
func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() (*conf.Config, *zap.Logger, error) {
	cfg, err := conf.Load(envFile)
	if err != nil {
		return nil, nil, err
	}
	logger, err := log.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	log.SetDefault(logger)
	if cfg.EnvLoaded {
		log.Infof("configuration read from %s", envFile)
	} else {
		log.Warnf("%s not found, using defaults and environment", envFile)
	}
	log.Debugf("configuration: %+v", *cfg)
	return cfg, logger, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	err = router.Run(ctx, router.Options{
		Config:  cfg,
		Logger:  logger,
		Fetcher: service.NewCollectionService(cfg.ApiUrl, logger, m),
		Metrics: m,
	})
	if err != nil {
		log.Errorf("Server failed to run: %v", err)
	}
	return err
}

func runCollections(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()
	state, err := view.Load(ctx, service.NewCollectionService(cfg.ApiUrl, logger, nil), logger, nil)
	if err != nil {
		return fmt.Errorf("collections did not load: %w", err)
	}
	return printState(cmd.OutOrStdout(), state)
}

// printState writes one collection name per line, or the error line of an error state
func printState(w io.Writer, state view.State) error {
	switch state.Phase() {
	case view.PhaseError:
		if _, err := fmt.Fprintf(w, "Error: %s\n", state.Error); err != nil {
			return err
		}
		return errCollectionsFailed
	case view.PhaseReady:
		if state.Empty() {
			_, err := fmt.Fprintln(w, "No collections found.")
			return err
		}
		for _, name := range state.Collections {
			if _, err := fmt.Fprintln(w, name); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("collections are still %s", state.Phase())
	}
}
