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

	"github.com/spf13/cobra"

	"github.com/simplifyx/scamguard/internal/classifier"
	"github.com/simplifyx/scamguard/internal/config"
	"github.com/simplifyx/scamguard/internal/database"
	"github.com/simplifyx/scamguard/internal/log"
	"github.com/simplifyx/scamguard/internal/oracle"
	"github.com/simplifyx/scamguard/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP analysis API",
		Long: `Serve starts the HTTP API that detection clients talk to.

Endpoints:
  GET  /api/lists            threat lists (suspicious TLDs, known sites)
  POST /api/analyze-domain   domain age lookup (cached)
  POST /api/analyze-content  scam text classification
  POST /api/user/login       user login
  GET  /api/user/whitelist   per-user whitelisted domains
  GET  /                     liveness probe

Examples:
  # Serve on the default address
  scamguard serve

  # Serve on a custom port with a custom lists file
  scamguard serve -a :8080 -l mylists.yaml`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("addr", "a", config.DefaultListenAddr,
		"Listen address for the HTTP API")
	cmd.Flags().StringP("lists", "l", "",
		"Threat lists file path (default: lists.yaml in current or config directory)")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.NewConfig()
	var err error

	cfg.ListenAddr, err = cmd.Flags().GetString("addr")
	if err != nil {
		return err
	}
	cfg.ListsFilePath, err = cmd.Flags().GetString("lists")
	if err != nil {
		return err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	lists, err := loadLists(cfg)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Keep the stored lists in step with the file-configured ones.
	if err := db.Seed(ctx, lists); err != nil {
		return fmt.Errorf("failed to seed threat lists: %w", err)
	}

	api := server.New(
		lists,
		oracle.New(oracle.NewSimulatedClient(config.DefaultRecentDomainDays), cfg.DomainAgeTTL),
		classifier.New(lists.ScamKeywords(), cfg.ScamCutoff),
		db,
		server.WithLogger(logger),
	)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP API listening", "addr", cfg.ListenAddr)
		fmt.Printf("ScamGuard API listening on %s\n", cfg.ListenAddr)
		errCh <- httpServer.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-sigCh:
		logger.Info("received shutdown signal, draining...", "signal", sig.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
