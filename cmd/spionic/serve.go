package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hazyhaar/spionic/pkg/api"
	"github.com/hazyhaar/spionic/pkg/importer"
	"github.com/hazyhaar/spionic/pkg/lexicon"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP and MCP server",
		Long: `serve exposes the converter and the lexicons under /v1/ and an MCP
endpoint (streamable HTTP) under /mcp.

SIGHUP reloads the lexicons; SIGINT or SIGTERM shut the server down.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")
	return cmd
}

// loadRegistry loads the lexicons of cfg. A missing directory yields an
// empty registry.
func loadRegistry(cfg config, logger *slog.Logger) (*lexicon.Registry, error) {
	reg := lexicon.NewRegistry(cfg.LexiconsDir)
	if err := reg.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		logger.Warn("lexicons dir not found, serving without lexicons", "dir", cfg.LexiconsDir)
		return reg, nil
	}
	logger.Info("lexicons loaded", "count", reg.Count(), "entries", reg.TotalEntries())
	return reg, nil
}

func newMCPServer(opts api.Options) *server.MCPServer {
	srv := server.NewMCPServer("spionic", version, server.WithToolCapabilities(false))
	api.RegisterMCPTools(srv, opts)
	return srv
}

func newHandler(opts api.Options) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/mcp", server.NewStreamableHTTPServer(newMCPServer(opts)))
	mux.Handle("/", api.NewRouter(opts))
	return mux
}

func runServe(cmd *cobra.Command, configPath string) error {
	cfg, logger, err := setup(configPath)
	if err != nil {
		return err
	}
	form, _ := cfg.form()

	reg, err := loadRegistry(cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(api.Options{Registry: reg, Form: form, Logger: logger}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// SIGHUP: hot reload lexicons.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	defer signal.Stop(sighup)
	go reloadOnSignal(ctx, sighup, reg, logger)

	if cfg.SourceCheckInterval > 0 {
		if _, err := os.Stat(cfg.SourcesDB); err == nil {
			sdb, err := importer.OpenSourceDB(cfg.SourcesDB)
			if err != nil {
				return err
			}
			defer sdb.Close()
			go importer.NewChecker(sdb, logger, cfg.SourceCheckInterval).Run(ctx)
		}
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("spionic listening", "addr", cfg.Addr, "form", form.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// reloadOnSignal reloads reg on every value from sig until ctx is done.
func reloadOnSignal(ctx context.Context, sig <-chan os.Signal, reg *lexicon.Registry, logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sig:
			logger.Info("SIGHUP received, reloading lexicons")
			if err := reg.Reload(); err != nil {
				logger.Error("reload failed", "error", err)
				continue
			}
			logger.Info("lexicons reloaded", "count", reg.Count(), "entries", reg.TotalEntries())
		}
	}
}
