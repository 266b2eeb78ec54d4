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

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/leonardcser/xai-web-search/internal/httpserver"
	"github.com/leonardcser/xai-web-search/internal/logger"
	"github.com/leonardcser/xai-web-search/internal/mcpserver"
	"github.com/leonardcser/xai-web-search/internal/web"
)

var flagPort int

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"server", "http"},
	Short:   "Serve /search and the MCP streamable HTTP transport on /mcp",
	Args:    cobra.NoArgs,
	RunE:    runServe,
}

var stdioCmd = &cobra.Command{
	Use:   "stdio",
	Short: "Serve MCP over stdin/stdout",
	Args:  cobra.NoArgs,
	RunE:  runStdio,
}

func init() {
	serveCmd.Flags().IntVarP(&flagPort, "port", "p", 0, "Listen port (default $PORT or 9876)")
}

func buildMCPServer() (*server.MCPServer, error) {
	fetcher := web.NewFetcher(connectCache(cfg.CacheSock), cfg.FetchCacheTTL)
	return mcpserver.New(mcpserver.Deps{
		Searcher: newSearchClient(),
		Config:   cfg.Search(),
		Fetcher:  fetcher,
	})
}

func runStdio(cmd *cobra.Command, _ []string) error {
	if err := initLogger(false); err != nil {
		return err
	}
	logger.Infof("Starting %s %s on stdio", mcpserver.Name, mcpserver.Version)
	if cfg.APIKey == "" {
		logger.Warnf("XAI_API_KEY is not set; searches will fail until it is configured")
	}

	s, err := buildMCPServer()
	if err != nil {
		return err
	}
	if err := server.ServeStdio(s); err != nil {
		logger.Errorf("stdio server failed: %v", err)
		return fmt.Errorf("stdio server failed: %w", err)
	}
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := initLogger(true); err != nil {
		return err
	}
	if flagPort > 0 {
		cfg.Port = flagPort
	}
	if cfg.APIKey == "" {
		logger.Warnf("XAI_API_KEY is not set; searches will fail until it is configured")
	}

	s, err := buildMCPServer()
	if err != nil {
		return err
	}
	gin.SetMode(gin.ReleaseMode)
	router := httpserver.NewRouter(httpserver.Options{
		Searcher: newSearchClient(),
		Config:   cfg.Search(),
		MCP:      mcpserver.NewHTTPHandler(s),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(cmd.OutOrStdout(), "HTTP mode: http://localhost:%d/mcp\n", cfg.Port)
		logger.Infof("Listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Infof("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
