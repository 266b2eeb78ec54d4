// Command xai-web-search-cache serves the shared page cache over a unix
// socket so several xai-web-search processes can reuse fetched pages.
package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/leonardcser/xai-web-search/internal/cache"
	"github.com/leonardcser/xai-web-search/internal/config"
	"github.com/leonardcser/xai-web-search/internal/logger"
)

const sweepInterval = 5 * time.Minute

func main() {
	configPath := pflag.String("config", "", "Config file (yaml, json, toml or .env)")
	pflag.Parse()

	if err := run(*configPath); err != nil {
		logger.Errorf("cache daemon: %v", err)
		_ = logger.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	_ = logger.Close()
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := logger.Init(logger.Options{Path: cfg.LogPath, Level: cfg.LogLevel}); err != nil {
		return err
	}

	for _, dir := range []string{filepath.Dir(cfg.CacheSock), filepath.Dir(cfg.CacheDB)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create cache dir: %w", err)
		}
	}
	_ = os.Remove(cfg.CacheSock)

	l, err := net.Listen("unix", cfg.CacheSock)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.CacheSock, err)
	}
	defer l.Close()
	_ = os.Chmod(cfg.CacheSock, 0o600)

	store, err := cache.Open(cfg.CacheDB, cache.Options{DefaultTTL: cfg.FetchCacheTTL})
	if err != nil {
		return err
	}
	defer store.Close()

	done := make(chan struct{})
	defer close(done)
	go sweep(store, done)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		logger.Infof("cache daemon stopping")
		_ = l.Close()
	}()

	logger.Infof("cache daemon listening on %s (db %s)", cfg.CacheSock, cfg.CacheDB)
	if err := cache.Serve(l, store); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

func sweep(store *cache.Store, done <-chan struct{}) {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-t.C:
			n, err := store.Sweep()
			if err != nil {
				logger.Warnf("cache sweep failed: %v", err)
				continue
			}
			if n > 0 {
				logger.Debugf("cache sweep removed %d expired entries", n)
			}
		}
	}
}
