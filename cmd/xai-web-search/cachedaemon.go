package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/leonardcser/xai-web-search/internal/cache"
	"github.com/leonardcser/xai-web-search/internal/logger"
)

const cacheBinary = "xai-web-search-cache"

// connectCache returns a client for the cache daemon, starting the daemon if
// it is not running. The page cache is optional: when the daemon cannot be
// reached, fetched pages are simply not cached.
func connectCache(sock string) cache.KV {
	logger.Infof("Connecting to cache daemon at %s", sock)
	if c, err := cache.Dial(sock); err == nil {
		return c
	}

	if err := startCacheDaemon(sock); err != nil {
		logger.Warnf("Cache daemon unavailable, page cache disabled: %v", err)
		return cache.Discard{}
	}

	var lastErr error
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		c, err := cache.Dial(sock)
		if err == nil {
			logger.Infof("Connected to cache daemon")
			return c
		}
		lastErr = err
		time.Sleep(200 * time.Millisecond)
	}
	logger.Warnf("Cache daemon did not come up, page cache disabled: %v", lastErr)
	return cache.Discard{}
}

// startCacheDaemon launches the cache binary found next to this executable,
// on PATH, or in the working directory, in that order.
func startCacheDaemon(sock string) error {
	var candidates []string
	if exePath, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exePath), cacheBinary))
	}
	if p, err := exec.LookPath(cacheBinary); err == nil {
		candidates = append(candidates, p)
	}
	candidates = append(candidates, "./"+cacheBinary)

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cmd := exec.Command(path)
		cmd.Env = append(os.Environ(),
			"XAI_WEB_SEARCH_CACHE_SOCK="+sock,
			"XAI_WEB_SEARCH_CACHE_DB="+cfg.CacheDB,
		)
		logger.Infof("Starting cache daemon %s", path)
		return cmd.Start()
	}
	return exec.ErrNotFound
}
