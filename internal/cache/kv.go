// Package cache is the page cache behind the web-fetch tool. A single daemon
// owns the bbolt file and MCP server processes reach it over a Unix socket.
package cache

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("cache: not found")
	ErrExpired  = errors.New("cache: expired")
)

// KV defines the minimal key-value cache contract with TTL semantics.
// Implementations must be safe for concurrent use by multiple goroutines.
type KV interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
}

// Discard is a KV that stores nothing. It stands in when the daemon is
// unreachable.
type Discard struct{}

func (Discard) Get(string) ([]byte, error)               { return nil, ErrNotFound }
func (Discard) Put(string, []byte, time.Duration) error { return nil }
func (Discard) Delete(string) error                      { return nil }
