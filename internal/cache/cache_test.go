package cache

import (
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.bbolt"), Options{DefaultTTL: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_PutGetDelete(t *testing.T) {
	s := openStore(t)

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put("k", []byte("v"), 0))
	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, s.Delete("k"))
	_, err = s.Get("k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ExpiryAndSweep(t *testing.T) {
	s := openStore(t)
	now := time.Unix(1_700_000_000, 0)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Put("short", []byte("a"), time.Second))
	require.NoError(t, s.Put("long", []byte("b"), time.Hour))

	now = now.Add(time.Minute)
	_, err := s.Get("short")
	assert.ErrorIs(t, err, ErrExpired)

	removed, err := s.Sweep()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = s.Get("short")
	assert.ErrorIs(t, err, ErrNotFound)
	got, err := s.Get("long")
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), got)
}

func TestClientServerRoundTrip(t *testing.T) {
	// Unix socket paths are length-limited; keep it short.
	dir, err := os.MkdirTemp("", "xws")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	sock := filepath.Join(dir, "c.sock")

	l, err := net.Listen("unix", sock)
	require.NoError(t, err)
	store := openStore(t)
	done := make(chan error, 1)
	go func() { done <- Serve(l, store) }()

	c, err := Dial(sock)
	require.NoError(t, err)

	_, err = c.Get("page")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, c.Put("page", []byte(`{"title":"x"}`), time.Minute))
	got, err := c.Get("page")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"title":"x"}`), got)

	require.NoError(t, c.Delete("page"))
	_, err = c.Get("page")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, l.Close())
	assert.NoError(t, <-done)
}

func TestDialWithoutDaemon(t *testing.T) {
	_, err := Dial(filepath.Join(t.TempDir(), "none.sock"))
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	var kv KV = Discard{}
	require.NoError(t, kv.Put("k", []byte("v"), time.Minute))
	_, err := kv.Get("k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHandleUnknownOp(t *testing.T) {
	resp := handle(Discard{}, Request{Op: "flush"})
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, "unknown op")
}
