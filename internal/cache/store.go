package cache

import (
	"encoding/binary"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Store is a bbolt-backed KV. Each value is prefixed with its absolute
// expiry as 8 big-endian bytes of Unix seconds; zero means no expiry.
type Store struct {
	db         *bolt.DB
	bucket     []byte
	defaultTTL time.Duration
	now        func() time.Time
}

var _ KV = (*Store)(nil)

type Options struct {
	// Bucket is the name of the bolt bucket to use. Defaults to "pages".
	Bucket string
	// DefaultTTL is used when Put is called with ttl <= 0.
	DefaultTTL time.Duration
}

// Open initializes or opens a Store at path.
func Open(path string, opts Options) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open cache db %s: %w", path, err)
	}
	bucket := []byte("pages")
	if opts.Bucket != "" {
		bucket = []byte(opts.Bucket)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, bucket: bucket, defaultTTL: opts.DefaultTTL, now: time.Now}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put stores value until now+ttl. If ttl <= 0, DefaultTTL is used; if that
// is also <= 0 the entry never expires.
func (s *Store) Put(key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	var expiresAt int64
	if ttl > 0 {
		expiresAt = s.now().Add(ttl).Unix()
	}
	buf := make([]byte, 8+len(value))
	binary.BigEndian.PutUint64(buf[:8], uint64(expiresAt))
	copy(buf[8:], value)

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), buf)
	})
}

// Get returns the value for key, or ErrNotFound / ErrExpired.
func (s *Store) Get(key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(s.bucket).Get([]byte(key))
		if len(v) < 8 {
			return ErrNotFound
		}
		if s.expired(v) {
			return ErrExpired
		}
		out = append([]byte(nil), v[8:]...)
		return nil
	})
	return out, err
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(key))
	})
}

// Sweep deletes every expired entry and reports how many were removed.
func (s *Store) Sweep() (int, error) {
	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		var stale [][]byte
		if err := b.ForEach(func(k, v []byte) error {
			if len(v) < 8 || s.expired(v) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		}); err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	return removed, err
}

func (s *Store) expired(v []byte) bool {
	expiresAt := int64(binary.BigEndian.Uint64(v[:8]))
	return expiresAt > 0 && s.now().Unix() > expiresAt
}
