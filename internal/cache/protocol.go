package cache

import "errors"

// Wire protocol between Client and Serve: one JSON Request followed by one
// JSON Response, repeated over a Unix socket connection.

const (
	OpGet    = "get"
	OpPut    = "put"
	OpDelete = "delete"
)

type Request struct {
	Op         string `json:"op"`
	Key        string `json:"key"`
	Value      []byte `json:"value,omitempty"`
	TTLSeconds int64  `json:"ttl_seconds,omitempty"`
}

type Response struct {
	OK    bool   `json:"ok"`
	Value []byte `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

// errorFromWire maps a Response error string back to the sentinel errors.
func errorFromWire(msg string) error {
	switch msg {
	case ErrNotFound.Error():
		return ErrNotFound
	case ErrExpired.Error():
		return ErrExpired
	default:
		return errors.New(msg)
	}
}
