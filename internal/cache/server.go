package cache

import (
	"encoding/json"
	"errors"
	"net"
	"time"
)

// Serve accepts connections on l and answers cache requests against kv until
// l is closed.
func Serve(l net.Listener, kv KV) error {
	for {
		conn, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			continue
		}
		go handleConn(conn, kv)
	}
}

func handleConn(conn net.Conn, kv KV) {
	defer conn.Close()
	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)
	for {
		var req Request
		if err := dec.Decode(&req); err != nil {
			return
		}
		if err := enc.Encode(handle(kv, req)); err != nil {
			return
		}
	}
}

func handle(kv KV, req Request) Response {
	var (
		value []byte
		err   error
	)
	switch req.Op {
	case OpGet:
		value, err = kv.Get(req.Key)
	case OpPut:
		err = kv.Put(req.Key, req.Value, time.Duration(req.TTLSeconds)*time.Second)
	case OpDelete:
		err = kv.Delete(req.Key)
	default:
		err = errors.New("unknown op " + req.Op)
	}
	if err != nil {
		return Response{OK: false, Error: err.Error()}
	}
	return Response{OK: true, Value: value}
}
