package cache

import (
	"encoding/json"
	"net"
	"time"
)

const dialTimeout = 500 * time.Millisecond

// Client implements KV against the cache daemon's Unix socket.
type Client struct {
	socketPath string
}

var _ KV = (*Client)(nil)

func NewClient(socketPath string) *Client {
	return &Client{socketPath: socketPath}
}

// Dial checks that the daemon is listening on socketPath and returns a
// client for it.
func Dial(socketPath string) (*Client, error) {
	conn, err := net.DialTimeout("unix", socketPath, 200*time.Millisecond)
	if err != nil {
		return nil, err
	}
	_ = conn.Close()
	return NewClient(socketPath), nil
}

func (c *Client) roundTrip(req Request) (Response, error) {
	var resp Response
	conn, err := net.DialTimeout("unix", c.socketPath, dialTimeout)
	if err != nil {
		return resp, err
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

	if err := json.NewEncoder(conn).Encode(&req); err != nil {
		return resp, err
	}
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return resp, err
	}
	if !resp.OK {
		return resp, errorFromWire(resp.Error)
	}
	return resp, nil
}

func (c *Client) Get(key string) ([]byte, error) {
	resp, err := c.roundTrip(Request{Op: OpGet, Key: key})
	if err != nil {
		return nil, err
	}
	return resp.Value, nil
}

func (c *Client) Put(key string, value []byte, ttl time.Duration) error {
	_, err := c.roundTrip(Request{Op: OpPut, Key: key, Value: value, TTLSeconds: int64(ttl / time.Second)})
	return err
}

func (c *Client) Delete(key string) error {
	_, err := c.roundTrip(Request{Op: OpDelete, Key: key})
	return err
}
