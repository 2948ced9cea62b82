package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrNotConnected is returned when attempting operations on a closed connection.
	ErrNotConnected = errors.New("mpv: not connected")
	// ErrSocketNotFound is returned when nothing listens on the socket.
	ErrSocketNotFound = errors.New("mpv: socket not found - is a player running?")
)

// requestID numbers IPC requests across all connections.
var requestID uint64

// DefaultSocketPath is where ytui asks mpv to listen.
func DefaultSocketPath() string {
	return filepath.Join(os.TempDir(), "ytui-mpv.sock")
}

type ipcRequest struct {
	Command   []any  `json:"command"`
	RequestID uint64 `json:"request_id"`
}

type ipcResponse struct {
	Data      any    `json:"data"`
	RequestID uint64 `json:"request_id"`
	Error     string `json:"error"`
	Event     string `json:"event"`
}

// Conn is a JSON IPC connection to a running mpv.
type Conn struct {
	conn    net.Conn
	reader  *bufio.Reader
	timeout time.Duration
	mu      sync.Mutex
}

// Dial connects to the mpv socket at path. timeout bounds the dial and each
// later request.
func Dial(path string, timeout time.Duration) (*Conn, error) {
	if path == "" {
		path = DefaultSocketPath()
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	conn, err := net.DialTimeout("unix", path, timeout)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", ErrSocketNotFound, path)
	}
	return &Conn{conn: conn, reader: bufio.NewReader(conn), timeout: timeout}, nil
}

// Close closes the connection.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// GetProperty retrieves the value of an mpv property such as "time-pos".
func (c *Conn) GetProperty(name string) (any, error) {
	return c.send("get_property", name)
}

// Status is a snapshot of what the player is doing.
type Status struct {
	Title    string
	Position float64
	Duration float64
	Paused   bool
}

// Status reads title, position, duration and pause state. Position and
// duration stay zero while mpv is still loading the stream.
func (c *Conn) Status() (Status, error) {
	var st Status
	title, err := c.GetProperty("media-title")
	if err != nil {
		return st, err
	}
	st.Title, _ = title.(string)

	if v, err := c.GetProperty("time-pos"); err == nil {
		st.Position, _ = toFloat64(v)
	}
	if v, err := c.GetProperty("duration"); err == nil {
		st.Duration, _ = toFloat64(v)
	}
	if v, err := c.GetProperty("pause"); err == nil {
		st.Paused, _ = v.(bool)
	}
	return st, nil
}

func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("mpv: unexpected numeric value type: %T", v)
}

// send writes one newline-terminated command and reads lines until the
// matching reply, skipping events.
func (c *Conn) send(command string, args ...any) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, ErrNotConnected
	}

	id := atomic.AddUint64(&requestID, 1)
	data, err := json.Marshal(ipcRequest{
		Command:   append([]any{command}, args...),
		RequestID: id,
	})
	if err != nil {
		return nil, fmt.Errorf("mpv: failed to marshal command: %w", err)
	}

	c.conn.SetDeadline(time.Now().Add(c.timeout))
	if _, err := c.conn.Write(append(data, '\n')); err != nil {
		return nil, fmt.Errorf("mpv: failed to send command: %w", err)
	}

	for {
		line, err := c.reader.ReadBytes('\n')
		if err != nil {
			return nil, fmt.Errorf("mpv: failed to read response: %w", err)
		}
		var resp ipcResponse
		if err := json.Unmarshal(line, &resp); err != nil || resp.Event != "" {
			continue
		}
		if resp.RequestID != id {
			continue
		}
		if resp.Error != "" && resp.Error != "success" {
			return nil, fmt.Errorf("mpv: %s: %s", command, resp.Error)
		}
		return resp.Data, nil
	}
}
