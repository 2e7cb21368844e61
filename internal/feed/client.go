package feed

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"sync"
)

// SocketPath returns the default feed socket path.
func SocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "strata.sock")
	}
	return filepath.Join(os.TempDir(), "strata.sock")
}

// Publisher writes notifications as NDJSON.
type Publisher struct {
	w    io.Writer
	conn net.Conn
	mu   sync.Mutex
}

// NewPublisher writes to w.
func NewPublisher(w io.Writer) *Publisher {
	return &Publisher{w: w}
}

// Dial connects a publisher to a listening host socket.
func Dial(socketPath string) (*Publisher, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect to feed: %w", err)
	}
	return &Publisher{w: conn, conn: conn}, nil
}

// Close shuts down the connection, if any.
func (p *Publisher) Close() error {
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Publish writes one notification line.
func (p *Publisher) Publish(n Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	data = append(data, '\n')

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := p.w.Write(data); err != nil {
		return fmt.Errorf("write notification: %w", err)
	}
	return nil
}

// Reader decodes an NDJSON notification stream.
type Reader struct {
	scanner *bufio.Scanner
}

// NewReader reads notifications from r.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024) // 1MB max line
	return &Reader{scanner: scanner}
}

// Next reads the next notification. Blocks until data arrives; returns
// io.EOF when the stream ends cleanly.
func (r *Reader) Next() (Notification, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return Notification{}, fmt.Errorf("read notification: %w", err)
		}
		return Notification{}, io.EOF
	}

	var n Notification
	if err := json.Unmarshal(r.scanner.Bytes(), &n); err != nil {
		return Notification{}, fmt.Errorf("unmarshal notification: %w", err)
	}
	return n, nil
}
