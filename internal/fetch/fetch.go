package fetch

import (
	"fmt"
	"io"
	"net"
	"strconv"
	"time"
)

// Config holds the fixed endpoint a client fetches from. The file name is
// appended to BasePath as-is, with no URL encoding.
type Config struct {
	Host     string
	Port     int
	BasePath string
	// Timeout bounds the dial and every subsequent read on the connection.
	// Zero means block forever.
	Timeout time.Duration
}

// Client issues raw HTTP/1.1 GET requests, one fresh TCP connection per
// call. The response is returned unparsed, status line and headers
// included; the processor is responsible for skipping them.
type Client struct {
	cfg Config
}

// NewClient creates a fetch client for the given endpoint.
func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg}
}

// Fetch opens a TCP connection to the configured host, sends a GET for the
// named file with Connection: Close, and returns the stream positioned at
// the start of the raw response. The server closing the socket signals the
// end of the response. Any failure here is fatal only to the task that
// requested this file.
func (c *Client) Fetch(file string) (io.ReadCloser, error) {
	addr := net.JoinHostPort(c.cfg.Host, strconv.Itoa(c.cfg.Port))

	var conn net.Conn
	var err error
	if c.cfg.Timeout > 0 {
		conn, err = net.DialTimeout("tcp", addr, c.cfg.Timeout)
	} else {
		conn, err = net.Dial("tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", addr, err)
	}

	if c.cfg.Timeout > 0 {
		conn.SetDeadline(time.Now().Add(c.cfg.Timeout))
	}

	request := fmt.Sprintf("GET %s%s HTTP/1.1\r\nHost: %s\r\nConnection: Close\r\n\r\n",
		c.cfg.BasePath, file, c.cfg.Host)
	if _, err := io.WriteString(conn, request); err != nil {
		conn.Close()
		return nil, fmt.Errorf("send request for %s: %w", file, err)
	}

	return conn, nil
}
