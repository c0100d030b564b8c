package base

import (
	"bufio"
	"errors"
	"io"
	"net"
	"time"

	"github.com/ValentinKolb/sKV/rpc/frame"
)

const (
	// initialBufferSize is the starting capacity of the read buffer
	initialBufferSize = 4096

	// minReadSize is the least free space handed to a single Read
	minReadSize = 512
)

// ErrConnectionReset is returned by ReadFrame when the peer closed the stream
// in the middle of a frame.
var ErrConnectionReset = errors.New("connection reset by peer")

// Connection reads and writes frames on a stream. It is owned by exactly one
// goroutine, only Close may be called from another one.
type Connection struct {
	conn    net.Conn
	writer  *bufio.Writer
	buf     []byte // unconsumed bytes, cap(buf) is the read capacity
	timeout time.Duration
}

// NewConnection wraps conn. A timeout > 0 is applied as deadline to every
// read and write.
func NewConnection(conn net.Conn, timeout time.Duration) *Connection {
	return &Connection{
		conn:    conn,
		writer:  bufio.NewWriter(conn),
		buf:     make([]byte, 0, initialBufferSize),
		timeout: timeout,
	}
}

// ReadFrame returns the next frame from the stream.
//
// The boolean is false (with a nil error) when the peer closed the stream between
// frames. A close in the middle of a frame returns ErrConnectionReset, a
// malformed frame returns the *frame.ProtocolError from the codec.
func (c *Connection) ReadFrame() (frame.Frame, bool, error) {
	for {
		if len(c.buf) > 0 {
			n, err := frame.Check(c.buf)
			switch {
			case err == nil:
				f, _, err := frame.Parse(c.buf[:n])
				if err != nil {
					return frame.Frame{}, false, err
				}
				c.consume(n)
				return f, true, nil
			case !errors.Is(err, frame.ErrIncomplete):
				return frame.Frame{}, false, err
			}
		}

		if c.timeout > 0 {
			if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
				return frame.Frame{}, false, err
			}
		}

		c.reserve()
		n, err := c.conn.Read(c.buf[len(c.buf):cap(c.buf)])
		c.buf = c.buf[:len(c.buf)+n]
		if n > 0 {
			continue
		}
		if errors.Is(err, io.EOF) {
			if len(c.buf) == 0 {
				return frame.Frame{}, false, nil
			}
			return frame.Frame{}, false, ErrConnectionReset
		}
		if err != nil {
			return frame.Frame{}, false, err
		}
	}
}

// WriteFrame encodes f and flushes it to the stream
func (c *Connection) WriteFrame(f frame.Frame) error {
	if c.timeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
			return err
		}
	}
	if err := frame.WriteFrame(c.writer, f); err != nil {
		return err
	}
	return c.writer.Flush()
}

// Close closes the underlying stream
func (c *Connection) Close() error {
	return c.conn.Close()
}

// RemoteAddr returns the address of the peer
func (c *Connection) RemoteAddr() string {
	if addr := c.conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return "unknown"
}

// Buffered returns the number of received bytes not yet returned as a frame
func (c *Connection) Buffered() int {
	return len(c.buf)
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// consume drops the first n bytes and keeps the remaining (pipelined) ones
func (c *Connection) consume(n int) {
	c.buf = c.buf[:copy(c.buf, c.buf[n:])]
}

// reserve makes sure at least minReadSize bytes are free behind the data
func (c *Connection) reserve() {
	if cap(c.buf)-len(c.buf) >= minReadSize {
		return
	}
	grown := make([]byte, len(c.buf), 2*cap(c.buf))
	copy(grown, c.buf)
	c.buf = grown
}
