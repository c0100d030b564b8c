package base

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ValentinKolb/sKV/rpc/common"
	"github.com/ValentinKolb/sKV/rpc/transport"
	"github.com/puzpuzpuz/xsync/v3"
)

const (
	minAcceptBackoff = 5 * time.Millisecond
	maxAcceptBackoff = time.Second
)

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IServerConnector defines the interface for transport-specific server operations
type IServerConnector interface {
	// Listen creates a listener and returns it
	Listen(config common.ServerConfig) (net.Listener, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an accepted connection
	UpgradeConnection(conn net.Conn, config common.ServerConfig) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// serverTransport implements the core server transport functionality
type serverTransport struct {
	connector IServerConnector
	handler   transport.ServerHandleFunc
	config    common.ServerConfig

	mu       sync.Mutex // protects listener
	listener net.Listener
	closed   atomic.Bool

	conns    *xsync.MapOf[uint64, *Connection] // live connections by id
	nextID   atomic.Uint64
	active   *xsync.Counter
	accepted *xsync.Counter
	wg       sync.WaitGroup // one per connection handler
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseServerTransport creates a new base server transport using the given connector
func NewBaseServerTransport(connector IServerConnector) transport.IRPCServerTransport {
	return &serverTransport{
		connector: connector,
		conns:     xsync.NewMapOf[uint64, *Connection](),
		active:    xsync.NewCounter(),
		accepted:  xsync.NewCounter(),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCServerTransport)
// --------------------------------------------------------------------------

func (t *serverTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *serverTransport) Listen(config common.ServerConfig) (net.Listener, error) {
	t.config = config

	// Create listener using the connector
	listener, err := t.connector.Listen(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s listener on %s: %w", t.connector.GetName(), config.Transport.Endpoint, err)
	}
	return listener, nil
}

func (t *serverTransport) Serve(listener net.Listener) error {
	if t.handler == nil {
		return fmt.Errorf("no handler registered")
	}

	t.mu.Lock()
	if t.closed.Load() {
		t.mu.Unlock()
		listener.Close()
		return nil
	}
	t.listener = listener
	t.mu.Unlock()

	Logger.Infof("Accepting %s connections on %s", t.connector.GetName(), listener.Addr())

	var backoff time.Duration
	for {
		conn, err := listener.Accept()
		if err != nil {
			if t.closed.Load() {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return fmt.Errorf("listener closed unexpectedly: %w", err)
			}

			// Back off on persistent errors (e.g. out of file descriptors)
			backoff = nextBackoff(backoff)
			Logger.Errorf("Failed to accept connection (%s): %v, retrying in %s", DescribeAcceptError(err), err, backoff)
			time.Sleep(backoff)
			continue
		}
		backoff = 0

		if err := t.connector.UpgradeConnection(conn, t.config); err != nil {
			Logger.Warningf("Failed to apply socket options to %s: %v", conn.RemoteAddr(), err)
		}

		// Register under mu so Close never waits while a handler is being added
		t.mu.Lock()
		if t.closed.Load() {
			t.mu.Unlock()
			conn.Close()
			return nil
		}
		t.accepted.Inc()
		t.wg.Add(1)
		t.mu.Unlock()

		// Handle the connection in a goroutine
		go t.handleConnection(conn)
	}
}

func (t *serverTransport) Close() error {
	t.mu.Lock()
	if !t.closed.CompareAndSwap(false, true) {
		t.mu.Unlock()
		return nil
	}
	listener := t.listener
	t.mu.Unlock()

	var err error
	if listener != nil {
		err = listener.Close()
	}

	// Unblock every handler waiting for a read
	t.conns.Range(func(_ uint64, c *Connection) bool {
		c.Close()
		return true
	})
	t.wg.Wait()

	Logger.Infof("Server transport closed, %d connections served", t.accepted.Value())
	return err
}

func (t *serverTransport) ActiveConnections() int64 {
	return t.active.Value()
}

func (t *serverTransport) AcceptedConnections() int64 {
	return t.accepted.Value()
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// handleConnection serves requests of one connection until it is closed
func (t *serverTransport) handleConnection(conn net.Conn) {
	defer t.wg.Done()

	// Timeout in seconds
	timeout := time.Duration(t.config.TimeoutSecond) * time.Second
	c := NewConnection(conn, timeout)
	remote := c.RemoteAddr()

	id := t.nextID.Add(1)
	t.conns.Store(id, c)
	t.active.Inc()
	defer func() {
		t.conns.Delete(id)
		t.active.Dec()
		c.Close()
	}()

	// Close may have run before the connection was registered
	if t.closed.Load() {
		return
	}

	Logger.Debugf("Accepted connection from %s", remote)

	for {
		req, ok, err := c.ReadFrame()
		if err != nil {
			if t.closed.Load() {
				return
			}
			Logger.Errorf("Failed to read frame from %s, closing connection: %v", remote, err)
			return
		}

		// Case clean close: connection closed by client
		if !ok {
			Logger.Debugf("Connection closed by client %s", remote)
			return
		}

		start := time.Now()
		resp := t.handler(req)
		Logger.Debugf("Processed request from %s in %s", remote, time.Since(start))

		if err := c.WriteFrame(resp); err != nil {
			if !t.closed.Load() {
				Logger.Errorf("Failed to write response to %s, closing connection: %v", remote, err)
			}
			return
		}
	}
}

// nextBackoff doubles the accept backoff up to maxAcceptBackoff
func nextBackoff(current time.Duration) time.Duration {
	if current == 0 {
		return minAcceptBackoff
	}
	if current *= 2; current > maxAcceptBackoff {
		return maxAcceptBackoff
	}
	return current
}
