package base

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/ValentinKolb/sKV/rpc/common"
	"github.com/ValentinKolb/sKV/rpc/frame"
	"github.com/ValentinKolb/sKV/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("transport/rpc")

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IClientConnector defines the interface for transport-specific connection operations
type IClientConnector interface {
	// Connect establishes a single connection based on the provided configuration
	Connect(endpoint string) (net.Conn, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an established connection
	UpgradeConnection(conn net.Conn, config common.ClientConfig) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// clientTransport implements the core client transport functionality
// independent of the specific transport medium (unix, tcp, etc.)
type clientTransport struct {
	connector IClientConnector
	config    common.ClientConfig
	mu        sync.Mutex // serializes request/response pairs
	conn      *Connection
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseClientTransport creates a new base client transport with the specified connector
func NewBaseClientTransport(connector IClientConnector) transport.IRPCClientTransport {
	return &clientTransport{
		connector: connector,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCClientTransport)
// --------------------------------------------------------------------------

func (t *clientTransport) Connect(config common.ClientConfig) error {
	if config.Transport.Endpoint == "" {
		return fmt.Errorf("no endpoint provided")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Close an existing connection
	if t.conn != nil {
		t.conn.Close()
		t.conn = nil
	}
	t.config = config

	conn, err := t.connector.Connect(config.Transport.Endpoint)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", config.Transport.Endpoint, err)
	}

	// Upgrade the connection with protocol-specific settings
	if err := t.connector.UpgradeConnection(conn, config); err != nil {
		conn.Close()
		return fmt.Errorf("failed to upgrade connection to %s: %w", config.Transport.Endpoint, err)
	}

	timeout := time.Duration(config.TimeoutSecond) * time.Second
	t.conn = NewConnection(conn, timeout)

	Logger.Infof("Connected to %s using %s transport", config.Transport.Endpoint, t.connector.GetName())
	return nil
}

func (t *clientTransport) Send(req frame.Frame) (frame.Frame, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Test if connection is still valid
	if t.conn == nil {
		return frame.Frame{}, fmt.Errorf("connection is closed")
	}

	if err := t.conn.WriteFrame(req); err != nil {
		return frame.Frame{}, fmt.Errorf("failed to send request: %w", err)
	}

	resp, ok, err := t.conn.ReadFrame()
	if err != nil {
		return frame.Frame{}, fmt.Errorf("failed to read response: %w", err)
	}
	if !ok {
		return frame.Frame{}, fmt.Errorf("failed to read response: %w", ErrConnectionReset)
	}
	return resp, nil
}

func (t *clientTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}
