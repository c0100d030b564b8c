package transport

import (
	"net"

	"github.com/ValentinKolb/sKV/rpc/common"
	"github.com/ValentinKolb/sKV/rpc/frame"
)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ServerHandleFunc is a function type that handles incoming requests
// This function is called by a server transport layer for every request frame
// read from a connection. The returned frame is written back as the response
type ServerHandleFunc func(req frame.Frame) (resp frame.Frame)

// IRPCServerTransport is the interface for the RPC transport layer
type IRPCServerTransport interface {
	// RegisterHandler registers a handler for the transport layer
	// This handler should be called when a request is received
	RegisterHandler(handler ServerHandleFunc)
	// Listen binds the listening socket described by the config.
	// Bind errors are returned unchanged (wrapped) so the caller can classify them
	Listen(config common.ServerConfig) (net.Listener, error)
	// Serve accepts connections on the listener until Close is called
	Serve(listener net.Listener) error
	// Close stops accepting, closes every live connection and waits for the handlers
	Close() error
	// ActiveConnections returns the number of currently open connections
	ActiveConnections() int64
	// AcceptedConnections returns the number of connections accepted so far
	AcceptedConnections() int64
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IRPCClientTransport is the interface for the RPC client transport
// Implementations are driven by a single goroutine
type IRPCClientTransport interface {
	// Connect initializes the transport with the given configuration
	Connect(config common.ClientConfig) error
	// Send sends a request to the server and returns the response
	Send(req frame.Frame) (resp frame.Frame, err error)
	// Close closes the transport connection
	Close() error
}
