// Package base provides a foundation for transport layers of the key-value store,
// implementing the frame exchange independent of the specific network protocol
// (TCP, Unix sockets). It serves as a base layer that is extended with
// protocol-specific connectors.
//
// The package focuses on:
//   - Reading and writing whole frames on a byte stream
//   - One goroutine per accepted connection, strict request/response order
//   - Classification of accept and bind errors for logging
//
// Key Components:
//
//   - Connection: wraps a net.Conn with a growable read buffer (starting at
//     4 KiB) and a buffered writer. ReadFrame checks the buffered bytes for a
//     complete frame, parses it and drops exactly the consumed bytes, so
//     pipelined requests stay in the buffer. An end of stream between frames
//     is a clean close, inside a frame it is ErrConnectionReset.
//
//   - IClientConnector/IServerConnector: Interfaces for protocol-specific operations
//     that allow extending the base transport with different network protocols.
//
//   - serverTransport: accepts connections, tracks the live ones in an
//     xsync.MapOf and runs the registered handler for every request. Accept
//     errors are logged and retried with a capped backoff. Close stops the
//     accept loop and closes every live connection.
//
//   - clientTransport: a single connection sending one request and reading
//     exactly one response at a time.
//
// Thread Safety:
//
//	A Connection belongs to one goroutine. The server and client transports
//	are safe for concurrent use.
package base
