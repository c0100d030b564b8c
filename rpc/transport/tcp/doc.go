// Package tcp implements TCP socket-based transport for the key-value store's
// RPC system. It provides concrete implementations of the base package's connector
// interfaces.
//
// This package builds on the base package's transport functionality (frame
// buffering, per-connection handlers, error classification). See the base
// package documentation for details.
//
// Key Components:
//
//   - clientConnector: TCP-specific implementation of base.IClientConnector
//
//   - serverConnector: TCP-specific implementation of base.IServerConnector
//
// Both connectors apply the TCPConf and SocketConf settings (no-delay,
// keep-alive, linger and socket buffer sizes) to every connection.
package tcp
