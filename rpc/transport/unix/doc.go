// Package unix implements a transport layer for the key-value store's RPC
// system using Unix domain sockets. It provides communication for processes
// running on the same machine.
//
// This package extends the base transport layer with Unix socket-specific connectors
// while inheriting frame handling and error classification from the base package.
//
// Key Components:
//
//   - clientConnector: Establishes connections using Unix domain sockets
//
//   - serverConnector: Creates Unix socket listeners (removing a stale socket
//     file first) and accepts connections
package unix
