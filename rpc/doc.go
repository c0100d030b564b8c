// Package rpc provides the communication layer of sKV: everything between a
// byte on the socket and a call on the store.
//
// The package is organized into several subpackages:
//
//   - frame: The wire format. Frames (simple strings, errors, integers, bulk
//     strings, null and arrays) with a non-allocating completeness check,
//     a parser and an encoder.
//
//   - command: Interprets request frames as GET and SET commands.
//
//   - common: Configuration structures and logging shared across the RPC system.
//
//   - transport: Network communication abstractions with pluggable implementations
//     (TCP, Unix sockets). The base subpackage holds the per-connection frame
//     loop and the accept loop.
//
//   - client: The forwarding client, one connection shared by many goroutines.
//
//   - server: Dispatches decoded commands to the store and reports metrics.
package rpc
