// Package common provides configuration structures and utilities shared
// across the sKV server, client and command-line interface.
//
// Key Components:
//
//   - ServerConfig: shard count, listener settings, deadlines, metrics
//     endpoint and log level of a server. Validate rejects values the server
//     cannot work with, String renders the configuration for the startup log.
//
//   - ClientConfig: connection and queue settings of the forwarding client.
//
//   - Logger: Custom logging implementation that plugs into Dragonboat's
//     logger package (logger.GetLogger / logger.SetLoggerFactory). Every
//     package keeps its own named logger; InitLoggers sets the level of all
//     of them at once.
package common
