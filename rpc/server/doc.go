// Package server implements the RPC server of the key-value store.
// It ties a transport (see package transport) to a store.IStore and turns
// every request frame into exactly one response frame.
//
// Key Components:
//
//   - IRPCServerAdapter: Interface defining the contract for server adapters,
//     with the Handle method that processes a request frame against a store.IStore.
//
//   - NewIStoreServerAdapter: the dispatcher. It decodes the request with
//     command.FromFrame and executes it:
//
//     GET key        -> bulk value, or null when the key is absent
//     SET key value  -> bulk previous value, or null when the key was new
//     unknown verb   -> -ERR unsupported command 'VERB'
//     decode error   -> -ERR failed to read the command: <cause>
//     store failure  -> -ERR store unavailable: <cause>
//
//     None of these close the connection. Only malformed frames do, and that
//     happens in the transport before the adapter is reached.
//
//   - Metrics: command, error and connection counters plus store size gauges
//     (VictoriaMetrics), served in Prometheus format on the metrics endpoint.
//
//   - NewRPCServer: creates a server for a config, transport and store.
//
// Usage Example:
//
//	config := common.ServerConfig{
//	  ShardCount: 3,
//	  Transport:  common.ServerTransportConfig{Endpoint: "127.0.0.1:6379"},
//	  LogLevel:   "info",
//	}
//
//	s := server.NewRPCServer(config, tcp.NewTCPServerTransport(), lstore.NewShardedStore(config.ShardCount))
//
//	listener, err := s.Listen()
//	if err != nil {
//	  log.Fatalf("bind failed (%s): %v", base.DescribeBindError(err), err)
//	}
//	go s.Serve(listener)
//	...
//	s.Shutdown()
//
// Thread Safety:
//
//	The server handles every connection in its own goroutine. Requests on one
//	connection are answered strictly in order. Listen should be called only once.
package server
