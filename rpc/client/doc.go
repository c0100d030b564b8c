// Package client implements the forwarding client of the key-value store.
//
// An RPCStore owns exactly one connection to a server. Any number of
// goroutines submit GET and SET requests on a bounded queue (DefaultQueueSize
// entries unless configured otherwise). Each request carries a one-shot
// response channel. The goroutine owning the connection sends one request,
// reads exactly one response, answers the caller and only then takes the
// next request, so responses can never be mixed up.
//
// Key Components:
//
//   - NewRPCStore: connects the given transport and starts the owner goroutine.
//
//   - Get / Set: submit a command and wait for its response (or for ctx).
//     Null responses map to "not found", bulk responses to a value and error
//     frames to a *ServerError.
//
// Usage Example:
//
//	config := common.ClientConfig{
//	  Transport: common.ClientTransportConfig{Endpoint: "127.0.0.1:6379"},
//	}
//
//	s, err := client.NewRPCStore(config, tcp.NewTCPClientTransport())
//	if err != nil {
//	  log.Fatal(err)
//	}
//	defer s.Close()
//
//	s.Set(ctx, "mykey", []byte("myvalue"))
//	value, exists, _ := s.Get(ctx, "mykey")
//
// After a transport error the failed request returns the error and the owner
// reconnects before sending the next one. Requests are never retried, a SET
// may or may not have been applied when it fails.
//
// Thread Safety:
//
//	RPCStore is safe for concurrent use by multiple goroutines.
package client
