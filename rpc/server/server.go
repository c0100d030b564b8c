package server

import (
	"fmt"
	"net"

	"github.com/ValentinKolb/sKV/lib/store"
	"github.com/ValentinKolb/sKV/rpc/common"
	"github.com/ValentinKolb/sKV/rpc/frame"
	"github.com/ValentinKolb/sKV/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("rpc")

// NewRPCServer creates a new RPC server
// It takes a config, transport and the store to serve as parameters
//
// Usage:
//
//	s := server.NewRPCServer(
//		*config,
//		tcp.NewTCPServerTransport(),
//		lstore.NewShardedStore(config.ShardCount),
//	)
//
//	listener, err := s.Listen()
//	if err != nil {
//		panic(err)
//	}
//	if err := s.Serve(listener); err != nil {
//		panic(err)
//	}
func NewRPCServer(
	config common.ServerConfig,
	transport transport.IRPCServerTransport,
	store store.IStore,
) *RPCServer {
	m := NewMetrics()
	m.RegisterStore(store)
	m.RegisterTransport(transport)

	s := &RPCServer{
		config:    config,
		transport: transport,
		store:     store,
		adapter:   NewIStoreServerAdapter(m),
		metrics:   m,
	}
	s.registerTransportHandler()

	Logger.Infof("Created RPC Server")
	Logger.Infof("%s", config.String())

	return s
}

// RPCServer ties a transport to a store
type RPCServer struct {
	config    common.ServerConfig
	transport transport.IRPCServerTransport
	store     store.IStore
	adapter   IRPCServerAdapter
	metrics   *Metrics
	endpoint  *metricsEndpoint
}

func (s *RPCServer) registerTransportHandler() {
	s.transport.RegisterHandler(func(req frame.Frame) frame.Frame {
		return s.adapter.Handle(req, s.store)
	})
}

// Listen binds the listening socket and starts the metrics endpoint (if
// configured). The returned error wraps the underlying net error, see
// base.DescribeBindError
func (s *RPCServer) Listen() (net.Listener, error) {
	listener, err := s.transport.Listen(s.config)
	if err != nil {
		return nil, err
	}
	if s.config.MetricsEndpoint != "" && s.endpoint == nil {
		s.endpoint = startMetricsEndpoint(s.config.MetricsEndpoint, s.metrics)
	}
	return listener, nil
}

// Serve serves connections on the listener until Shutdown is called
func (s *RPCServer) Serve(listener net.Listener) error {
	if err := s.transport.Serve(listener); err != nil {
		return fmt.Errorf("transport failed: %w", err)
	}
	return nil
}

// Metrics returns the metrics of the server
func (s *RPCServer) Metrics() *Metrics {
	return s.metrics
}

// Shutdown closes the transport (and with it every connection), the metrics
// endpoint and finally the store
func (s *RPCServer) Shutdown() error {
	Logger.Infof("Shutting down RPC Server")

	err := s.transport.Close()
	if s.endpoint != nil {
		if cerr := s.endpoint.close(); cerr != nil {
			Logger.Warningf("Failed to stop metrics endpoint: %v", cerr)
		}
	}
	if s.store != nil {
		if cerr := s.store.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
