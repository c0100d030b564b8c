package client

import (
	"context"
	"sync"

	"github.com/ValentinKolb/sKV/rpc/command"
	"github.com/ValentinKolb/sKV/rpc/common"
	"github.com/ValentinKolb/sKV/rpc/frame"
	"github.com/ValentinKolb/sKV/rpc/transport"
)

// DefaultQueueSize is the number of requests that may wait for the connection
const DefaultQueueSize = 32

// request is one queued command together with the channel its result is sent on
type request struct {
	cmd  *command.Command
	resp chan result // capacity 1, written exactly once
}

type result struct {
	frame frame.Frame
	err   error
}

// RPCStore forwards GET and SET requests of any number of goroutines over a
// single connection. One goroutine owns the transport: it takes a request
// from the queue, sends it, reads exactly one response and hands it back
// before taking the next one.
type RPCStore struct {
	config    common.ClientConfig
	requests  chan request
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewRPCStore connects the transport and starts the goroutine owning it
//
// Usage:
//
//	s, err := client.NewRPCStore(config, tcp.NewTCPClientTransport())
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
//	prev, replaced, err := s.Set(ctx, "foo", []byte("bar"))
func NewRPCStore(
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
) (*RPCStore, error) {
	// Connect the transport
	if err := transport.Connect(config); err != nil {
		return nil, err
	}

	queueSize := config.QueueSize
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	s := &RPCStore{
		config:   config,
		requests: make(chan request, queueSize),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go s.run(transport)

	return s, nil
}

// --------------------------------------------------------------------------
// Public Methods
// --------------------------------------------------------------------------

// Get returns the value of key. The boolean is false if the key does not exist
func (s *RPCStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	resp, err := s.invoke(ctx, command.NewGet(key))
	if err != nil {
		return nil, false, err
	}
	return optionalBulk(resp)
}

// Set stores value under key and returns the value it replaced, if any
func (s *RPCStore) Set(ctx context.Context, key string, value []byte) ([]byte, bool, error) {
	resp, err := s.invoke(ctx, command.NewSet(key, value))
	if err != nil {
		return nil, false, err
	}
	return optionalBulk(resp)
}

// Close stops the owner goroutine and closes the connection. Requests still
// queued fail with ErrClosed.
func (s *RPCStore) Close() error {
	s.closeOnce.Do(func() { close(s.stop) })
	<-s.done
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// invoke queues cmd and waits for its response
func (s *RPCStore) invoke(ctx context.Context, cmd *command.Command) (frame.Frame, error) {
	req := request{cmd: cmd, resp: make(chan result, 1)}

	select {
	case s.requests <- req:
	case <-s.stop:
		return frame.Frame{}, ErrClosed
	case <-ctx.Done():
		return frame.Frame{}, ctx.Err()
	}

	select {
	case r := <-req.resp:
		return r.frame, r.err
	case <-ctx.Done():
		// the owner still answers into the buffered channel
		return frame.Frame{}, ctx.Err()
	case <-s.done:
		// the owner may have answered right before it stopped
		select {
		case r := <-req.resp:
			return r.frame, r.err
		default:
			return frame.Frame{}, ErrClosed
		}
	}
}

// run owns the transport until Close is called
func (s *RPCStore) run(t transport.IRPCClientTransport) {
	defer close(s.done)
	defer func() {
		if err := t.Close(); err != nil {
			Logger.Warningf("Failed to close connection: %v", err)
		}
	}()

	broken := false
	for {
		select {
		case <-s.stop:
			return
		case req := <-s.requests:
			// Restore the connection after a transport error
			if broken {
				if err := t.Connect(s.config); err != nil {
					req.resp <- result{err: err}
					continue
				}
				broken = false
			}

			resp, err := t.Send(req.cmd.ToFrame())
			if err != nil {
				Logger.Warningf("%s failed: %v", req.cmd, err)
				broken = true
			}
			req.resp <- result{frame: resp, err: err}
		}
	}
}
