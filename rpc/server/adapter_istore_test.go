package server

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ValentinKolb/sKV/lib/store"
	"github.com/ValentinKolb/sKV/lib/store/lstore"
	"github.com/ValentinKolb/sKV/rpc/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unavailableStore fails every operation like a store whose shard lock was poisoned
type unavailableStore struct{}

func (unavailableStore) Get(string) ([]byte, bool, error) {
	return nil, false, store.NewError(store.RetCStoreUnavailable, "shard 1 is poisoned")
}

func (unavailableStore) Set(string, []byte) ([]byte, bool, error) {
	return nil, false, store.NewError(store.RetCStoreUnavailable, "shard 1 is poisoned")
}

func (unavailableStore) Stats() (store.Stats, error) {
	return store.Stats{}, store.NewError(store.RetCStoreUnavailable, "shard 1 is poisoned")
}

func (unavailableStore) Close() error { return nil }

func request(args ...string) frame.Frame {
	elems := make([]frame.Frame, len(args))
	for i, a := range args {
		elems[i] = frame.NewBulk([]byte(a))
	}
	return frame.NewArray(elems...)
}

func TestIStoreAdapter(t *testing.T) {
	m := NewMetrics()
	adapter := NewIStoreServerAdapter(m)
	s := lstore.NewShardedStore(lstore.DefaultShardCount)

	tests := []struct {
		name string
		req  frame.Frame
		want frame.Frame
	}{
		{"get missing", request("GET", "foo"), frame.NewNull()},
		{"first set", request("SET", "foo", "bar"), frame.NewNull()},
		{"get after set", request("GET", "foo"), frame.NewBulk([]byte("bar"))},
		{"overwrite returns previous", request("set", "foo", "baz"), frame.NewBulk([]byte("bar"))},
		{"get after overwrite", request("get", "foo"), frame.NewBulk([]byte("baz"))},
		{"empty value", request("SET", "empty", ""), frame.NewNull()},
		{"get empty value", request("GET", "empty"), frame.NewBulk([]byte{})},
		{"unsupported", request("PING", ""), frame.NewError("ERR unsupported command 'PING'")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adapter.Handle(tt.req, s)
			assert.True(t, tt.want.Equal(got), "expected %s, got %s", tt.want, got)
		})
	}

	var out bytes.Buffer
	m.WritePrometheus(&out)
	assert.Contains(t, out.String(), `skv_commands_total{command="get"} 4`)
	assert.Contains(t, out.String(), `skv_commands_total{command="set"} 3`)
	assert.Contains(t, out.String(), `skv_unsupported_commands_total 1`)
}

func TestIStoreAdapterDecodeErrors(t *testing.T) {
	adapter := NewIStoreServerAdapter(nil)
	s := lstore.NewShardedStore(1)

	for _, req := range []frame.Frame{
		frame.NewSimple("GET foo"),
		request("GET"),
		request("SET", "foo"),
		frame.NewArray(frame.NewBulk([]byte("GET")), frame.NewInteger(1)),
	} {
		resp := adapter.Handle(req, s)
		require.Equal(t, frame.TypeError, resp.Type, "request %s", req)
		assert.True(t, strings.HasPrefix(resp.Str, "ERR failed to read the command: "), resp.Str)
	}

	// nothing was written
	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Zero(t, stats.Keys())
}

func TestIStoreAdapterStoreUnavailable(t *testing.T) {
	adapter := NewIStoreServerAdapter(nil)

	for _, req := range []frame.Frame{request("GET", "k"), request("SET", "k", "v")} {
		resp := adapter.Handle(req, unavailableStore{})
		assert.True(t, frame.NewError("ERR store unavailable: shard 1 is poisoned").Equal(resp), "got %s", resp)
	}

	resp := adapter.Handle(request("GET", "k"), nil)
	assert.Equal(t, frame.TypeError, resp.Type)
}

func TestErrorFrameSingleLine(t *testing.T) {
	resp := NewIStoreServerAdapter(nil).Handle(request("BAD\r\nVERB"), lstore.NewShardedStore(1))
	require.Equal(t, frame.TypeError, resp.Type)
	assert.NotContains(t, resp.Str, "\r")
	assert.NotContains(t, resp.Str, "\n")

	wire, err := frame.Encode(resp)
	require.NoError(t, err)
	n, err := frame.Check(wire)
	require.NoError(t, err)
	assert.Equal(t, len(wire), n)
}
