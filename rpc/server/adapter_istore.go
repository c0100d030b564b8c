package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ValentinKolb/sKV/lib/store"
	"github.com/ValentinKolb/sKV/rpc/command"
	"github.com/ValentinKolb/sKV/rpc/frame"
)

// NewIStoreServerAdapter returns the adapter executing GET and SET against a store.IStore.
// m may be nil, then nothing is counted
func NewIStoreServerAdapter(m *Metrics) IRPCServerAdapter {
	return &iStoreServerAdapterImpl{metrics: m}
}

type iStoreServerAdapterImpl struct {
	metrics *Metrics
}

func (adapter *iStoreServerAdapterImpl) Handle(req frame.Frame, s store.IStore) frame.Frame {
	// Check for nil store
	if s == nil {
		return errorFrame("ERR store unavailable: store is nil")
	}

	cmd, err := command.FromFrame(req)
	if err != nil {
		adapter.metrics.decodeError()
		Logger.Warningf("Failed to decode command: %v", err)
		return errorFrame("ERR failed to read the command: %v", err)
	}

	// Handle different command types
	switch cmd.Type {
	case command.CommandTGet:
		adapter.metrics.command(cmd.Type)
		val, ok, err := s.Get(cmd.Key)
		if err != nil {
			return adapter.storeError(cmd, err)
		}
		Logger.Infof("%s -> found=%v", cmd, ok)
		if !ok {
			return frame.NewNull()
		}
		return frame.NewBulk(val)

	case command.CommandTSet:
		adapter.metrics.command(cmd.Type)
		prev, loaded, err := s.Set(cmd.Key, cmd.Value)
		if err != nil {
			return adapter.storeError(cmd, err)
		}
		Logger.Infof("%s -> replaced=%v", cmd, loaded)
		if !loaded {
			return frame.NewNull()
		}
		return frame.NewBulk(prev)

	default:
		adapter.metrics.unsupportedCommand()
		Logger.Warningf("Unsupported command '%s'", cmd.Name)
		return errorFrame("ERR unsupported command '%s'", cmd.Name)
	}
}

// storeError turns a failed store operation into an error frame
func (adapter *iStoreServerAdapterImpl) storeError(cmd *command.Command, err error) frame.Frame {
	adapter.metrics.storeError()
	Logger.Errorf("%s failed: %v", cmd, err)

	var storeErr *store.Error
	if errors.As(err, &storeErr) && storeErr.Code == store.RetCStoreUnavailable {
		return errorFrame("ERR store unavailable: %s", storeErr.Msg)
	}
	return errorFrame("ERR %v", err)
}

// lineBreaks would terminate an error frame early
var lineBreaks = strings.NewReplacer("\r", " ", "\n", " ")

// errorFrame builds an error frame whose text stays on a single line
func errorFrame(format string, args ...interface{}) frame.Frame {
	return frame.NewError(lineBreaks.Replace(fmt.Sprintf(format, args...)))
}
