package server

import (
	"github.com/ValentinKolb/sKV/lib/store"
	"github.com/ValentinKolb/sKV/rpc/frame"
)

// IRPCServerAdapter is the interface for all RPC server adapters
// It is responsible for handling requests and responses
type IRPCServerAdapter interface {
	// Handle handles a request frame and returns the response frame.
	// It takes the request and a store as parameters.
	// Errors are reported to the client as error frames, never returned
	Handle(req frame.Frame, store store.IStore) (resp frame.Frame)
}
