// Package store provides the interface for key-value storage operations and the
// error type shared by its implementations.
//
// Key Components:
//
//   - IStore Interface: Get, Set, Stats and Close. Every operation returns an
//     error, so a store that cannot serve a request reports it to the caller
//     instead of crashing the process. Set returns the value it replaced.
//
//   - Error System: A structured error reporting mechanism using typed return
//     codes (RetCode) and descriptive messages. RetCStoreUnavailable marks a
//     closed store or a shard that failed while its lock was held; IsUnavailable
//     tests for it.
//
// Implementations:
//
//	- Local Sharded Store (lstore): an in-memory store split into independently
//	  locked shards. Available in the "github.com/ValentinKolb/sKV/lib/store/lstore"
//	  package.
package store
