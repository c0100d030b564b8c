// Package lstore implements a local, in-memory, single-node key-value store based on the
// store.IStore interface. The key space is split into a fixed number of shards, each a
// plain map guarded by its own sync.RWMutex. Data is not persisted between process restarts.
//
// Key Features:
//   - Pure in-memory storage without persistence or expiry
//   - Shard count fixed at construction (DefaultShardCount = 3)
//   - One lock per shard; operations on keys in different shards never contend
//   - Values are copied on the way in and on the way out
//
// Implementation Details:
//
//   - Shard Selection: ShardIndex hashes the key bytes with xxhash and takes the
//     result modulo the shard count. The mapping is pure, so a key lives in exactly
//     one shard for the lifetime of the store and no rebalancing is needed. Using a
//     single shard is a valid configuration and forces every operation onto one lock,
//     which is useful in tests.
//
//   - Lock Scope: A shard lock is held for the map lookup or mutation only. Copies
//     of incoming values are made before the lock is taken, and no I/O happens while
//     a lock is held. Reads share the lock, writes take it exclusively.
//
//   - Failure Handling: Go mutexes are not poisoned by panics. A panic raised while a
//     shard lock is held is recovered, the lock is released, and the operation returns
//     a *store.Error with code store.RetCStoreUnavailable. After Close every operation
//     returns the same code.
//
// Usage Example:
//
//	s := lstore.NewShardedStore(lstore.DefaultShardCount)
//
//	prev, replaced, err := s.Set("foo", []byte("bar"))
//
//	value, found, err := s.Get("foo")
package lstore
