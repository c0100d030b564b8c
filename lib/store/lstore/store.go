package lstore

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ValentinKolb/sKV/lib/store"
	"github.com/cespare/xxhash/v2"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("store")

// DefaultShardCount is the number of shards used when no count is configured
const DefaultShardCount = 3

// shard is one independently locked partition of the key space
type shard struct {
	id    int
	mu    sync.RWMutex
	data  map[string][]byte // nil once the store is closed
	bytes int               // sum of all value sizes
}

var _ store.IStore = (*ShardedStore)(nil)

// ShardedStore is an in-memory store.IStore that splits the key space into
// a fixed number of shards. Every operation locks exactly one shard.
type ShardedStore struct {
	shards []*shard
	closed atomic.Bool
}

// NewShardedStore creates a store with shardCount empty shards.
// shardCount must be at least 1; smaller values are raised to 1.
func NewShardedStore(shardCount int) *ShardedStore {
	if shardCount < 1 {
		Logger.Warningf("invalid shard count %d, using 1", shardCount)
		shardCount = 1
	}

	shards := make([]*shard, shardCount)
	for i := range shards {
		shards[i] = &shard{
			id:   i,
			data: make(map[string][]byte),
		}
	}

	return &ShardedStore{shards: shards}
}

// ShardCount returns the number of shards
func (s *ShardedStore) ShardCount() int {
	return len(s.shards)
}

// ShardIndex returns the shard responsible for key. The mapping depends only
// on the key bytes and the shard count.
func (s *ShardedStore) ShardIndex(key string) int {
	return int(xxhash.Sum64String(key) % uint64(len(s.shards)))
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *ShardedStore) Get(key string) (value []byte, loaded bool, err error) {
	sh, err := s.shardFor(key)
	if err != nil {
		return nil, false, err
	}

	err = sh.withLock(false, func() error {
		v, ok := sh.data[key]
		if ok {
			value = clone(v)
			loaded = true
		}
		return nil
	})
	return value, loaded, err
}

func (s *ShardedStore) Set(key string, value []byte) (prev []byte, loaded bool, err error) {
	sh, err := s.shardFor(key)
	if err != nil {
		return nil, false, err
	}

	// copy outside the lock
	stored := clone(value)

	err = sh.withLock(true, func() error {
		prev, loaded = sh.data[key]
		sh.data[key] = stored
		sh.bytes += len(stored) - len(prev)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return prev, loaded, nil
}

func (s *ShardedStore) Stats() (store.Stats, error) {
	if s.closed.Load() {
		return store.Stats{}, errClosed
	}

	stats := store.Stats{
		ShardKeys:  make([]int, len(s.shards)),
		ShardBytes: make([]int, len(s.shards)),
	}
	for i, sh := range s.shards {
		err := sh.withLock(false, func() error {
			stats.ShardKeys[i] = len(sh.data)
			stats.ShardBytes[i] = sh.bytes
			return nil
		})
		if err != nil {
			return store.Stats{}, err
		}
	}
	return stats, nil
}

func (s *ShardedStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	for _, sh := range s.shards {
		sh.mu.Lock()
		sh.data = nil
		sh.bytes = 0
		sh.mu.Unlock()
	}
	Logger.Infof("closed store with %d shards", len(s.shards))
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

var errClosed = store.NewError(store.RetCStoreUnavailable, "store is closed")

// shardFor returns the shard for key or an error if the store is closed
func (s *ShardedStore) shardFor(key string) (*shard, error) {
	if s.closed.Load() {
		return nil, errClosed
	}
	return s.shards[s.ShardIndex(key)], nil
}

// withLock runs fn while holding the shard lock (exclusive if write is set).
// A panic inside fn is recovered and reported as RetCStoreUnavailable; the
// lock is released either way, so the shard stays usable.
func (sh *shard) withLock(write bool, fn func() error) (err error) {
	if write {
		sh.mu.Lock()
		defer sh.mu.Unlock()
	} else {
		sh.mu.RLock()
		defer sh.mu.RUnlock()
	}

	defer func() {
		if r := recover(); r != nil {
			Logger.Errorf("recovered from panic in shard %d: %v", sh.id, r)
			err = store.NewError(store.RetCStoreUnavailable, fmt.Sprintf("shard %d: %v", sh.id, r))
		}
	}()

	if sh.data == nil {
		return errClosed
	}
	return fn()
}

// clone returns a copy of b that never aliases the caller's memory
func clone(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
