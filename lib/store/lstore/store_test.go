package lstore

import (
	"bytes"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ValentinKolb/sKV/lib/store"
)

// TestShardedStore covers the basic read and write contract
func TestShardedStore(t *testing.T) {
	t.Run("get missing key", func(t *testing.T) {
		s := NewShardedStore(DefaultShardCount)

		value, ok, err := s.Get("missing")
		if err != nil {
			t.Fatalf("Get returned error: %v", err)
		}
		if ok || value != nil {
			t.Errorf("Expected absent value, got ok=%v value=%q", ok, value)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		s := NewShardedStore(DefaultShardCount)

		prev, loaded, err := s.Set("foo", []byte("bar"))
		if err != nil {
			t.Fatalf("Set returned error: %v", err)
		}
		if loaded || prev != nil {
			t.Errorf("Expected no previous value, got %q", prev)
		}

		value, ok, err := s.Get("foo")
		if err != nil {
			t.Fatalf("Get returned error: %v", err)
		}
		if !ok || !bytes.Equal(value, []byte("bar")) {
			t.Errorf("Expected 'bar', got ok=%v value=%q", ok, value)
		}
	})

	t.Run("overwrite returns previous value", func(t *testing.T) {
		s := NewShardedStore(DefaultShardCount)

		if _, _, err := s.Set("foo", []byte("v1")); err != nil {
			t.Fatalf("Set returned error: %v", err)
		}
		prev, loaded, err := s.Set("foo", []byte("v2"))
		if err != nil {
			t.Fatalf("Set returned error: %v", err)
		}
		if !loaded || string(prev) != "v1" {
			t.Errorf("Expected previous value 'v1', got loaded=%v prev=%q", loaded, prev)
		}

		value, _, _ := s.Get("foo")
		if string(value) != "v2" {
			t.Errorf("Expected 'v2', got %q", value)
		}
	})

	t.Run("empty value is stored", func(t *testing.T) {
		s := NewShardedStore(DefaultShardCount)

		if _, _, err := s.Set("empty", []byte{}); err != nil {
			t.Fatalf("Set returned error: %v", err)
		}
		value, ok, _ := s.Get("empty")
		if !ok || len(value) != 0 {
			t.Errorf("Expected empty stored value, got ok=%v value=%q", ok, value)
		}
	})

	t.Run("values are copied", func(t *testing.T) {
		s := NewShardedStore(DefaultShardCount)

		in := []byte("original")
		s.Set("k", in)
		copy(in, "modified")

		out, _, _ := s.Get("k")
		if string(out) != "original" {
			t.Errorf("Stored value changed with the input slice: %q", out)
		}

		copy(out, "changed!")
		again, _, _ := s.Get("k")
		if string(again) != "original" {
			t.Errorf("Stored value changed with the returned slice: %q", again)
		}
	})
}

// TestWriteThenRead checks write-then-read consistency for many keys and shard counts
func TestWriteThenRead(t *testing.T) {
	for _, shards := range []int{1, 3, 16} {
		t.Run(fmt.Sprintf("%d shards", shards), func(t *testing.T) {
			s := NewShardedStore(shards)
			for i := 0; i < 500; i++ {
				key := fmt.Sprintf("key-%d", i)
				val := []byte(fmt.Sprintf("value-%d", i))
				if _, _, err := s.Set(key, val); err != nil {
					t.Fatalf("Set %s failed: %v", key, err)
				}
				got, ok, err := s.Get(key)
				if err != nil || !ok || !bytes.Equal(got, val) {
					t.Fatalf("Get %s: expected %q, got %q (ok=%v, err=%v)", key, val, got, ok, err)
				}
			}
		})
	}
}

// TestShardIndexDeterministic verifies the key-to-shard mapping is pure and in range
func TestShardIndexDeterministic(t *testing.T) {
	a := NewShardedStore(7)
	b := NewShardedStore(7)

	used := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		key := fmt.Sprintf("key-%d", i)
		idx := a.ShardIndex(key)
		if idx < 0 || idx >= 7 {
			t.Fatalf("Shard index %d out of range for %s", idx, key)
		}
		if idx != a.ShardIndex(key) || idx != b.ShardIndex(key) {
			t.Fatalf("Shard index for %s is not deterministic", key)
		}
		used[idx] = true
	}

	if len(used) != 7 {
		t.Errorf("Expected keys to spread over all 7 shards, got %d", len(used))
	}
}

// TestInvalidShardCount checks that a count below one is raised to one
func TestInvalidShardCount(t *testing.T) {
	s := NewShardedStore(0)
	if s.ShardCount() != 1 {
		t.Fatalf("Expected 1 shard, got %d", s.ShardCount())
	}
	if _, _, err := s.Set("k", []byte("v")); err != nil {
		t.Errorf("Set failed: %v", err)
	}
}

// TestStats checks key and byte accounting across overwrites
func TestStats(t *testing.T) {
	s := NewShardedStore(4)
	s.Set("a", []byte("123"))
	s.Set("b", []byte("12345"))
	s.Set("a", []byte("1"))

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if len(stats.ShardKeys) != 4 {
		t.Fatalf("Expected 4 shard entries, got %d", len(stats.ShardKeys))
	}
	if stats.Keys() != 2 {
		t.Errorf("Expected 2 keys, got %d", stats.Keys())
	}
	if stats.Bytes() != 6 {
		t.Errorf("Expected 6 bytes, got %d", stats.Bytes())
	}
}

// TestClose verifies that a closed store reports itself as unavailable
func TestClose(t *testing.T) {
	s := NewShardedStore(2)
	s.Set("k", []byte("v"))

	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Second Close failed: %v", err)
	}

	if _, _, err := s.Get("k"); !store.IsUnavailable(err) {
		t.Errorf("Expected unavailable error from Get, got %v", err)
	}
	if _, _, err := s.Set("k", []byte("v")); !store.IsUnavailable(err) {
		t.Errorf("Expected unavailable error from Set, got %v", err)
	}
	if _, err := s.Stats(); !store.IsUnavailable(err) {
		t.Errorf("Expected unavailable error from Stats, got %v", err)
	}
}

// TestPanicRecovery checks that a panic under a shard lock is reported and the shard stays usable
func TestPanicRecovery(t *testing.T) {
	s := NewShardedStore(1)
	sh := s.shards[0]

	err := sh.withLock(true, func() error {
		panic("boom")
	})
	if !store.IsUnavailable(err) {
		t.Fatalf("Expected unavailable error, got %v", err)
	}

	// the lock must have been released
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Set("k", []byte("v"))
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Shard lock was not released after panic")
	}

	if v, ok, err := s.Get("k"); err != nil || !ok || string(v) != "v" {
		t.Errorf("Shard unusable after panic: value=%q ok=%v err=%v", v, ok, err)
	}
}

// TestIndependentShards holds one shard's lock and verifies operations on other shards still complete
func TestIndependentShards(t *testing.T) {
	const shards = 8
	s := NewShardedStore(shards)

	// find one key per shard
	keys := make([]string, shards)
	found := 0
	for i := 0; found < shards; i++ {
		key := fmt.Sprintf("key-%d", i)
		idx := s.ShardIndex(key)
		if keys[idx] == "" {
			keys[idx] = key
			found++
		}
	}

	// block shard 0
	s.shards[0].mu.Lock()
	defer s.shards[0].mu.Unlock()

	var wg sync.WaitGroup
	done := make(chan struct{})
	for i := 1; i < shards; i++ {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			if _, _, err := s.Set(key, []byte("v")); err != nil {
				t.Errorf("Set %s failed: %v", key, err)
			}
		}(keys[i])
	}
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Operations on unlocked shards were blocked")
	}
}

// TestConcurrentAccess runs mixed readers and writers (meant to be run with -race)
func TestConcurrentAccess(t *testing.T) {
	s := NewShardedStore(DefaultShardCount)

	const workers = 16
	const opsPerWorker = 500

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < opsPerWorker; i++ {
				key := fmt.Sprintf("key-%d", i%50)
				if w%2 == 0 {
					s.Set(key, []byte(fmt.Sprintf("w%d-%d", w, i)))
				} else {
					s.Get(key)
				}
			}
		}(w)
	}
	wg.Wait()

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Keys() != 50 {
		t.Errorf("Expected 50 keys, got %d", stats.Keys())
	}
}
