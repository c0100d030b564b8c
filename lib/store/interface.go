package store

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IStore is the interface for interacting with a key–value store.
// Every operation returns an error so that callers can decide how to react
// to an unavailable store instead of the store taking the process down.
type IStore interface {
	// Get returns a copy of the value for a key. The boolean return value indicates whether a value for the key was found.
	Get(key string) (value []byte, loaded bool, err error)
	// Set inserts or overwrites a key–value pair. If the key already held a value, that value is returned and loaded is true.
	Set(key string, value []byte) (prev []byte, loaded bool, err error)
	// Stats returns the number of keys and bytes per shard.
	// It is not guaranteed that the numbers are consistent across shards!
	Stats() (stats Stats, err error)
	// Close releases the store. All following operations fail with RetCStoreUnavailable.
	Close() error
}

// Stats holds size information about a store
type Stats struct {
	ShardKeys  []int // Number of keys per shard
	ShardBytes []int // Sum of value sizes per shard
}

// Keys returns the total number of keys
func (s Stats) Keys() int {
	total := 0
	for _, n := range s.ShardKeys {
		total += n
	}
	return total
}

// Bytes returns the total size of all values
func (s Stats) Bytes() int {
	total := 0
	for _, n := range s.ShardBytes {
		total += n
	}
	return total
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("KVStoreError (code %s): %s", e.Code, e.Msg)
}

// NewError creates a new KVStoreError with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// IsUnavailable reports whether err is a store error with code RetCStoreUnavailable
func IsUnavailable(err error) bool {
	var storeErr *Error
	return errors.As(err, &storeErr) && storeErr.Code == RetCStoreUnavailable
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess          RetCode = iota // 0: Command executed successfully.
	RetCInternalError                   // 1: Command failed due to an internal error.
	RetCInvalidOperation                // 2: Invalid operation.
	RetCStoreUnavailable                // 3: The store (or one of its shards) cannot serve requests.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCInternalError:
		return "InternalError"
	case RetCInvalidOperation:
		return "InvalidOperation"
	case RetCStoreUnavailable:
		return "StoreUnavailable"
	default:
		return "Unknown"
	}
}
