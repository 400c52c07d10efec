// Package cache provides pluggable result caching for alignment runs.
//
// Aligning a document is deterministic: the same document bytes and the
// same option set always produce the same result. That makes results
// safe to cache under a key derived from both hashes. Backends:
//
//   - [FileCache]: directory-backed, for CLI usage
//   - [MemoryCache]: in-process, for tests and single-shot runs
//   - [RedisCache]: shared, for multi-instance service deployments
//   - [NullCache]: disabled caching
//
// Keys are produced by a [Keyer]; wrap one in a [ScopedKeyer] to
// namespace entries per tenant or per deployment.
package cache

import (
	"context"
	"time"
)

// Cache is the interface for cache backends.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a
// miss; errors are reserved for backend failures. A ttl of zero on Set
// stores the entry without expiration.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer generates cache keys for the alignment domain.
type Keyer interface {
	// DocumentKey generates a key for a decoded document, from the hash
	// of its serialized form.
	DocumentKey(docHash string) string

	// ResultKey generates a key for an alignment result, from the
	// document hash and the hash of the option set that produced it.
	ResultKey(docHash, optsHash string) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// DocumentKey generates a key for document caching.
func (k *DefaultKeyer) DocumentKey(docHash string) string {
	return "doc:" + docHash
}

// ResultKey generates a key for alignment-result caching.
func (k *DefaultKeyer) ResultKey(docHash, optsHash string) string {
	return hashKey("result", docHash, optsHash)
}
