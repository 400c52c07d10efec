package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful when several projects or users share one cache backend
// and need separate namespaces.
//
// Example usage:
//
//	// Per-project keys on a shared Redis
//	projKeyer := NewScopedKeyer(NewDefaultKeyer(), "proj:website:")
//
//	// Global keys
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DocumentKey generates a prefixed key for document caching.
func (k *ScopedKeyer) DocumentKey(docHash string) string {
	return k.prefix + k.inner.DocumentKey(docHash)
}

// ResultKey generates a prefixed key for alignment-result caching.
func (k *ScopedKeyer) ResultKey(docHash, optsHash string) string {
	return k.prefix + k.inner.ResultKey(docHash, optsHash)
}
