// Package cache stores calculation results keyed by request id so repeated
// requests are answered without recalculating.
package cache

import "context"

// Cache is a byte-oriented key/value store
type Cache interface {
	// Get returns the stored value and whether the key was present
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}
