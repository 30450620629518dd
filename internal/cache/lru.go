package cache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRU keeps at most size entries in memory and evicts the least recently used
type LRU struct {
	entries *lru.Cache[string, []byte]
}

// NewLRU creates an in-memory cache holding up to size entries
func NewLRU(size int) (*LRU, error) {
	entries, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("cache: lru: %w", err)
	}
	return &LRU{entries: entries}, nil
}

func (c *LRU) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, ok := c.entries.Get(key)
	return value, ok, nil
}

func (c *LRU) Set(_ context.Context, key string, value []byte) error {
	c.entries.Add(key, value)
	return nil
}

// Len returns the number of cached entries
func (c *LRU) Len() int {
	return c.entries.Len()
}
