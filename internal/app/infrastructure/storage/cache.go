package storage

import (
	"encoding/json"
	"os"
	"time"

	"github.com/maypok86/otter/v2"
)

// Cache is a concurrency-safe keyed cache backing the dispatcher's session
// sets (known users, channel viewers). TTL of zero keeps entries for the
// process lifetime; persist mirrors the contents to a JSON file on change.
type Cache[T any] struct {
	outer *otter.Cache[string, T]

	persist  bool
	filePath string
}

func NewCache[T any](capacity int, ttl time.Duration, persist bool, filePath string) *Cache[T] {
	opts := &otter.Options[string, T]{
		InitialCapacity: capacity,
	}
	if ttl > 0 {
		opts.ExpiryCalculator = otter.ExpiryAccessing[string, T](ttl)
	}

	c := &Cache[T]{
		outer:    otter.Must(opts),
		persist:  persist,
		filePath: filePath,
	}

	if c.persist && c.filePath != "" {
		_ = c.loadFromDisk()
	}

	return c
}

func (c *Cache[T]) Set(key string, val T) {
	c.outer.Set(key, val)
	if c.persist {
		c.FlushToDisk()
	}
}

func (c *Cache[T]) Get(key string) (T, bool) {
	return c.outer.GetIfPresent(key)
}

func (c *Cache[T]) Has(key string) bool {
	_, ok := c.outer.GetIfPresent(key)
	return ok
}

func (c *Cache[T]) Delete(key string) {
	c.outer.Invalidate(key)
	if c.persist {
		c.FlushToDisk()
	}
}

func (c *Cache[T]) Keys() []string {
	var keys []string
	for k := range c.outer.All() {
		keys = append(keys, k)
	}
	return keys
}

func (c *Cache[T]) Len() int {
	return c.outer.EstimatedSize()
}

func (c *Cache[T]) FlushToDisk() {
	if !c.persist || c.filePath == "" {
		return
	}

	cacheData := make(map[string]T)
	for k, v := range c.outer.All() {
		cacheData[k] = v
	}

	data, err := json.MarshalIndent(cacheData, "", "  ")
	if err != nil {
		return
	}

	_ = os.WriteFile(c.filePath, data, 0600)
}

func (c *Cache[T]) loadFromDisk() error {
	data, err := os.ReadFile(c.filePath)
	if err != nil {
		return err
	}

	var items map[string]T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	for k, v := range items {
		c.outer.Set(k, v)
	}
	return nil
}
