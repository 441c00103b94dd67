package gateway

import (
	"encoding/json"
	"sync"
)

// cache holds query results keyed by the encoded request
type cache struct {
	sync.RWMutex
	entries map[string]json.RawMessage
}

func newCache() *cache {
	return &cache{entries: map[string]json.RawMessage{}}
}

func (c *cache) get(key string) (json.RawMessage, bool) {
	c.RLock()
	defer c.RUnlock()
	data, ok := c.entries[key]
	return data, ok
}

func (c *cache) put(key string, data json.RawMessage) {
	c.Lock()
	defer c.Unlock()
	c.entries[key] = data
}

func (c *cache) reset() {
	c.Lock()
	defer c.Unlock()
	c.entries = map[string]json.RawMessage{}
}
