package threads

import (
	"sync"

	"github.com/disgoorg/snowflake/v2"
)

// ForumCache remembers whether a channel is a forum. Entries are written
// whole under the lock, so concurrent readers never observe a partial pair.
// Channel types are treated as immutable for the process lifetime; entries
// are never invalidated.
type ForumCache struct {
	mu      sync.RWMutex
	entries map[snowflake.ID]bool
}

func NewForumCache() *ForumCache {
	return &ForumCache{entries: make(map[snowflake.ID]bool)}
}

func (c *ForumCache) Get(channelID snowflake.ID) (isForum bool, ok bool) {
	c.mu.RLock()
	isForum, ok = c.entries[channelID]
	c.mu.RUnlock()
	return isForum, ok
}

func (c *ForumCache) Put(channelID snowflake.ID, isForum bool) {
	c.mu.Lock()
	c.entries[channelID] = isForum
	c.mu.Unlock()
}
