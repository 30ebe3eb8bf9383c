package messages

import (
	"context"
	"log/slog"
	"time"

	"chatdesk/logging"
	"chatdesk/models"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CachedLookup memoizes hits of another Lookup. Misses and errors are not
// cached, so a message saved later is found on the next call.
type CachedLookup struct {
	next   Lookup
	cache  *expirable.LRU[string, models.Message]
	logger *slog.Logger
}

// NewCachedLookup wraps next with an LRU of size entries that expire after ttl
func NewCachedLookup(next Lookup, size int, ttl time.Duration, logger *slog.Logger) *CachedLookup {
	if size <= 0 {
		size = 1
	}
	return &CachedLookup{
		next:   next,
		cache:  expirable.NewLRU[string, models.Message](size, nil, ttl),
		logger: logging.Component(logging.OrNop(logger), "messages"),
	}
}

// GetMessageByID implements Lookup
func (c *CachedLookup) GetMessageByID(ctx context.Context, id string) (*models.Message, error) {
	if msg, ok := c.cache.Get(id); ok {
		c.logger.Debug("message cache hit", "message_id", id)
		return &msg, nil
	}

	msg, err := c.next.GetMessageByID(ctx, id)
	if err != nil || msg == nil {
		return msg, err
	}

	c.cache.Add(id, *msg)
	return msg, nil
}

// Invalidate drops id from the cache
func (c *CachedLookup) Invalidate(id string) {
	c.cache.Remove(id)
}

// Len returns the number of cached messages
func (c *CachedLookup) Len() int {
	return c.cache.Len()
}
