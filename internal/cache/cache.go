// Package cache holds recently served aggregation responses. Entries expire
// after a TTL so stale news never outlives one refresh window.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"storyfuse.dev/storyfuse/internal/pipeline"
)

// ResponseCache is a bounded TTL cache keyed by request parameters.
type ResponseCache struct {
	lru *expirable.LRU[string, pipeline.Response]
}

// New builds a cache holding at most size responses for at most ttl each.
func New(size int, ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		lru: expirable.NewLRU[string, pipeline.Response](size, nil, ttl),
	}
}

func (c *ResponseCache) Get(key string) (pipeline.Response, bool) {
	return c.lru.Get(key)
}

func (c *ResponseCache) Add(key string, resp pipeline.Response) {
	c.lru.Add(key, resp)
}

var _ pipeline.ResponseCache = (*ResponseCache)(nil)
