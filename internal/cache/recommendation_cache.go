// Package cache provides the bounded single-flight memo for recommendation
// results. It is the only structure in the request path with shared mutable
// state.
package cache

import (
	"sync"
	"time"

	"github.com/samikd35/RebootEarth-Dana/internal/models"
)

// entry is one cached recommendation in the LRU list. head.next is the most
// recently used entry, tail.prev the least recently used.
type entry struct {
	key        string
	value      models.RecommendationResponse
	insertedAt time.Time
	prev, next *entry
}

// call is one in-flight computation. Waiters block on done and then read
// value/err.
type call struct {
	done  chan struct{}
	value models.RecommendationResponse
	err   error
}

// RecommendationCache is a bounded-capacity LRU with single-flight
// computation: for a given fingerprint at most one compute callback runs at
// a time, and concurrent callers for the same fingerprint share its result.
// The compute callback never runs while the index lock is held, so unrelated
// fingerprints are never blocked by a slow computation.
type RecommendationCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration // 0 disables expiry
	items    map[string]*entry
	inflight map[string]*call
	head     *entry
	tail     *entry
}

// DefaultCapacity is used when the configured capacity is not positive.
const DefaultCapacity = 1000

// New creates a cache with the given capacity. A ttl of 0 keeps entries
// until evicted by capacity pressure.
func New(capacity int, ttl time.Duration) *RecommendationCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &RecommendationCache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry, capacity),
		inflight: make(map[string]*call),
		head:     &entry{},
		tail:     &entry{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// GetOrCompute returns the cached response for key, or runs compute exactly
// once to produce it. The returned bool reports whether the response was
// served without running compute in this call (a cache hit, including
// joining another caller's in-flight computation). Compute errors are not
// cached.
func (c *RecommendationCache) GetOrCompute(key string, compute func() (models.RecommendationResponse, error)) (models.RecommendationResponse, bool, error) {
	c.mu.Lock()

	if e, ok := c.items[key]; ok {
		if c.expired(e) {
			c.removeEntry(e)
		} else {
			c.moveToFront(e)
			value := e.value
			c.mu.Unlock()
			return value, true, nil
		}
	}

	if inflight, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		<-inflight.done
		return inflight.value, inflight.err == nil, inflight.err
	}

	// This caller leads the computation for the key.
	leader := &call{done: make(chan struct{})}
	c.inflight[key] = leader
	c.mu.Unlock()

	value, err := compute()

	c.mu.Lock()
	delete(c.inflight, key)
	if err == nil {
		c.insert(key, value)
	}
	c.mu.Unlock()

	leader.value = value
	leader.err = err
	close(leader.done)

	return value, false, err
}

// Get returns the cached response for key without computing, touching
// recency on a hit.
func (c *RecommendationCache) Get(key string) (models.RecommendationResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return models.RecommendationResponse{}, false
	}
	if c.expired(e) {
		c.removeEntry(e)
		return models.RecommendationResponse{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

// Len returns the number of live entries.
func (c *RecommendationCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Capacity returns the configured maximum entry count.
func (c *RecommendationCache) Capacity() int {
	return c.capacity
}

// insert adds or replaces an entry, evicting the least recently used entry
// when at capacity. Caller holds the lock.
func (c *RecommendationCache) insert(key string, value models.RecommendationResponse) {
	if e, ok := c.items[key]; ok {
		e.value = value
		e.insertedAt = time.Now()
		c.moveToFront(e)
		return
	}

	if len(c.items) >= c.capacity {
		if lru := c.tail.prev; lru != c.head {
			c.removeEntry(lru)
		}
	}

	e := &entry{key: key, value: value, insertedAt: time.Now()}
	c.items[key] = e
	c.pushFront(e)
}

func (c *RecommendationCache) expired(e *entry) bool {
	return c.ttl > 0 && time.Since(e.insertedAt) > c.ttl
}

func (c *RecommendationCache) removeEntry(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	delete(c.items, e.key)
}

func (c *RecommendationCache) pushFront(e *entry) {
	e.next = c.head.next
	e.prev = c.head
	c.head.next.prev = e
	c.head.next = e
}

func (c *RecommendationCache) moveToFront(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	c.pushFront(e)
}
