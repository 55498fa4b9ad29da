/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package cache provides an in-memory TTL cache with LRU eviction, used to
// front slower token store backends.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/google/gdata-go-client/internal/system/log"
)

const loggerComponentName = "Cache"

const (
	// defaultCacheTTL represents the default TTL for cache entries in seconds.
	defaultCacheTTL = 3600
	// defaultCacheSize represents the default size for the caches.
	defaultCacheSize = 1000
)

// CacheInterface defines the common interface for cache operations.
type CacheInterface[T any] interface {
	GetName() string
	Set(key CacheKey, value T)
	Get(key CacheKey) (T, bool)
	Delete(key CacheKey)
	Clear()
	IsEnabled() bool
	GetStats() CacheStat
	CleanupExpired()
}

// Cache implements CacheInterface as an in-memory LRU cache with per-entry TTL.
type Cache[T any] struct {
	enabled     bool
	name        string
	cache       map[CacheKey]*entryWithOrder[T]
	accessOrder *list.List
	mu          sync.Mutex
	size        int
	ttl         time.Duration
	hitCount    int64
	missCount   int64
	evictCount  int64
}

type entryWithOrder[T any] struct {
	cacheEntry[T]
	listElement *list.Element
}

// NewCache creates a new cache instance with the given configuration. A
// disabled cache is a valid no-op implementation.
func NewCache[T any](name string, config Config) CacheInterface[T] {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.String("cacheName", name))

	if config.Disabled {
		logger.Debug("Caching is disabled, returning empty cache")
		return &Cache[T]{
			enabled: false,
			name:    name,
		}
	}

	size := config.Size
	if size <= 0 {
		size = defaultCacheSize
	}
	ttl := config.TTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	logger.Debug("Initializing the cache", log.Int("size", size), log.Int("ttl", ttl))

	return &Cache[T]{
		enabled:     true,
		name:        name,
		cache:       make(map[CacheKey]*entryWithOrder[T]),
		accessOrder: list.New(),
		size:        size,
		ttl:         time.Duration(ttl) * time.Second,
	}
}

// GetName returns the name of the cache.
func (c *Cache[T]) GetName() string {
	return c.name
}

// IsEnabled returns whether the cache is enabled.
func (c *Cache[T]) IsEnabled() bool {
	return c.enabled
}

// Set adds or updates an entry in the cache.
func (c *Cache[T]) Set(key CacheKey, value T) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	expiryTime := time.Now().Add(c.ttl)
	if existing, exists := c.cache[key]; exists {
		existing.value = value
		existing.expiryTime = expiryTime
		c.accessOrder.MoveToFront(existing.listElement)
		return
	}

	c.cache[key] = &entryWithOrder[T]{
		cacheEntry:  cacheEntry[T]{value: value, expiryTime: expiryTime},
		listElement: c.accessOrder.PushFront(key),
	}
	if len(c.cache) > c.size {
		c.evictOldest()
	}
}

// Get retrieves a value from the cache.
func (c *Cache[T]) Get(key CacheKey) (T, bool) {
	var zero T
	if !c.enabled {
		return zero, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.cache[key]
	if !exists {
		c.missCount++
		return zero, false
	}
	if time.Now().After(entry.expiryTime) {
		c.deleteEntry(key, entry)
		c.missCount++
		return zero, false
	}

	c.accessOrder.MoveToFront(entry.listElement)
	c.hitCount++
	return entry.value, true
}

// Delete removes an entry from the cache.
func (c *Cache[T]) Delete(key CacheKey) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, exists := c.cache[key]; exists {
		c.deleteEntry(key, entry)
	}
}

// Clear removes all entries in the cache.
func (c *Cache[T]) Clear() {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache = make(map[CacheKey]*entryWithOrder[T])
	c.accessOrder.Init()
	c.hitCount = 0
	c.missCount = 0
	c.evictCount = 0
}

// GetStats returns cache statistics.
func (c *Cache[T]) GetStats() CacheStat {
	if !c.enabled {
		return CacheStat{Enabled: false}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	totalOps := c.hitCount + c.missCount
	var hitRate float64
	if totalOps > 0 {
		hitRate = float64(c.hitCount) / float64(totalOps)
	}
	return CacheStat{
		Enabled:    true,
		Size:       len(c.cache),
		MaxSize:    c.size,
		HitCount:   c.hitCount,
		MissCount:  c.missCount,
		HitRate:    hitRate,
		EvictCount: c.evictCount,
	}
}

// CleanupExpired removes all expired entries from the cache.
func (c *Cache[T]) CleanupExpired() {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, entry := range c.cache {
		if now.After(entry.expiryTime) {
			c.deleteEntry(key, entry)
		}
	}
}

// evictOldest removes the least recently used entry.
func (c *Cache[T]) evictOldest() {
	oldest := c.accessOrder.Back()
	if oldest == nil {
		return
	}
	key := oldest.Value.(CacheKey)
	if entry, exists := c.cache[key]; exists {
		c.deleteEntry(key, entry)
		c.evictCount++
	}
}

// deleteEntry removes an entry from both the map and the access order list.
func (c *Cache[T]) deleteEntry(key CacheKey, entry *entryWithOrder[T]) {
	delete(c.cache, key)
	c.accessOrder.Remove(entry.listElement)
}
