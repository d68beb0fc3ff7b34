package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a simple in-memory key-value store with expiration.
// It backs the caches when Redis is disabled.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*memoryItem
	now   func() time.Time
	done  chan struct{}
	once  sync.Once
}

type memoryItem struct {
	value      string
	expireTime time.Time
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		items: make(map[string]*memoryItem),
		now:   time.Now,
		done:  make(chan struct{}),
	}

	// Start cleanup goroutine to remove expired items
	go store.cleanupExpired()

	return store
}

// Close stops the cleanup goroutine
func (ms *MemoryStore) Close() {
	ms.once.Do(func() { close(ms.done) })
}

// Get retrieves a value by key; ok is false if not found or expired
func (ms *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	item, exists := ms.items[key]
	if !exists || ms.expired(item) {
		return "", false, nil
	}
	return item.value, true, nil
}

// Set stores a key-value pair with expiration. A zero ttl never expires.
func (ms *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.items[key] = ms.item(value, ttl)
	return nil
}

// SetNX stores value only when key is absent or expired
func (ms *MemoryStore) SetNX(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if item, exists := ms.items[key]; exists && !ms.expired(item) {
		return false, nil
	}
	ms.items[key] = ms.item(value, ttl)
	return true, nil
}

// Del removes a key
func (ms *MemoryStore) Del(_ context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, key)
	return nil
}

func (ms *MemoryStore) item(value string, ttl time.Duration) *memoryItem {
	it := &memoryItem{value: value}
	if ttl > 0 {
		it.expireTime = ms.now().Add(ttl)
	}
	return it
}

func (ms *MemoryStore) expired(item *memoryItem) bool {
	return !item.expireTime.IsZero() && ms.now().After(item.expireTime)
}

// cleanupExpired periodically removes expired items
func (ms *MemoryStore) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ms.done:
			return
		case <-ticker.C:
			ms.mu.Lock()
			for key, item := range ms.items {
				if ms.expired(item) {
					delete(ms.items, key)
				}
			}
			ms.mu.Unlock()
		}
	}
}
