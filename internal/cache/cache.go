// Package cache provides a small generic LRU with TTL, used to keep quiz
// question sets hot between Present calls.
package cache

// Cache is a generic read-through cache.
type Cache[T any] interface {
	// Get retrieves a value from the cache.
	Get(key string) (T, bool)

	// Set stores a value in the cache.
	Set(key string, data T)

	// Delete removes a key from the cache.
	Delete(key string)

	// Size returns the current number of items in the cache.
	Size() int
}
