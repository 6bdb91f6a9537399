package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache é um cache em memória com expiração, usado para leituras de catálogo
// (valores de status, temas) que mudam raramente.
type Cache struct {
	items *gocache.Cache
}

// New creates a new cache instance
func New(defaultExpiration time.Duration) *Cache {
	return &Cache{
		items: gocache.New(defaultExpiration, 2*defaultExpiration),
	}
}

// Set adds an item to the cache with the given expiration duration
func (c *Cache) Set(key string, value interface{}, duration time.Duration) {
	c.items.Set(key, value, duration)
}

// Get retrieves an item from the cache
// Returns the item and a boolean indicating if the item was found
func (c *Cache) Get(key string) (interface{}, bool) {
	return c.items.Get(key)
}
