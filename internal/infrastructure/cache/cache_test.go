package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGet(t *testing.T) {
	c := New(time.Minute)

	c.Set("status", []string{"Novo"}, 0)
	v, ok := c.Get("status")
	assert.True(t, ok)
	assert.Equal(t, []string{"Novo"}, v)

	_, ok = c.Get("temas")
	assert.False(t, ok)
}

func TestCacheExpiration(t *testing.T) {
	c := New(time.Minute)

	c.Set("temas", 1, time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	// Get ignora itens vencidos mesmo antes da limpeza periódica
	_, ok := c.Get("temas")
	assert.False(t, ok)
}

func TestCacheDefaultExpiration(t *testing.T) {
	c := New(time.Millisecond)

	c.Set("status", 1, 0)
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get("status")
	assert.False(t, ok)
}
