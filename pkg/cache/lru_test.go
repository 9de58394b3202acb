package cache_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/cache"
)

func TestLRU_Basic(t *testing.T) {
	t.Run("put and get", func(t *testing.T) {
		c := cache.New[string, int](3)

		c.Put("a", 1)
		c.Put("b", 2)

		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, val)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("missing key", func(t *testing.T) {
		c := cache.New[string, int](3)

		val, ok := c.Get("missing")
		assert.False(t, ok)
		assert.Zero(t, val)
	})

	t.Run("update existing", func(t *testing.T) {
		c := cache.New[string, int](3)

		assert.False(t, c.Put("a", 1))
		assert.True(t, c.Put("a", 2))

		val, _ := c.Get("a")
		assert.Equal(t, 2, val)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("zero values are cached", func(t *testing.T) {
		c := cache.New[string, *string](2)
		c.Put("nil", nil)

		val, ok := c.Get("nil")
		assert.True(t, ok)
		assert.Nil(t, val)
	})
}

func TestLRU_Eviction(t *testing.T) {
	t.Run("evicts least recently used", func(t *testing.T) {
		c := cache.New[string, int](2)
		c.Put("a", 1)
		c.Put("b", 2)
		c.Get("a")
		c.Put("c", 3)

		_, ok := c.Peek("b")
		assert.False(t, ok, "b should have been evicted")
		_, ok = c.Peek("a")
		assert.True(t, ok)
		assert.Equal(t, uint64(1), c.Stats().Evictions)
	})

	t.Run("callback sees evicted entries", func(t *testing.T) {
		c := cache.New[string, int](1)
		var evicted []string
		c.OnEvict(func(k string, _ int) { evicted = append(evicted, k) })

		c.Put("a", 1)
		c.Put("b", 2)
		c.Remove("b")

		assert.Equal(t, []string{"a", "b"}, evicted)
	})
}

func TestLRU_Clear(t *testing.T) {
	c := cache.New[int, int](10)
	for i := range 5 {
		c.Put(i, i)
	}

	assert.Equal(t, 5, c.Clear())
	assert.Equal(t, 0, c.Len())

	_, ok := c.Get(1)
	assert.False(t, ok)
}

func TestLRU_Stats(t *testing.T) {
	c := cache.New[string, int](4)
	c.Put("a", 1)

	c.Get("a")
	c.Get("a")
	c.Get("b")
	c.Peek("a")

	stats := c.Stats()
	assert.Equal(t, uint64(2), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, 1, stats.Len)
}

func TestLRU_InvalidCapacity(t *testing.T) {
	require.Panics(t, func() { cache.New[string, int](0) })
	require.Panics(t, func() { cache.New[string, int](-1) })
}

func TestLRU_Concurrent(t *testing.T) {
	c := cache.New[string, int](50)
	var wg sync.WaitGroup

	for i := range 20 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := range 100 {
				key := fmt.Sprintf("k%d", (n*j)%80)
				c.Put(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 50)
}
