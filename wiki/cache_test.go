package wiki

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	cache, err := NewCache(filepath.Join(t.TempDir(), "pages.db"))
	require.NoError(t, err)
	require.NoError(t, cache.Open())
	defer cache.Close()

	_, have, err := cache.Get("Ada Lovelace")
	require.NoError(t, err)
	assert.False(t, have)

	require.NoError(t, cache.Put("Ada Lovelace", "<html>ada</html>"))

	page, have, err := cache.Get("Ada Lovelace")
	require.NoError(t, err)
	require.True(t, have)
	assert.Equal(t, "<html>ada</html>", page)
}

func TestCacheSweep(t *testing.T) {
	cache, err := NewCache(filepath.Join(t.TempDir(), "pages.db"))
	require.NoError(t, err)
	require.NoError(t, cache.Open())
	defer cache.Close()

	require.NoError(t, cache.Put("Ada Lovelace", "<html>ada</html>"))
	require.NoError(t, cache.Put("Mercury (planet)", "<html>mercury</html>"))

	// Nothing is older than an hour yet.
	removed, err := cache.Sweep(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	// Everything is older than zero.
	time.Sleep(10 * time.Millisecond)
	removed, err = cache.Sweep(0)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, have, err := cache.Get("Ada Lovelace")
	require.NoError(t, err)
	assert.False(t, have)
}
