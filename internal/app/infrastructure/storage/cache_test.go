package storage_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat4g/internal/app/infrastructure/storage"
)

func TestCacheSetGet(t *testing.T) {
	t.Parallel()

	c := storage.NewCache[time.Time](16, 0, false, "")

	now := time.Now()
	c.Set("alice", now)

	got, ok := c.Get("alice")
	require.True(t, ok)
	assert.Equal(t, now, got)
	assert.True(t, c.Has("alice"))
	assert.False(t, c.Has("bob"))

	c.Delete("alice")
	assert.False(t, c.Has("alice"))
}

func TestCachePersistRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "users.json")

	c := storage.NewCache[int](16, 0, true, path)
	c.Set("alice", 1)
	c.Set("bob", 2)

	reloaded := storage.NewCache[int](16, 0, true, path)
	got, ok := reloaded.Get("alice")
	require.True(t, ok)
	assert.Equal(t, 1, got)
	assert.True(t, reloaded.Has("bob"))
}

func TestCacheKeys(t *testing.T) {
	t.Parallel()

	c := storage.NewCache[struct{}](16, 0, false, "")
	c.Set("alice", struct{}{})
	c.Set("bob", struct{}{})

	assert.ElementsMatch(t, []string{"alice", "bob"}, c.Keys())
}
