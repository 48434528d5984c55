package myredis

import (
	"context"
	"testing"
	"time"

	"github.com/nasa/vsm/domain"
	"github.com/nasa/vsm/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrefix = "vsm:node"

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, redis.UniversalClient) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewRedisUniversalClient("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func status(id string) domain.NodeStatus {
	return domain.NodeStatus{
		ID:             id,
		Hostname:       "host-" + id,
		Addresses:      []string{"10.0.0.1"},
		Port:           8080,
		Classification: domain.ClassificationActive,
		ClientCount:    "2",
		Cameras:        []domain.CameraStatus{{Camera: "Mast", Rendered: true}},
	}
}

func TestNewCache_Panics(t *testing.T) {
	_, client := setupTestRedis(t)
	assert.PanicsWithValue(t, "adapters.myredis.cache.go: client is required", func() {
		NewJSONCache[domain.NodeStatus](nil, testPrefix)
	})
	assert.PanicsWithValue(t, "adapters.myredis.cache.go: prefix is required", func() {
		NewJSONCache[domain.NodeStatus](client, "")
	})
}

func TestCache_WriteValue(t *testing.T) {
	ctx := context.Background()
	mr, client := setupTestRedis(t)
	cache := NewJSONCache[domain.NodeStatus](client, testPrefix)

	t.Run("success", func(t *testing.T) {
		require.NoError(t, cache.WriteValue(ctx, "render-1", status("render-1"), 60000))

		assert.True(t, mr.Exists(testPrefix+":render-1"))
		assert.Equal(t, time.Minute, mr.TTL(testPrefix+":render-1"))
		items, err := cache.ListAllValues(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, status("render-1"), items[0])
	})

	t.Run("expires_after_ttl", func(t *testing.T) {
		require.NoError(t, cache.WriteValue(ctx, "short", status("short"), 1000))
		mr.FastForward(2 * time.Second)
		assert.False(t, mr.Exists(testPrefix+":short"))
	})

	t.Run("when Redis write fails returns internal_server_error", func(t *testing.T) {
		closedClient, err := NewRedisUniversalClient("redis://" + mr.Addr())
		require.NoError(t, err)
		require.NoError(t, closedClient.Close())
		cacheClosed := NewJSONCache[domain.NodeStatus](closedClient, testPrefix)

		err = cacheClosed.WriteValue(ctx, "x", status("x"), 60000)
		require.Error(t, err)
		assert.True(t, service.IsInternalServerError(err))
	})
}

func TestCache_DeleteValue(t *testing.T) {
	ctx := context.Background()
	_, client := setupTestRedis(t)
	cache := NewJSONCache[domain.NodeStatus](client, testPrefix)
	require.NoError(t, cache.WriteValue(ctx, "render-del", status("render-del"), 60000))

	require.NoError(t, cache.DeleteValue(ctx, "render-del"))
	require.NoError(t, cache.DeleteValue(ctx, "never-written"))

	items, err := cache.ListAllValues(ctx)
	require.Error(t, err)
	assert.True(t, service.IsEntityNotFoundError(err))
	assert.Nil(t, items)
}

func TestCache_ListAllValues(t *testing.T) {
	ctx := context.Background()
	mr, client := setupTestRedis(t)
	cache := NewJSONCache[domain.NodeStatus](client, testPrefix)

	t.Run("empty cache returns entity not found", func(t *testing.T) {
		items, err := cache.ListAllValues(ctx)
		require.Error(t, err)
		assert.True(t, service.IsEntityNotFoundError(err))
		assert.Nil(t, items)
	})

	t.Run("returns values under the prefix only", func(t *testing.T) {
		for _, id := range []string{"a", "b", "c"} {
			require.NoError(t, cache.WriteValue(ctx, id, status(id), 60000))
		}
		require.NoError(t, mr.Set("other:a", "{}"))

		items, err := cache.ListAllValues(ctx)
		require.NoError(t, err)
		ids := make([]string, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ID)
		}
		assert.ElementsMatch(t, []string{"a", "b", "c"}, ids)
	})

	t.Run("invalid JSON in redis is skipped", func(t *testing.T) {
		mr.FlushAll()
		require.NoError(t, mr.Set(testPrefix+":badjson", "invalid json"))

		items, err := cache.ListAllValues(ctx)
		require.Error(t, err)
		assert.True(t, service.IsEntityNotFoundError(err))
		assert.Nil(t, items)
	})
}

func TestNewRedisUniversalClient(t *testing.T) {
	t.Run("bad url", func(t *testing.T) {
		_, err := NewRedisUniversalClient("http://localhost:6379")
		require.Error(t, err)
	})
	t.Run("options applied", func(t *testing.T) {
		mr, _ := setupTestRedis(t)
		client, err := NewRedisUniversalClient("redis://"+mr.Addr()+"/2", WithTimeout(time.Second))
		require.NoError(t, err)
		defer client.Close()
		require.NoError(t, client.Ping(context.Background()).Err())
	})
}
