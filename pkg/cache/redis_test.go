package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a test Redis client using miniredis
func setupTestRedis(t *testing.T) (*Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := &Client{
		Redis: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	}

	return client, mr
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer client.Close()

	_, err = NewClient(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestClient_SetGet(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "test:key1", "value1", time.Hour))

	val, err := client.Get(ctx, "test:key1")
	require.NoError(t, err)
	assert.Equal(t, "value1", val)

	_, err = client.Get(ctx, "test:missing")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestClient_JSON(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()
	type payload struct {
		Token string `json:"token"`
	}

	require.NoError(t, client.SetJSON(ctx, "test:json", payload{Token: "abc"}, 0))

	var got payload
	require.NoError(t, client.GetJSON(ctx, "test:json", &got))
	assert.Equal(t, "abc", got.Token)

	require.NoError(t, client.Set(ctx, "test:broken", "{", 0))
	assert.Error(t, client.GetJSON(ctx, "test:broken", &got))
}

func TestClient_DeleteExistsTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "test:key", "v", time.Hour))

	exists, err := client.Exists(ctx, "test:key")
	require.NoError(t, err)
	assert.True(t, exists)

	ttl, err := client.TTL(ctx, "test:key")
	require.NoError(t, err)
	assert.Greater(t, ttl, 59*time.Minute)

	require.NoError(t, client.Delete(ctx, "test:key"))
	exists, err = client.Exists(ctx, "test:key")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestClient_Expiration(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, client.Set(ctx, "test:short", "v", time.Second))

	mr.FastForward(2 * time.Second)

	_, err := client.Get(ctx, "test:short")
	assert.ErrorIs(t, err, ErrMiss)
}
