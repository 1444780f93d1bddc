package cache

import (
	"context"
	"testing"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrkeeper/internal/app/server/config"
)

func TestNewClient_Disabled(t *testing.T) {
	client, err := NewClient(context.Background(), config.Redis{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewDestinationCache(t *testing.T) {
	assert.Nil(t, NewDestinationCache(nil, time.Minute))

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	c := NewDestinationCache(client, 0)
	require.NotNil(t, c)
	assert.Equal(t, DefaultTTL, c.ttl)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "qrkeeper:dest:abc123", key("abc123"))
}

func TestDestinationCache_Unreachable(t *testing.T) {
	// порт 0 недоступен, ошибка должна прийти обернутой, а не паникой
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	defer client.Close()

	c := NewDestinationCache(client, time.Minute)
	_, ok, err := c.Get(context.Background(), "abc")
	assert.False(t, ok)
	assert.ErrorContains(t, err, "cache get abc")

	assert.ErrorContains(t, c.Ping(context.Background()), "ping redis")
}
