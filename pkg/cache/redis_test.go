package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	c, err := NewRedisClient(&Config{Addr: srv.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, srv
}

func TestGetSet(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)

	srv.FastForward(2 * time.Minute)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestIncr(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	n, err := c.Incr(ctx, "gen")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = c.Incr(ctx, "gen")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	v, err := c.Get(ctx, "gen")
	require.NoError(t, err)
	assert.Equal(t, "2", string(v))
}

func TestDeletePatternWalksEveryPage(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	// More keys than the SCAN count per call.
	for i := 0; i < 250; i++ {
		require.NoError(t, srv.Set(fmt.Sprintf("products:list:%d", i), "x"))
	}
	require.NoError(t, srv.Set("products:gen", "3"))

	require.NoError(t, c.DeletePattern(ctx, "products:list:*"))

	assert.Equal(t, []string{"products:gen"}, srv.Keys())
}

func TestNewRedisClientFailsWithoutServer(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	_, err := NewRedisClient(&Config{Addr: addr})
	assert.Error(t, err)
}
