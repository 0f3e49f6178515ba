package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "github.com/hejeong/todolist-api/internal/domain"
)

func newTestCache(t *testing.T) (*TodoCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewTodoCache(rdb, time.Minute), mr
}

func TestTodoCache_MissReturnsNil(t *testing.T) {
	c, _ := newTestCache(t)

	list, err := c.GetList(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, list)
}

func TestTodoCache_SetGetRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	completed := time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)
	in := []dom.Todo{
		{ID: 1, Title: "first", Memo: "memo", Created: time.Now().UTC().Truncate(time.Second), OwnerID: 7},
		{ID: 2, Title: "second", Created: time.Now().UTC().Truncate(time.Second), DateCompleted: &completed, OwnerID: 7},
	}
	require.NoError(t, c.SetList(ctx, 7, in))

	out, err := c.GetList(ctx, 7)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "first", out[0].Title)
	require.NotNil(t, out[1].DateCompleted)
	assert.True(t, out[1].DateCompleted.Equal(completed))
}

func TestTodoCache_EmptyListIsAHit(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetList(ctx, 1, nil))

	// A cached empty list must be distinguishable from a miss.
	list, err := c.GetList(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestTodoCache_InvalidateIsPerOwner(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetList(ctx, 1, []dom.Todo{{ID: 1, Title: "a", OwnerID: 1}}))
	require.NoError(t, c.SetList(ctx, 2, []dom.Todo{{ID: 2, Title: "b", OwnerID: 2}}))

	require.NoError(t, c.Invalidate(ctx, 1))

	list, err := c.GetList(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, list)

	list, err = c.GetList(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestTodoCache_TTLExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetList(ctx, 1, []dom.Todo{{ID: 1, Title: "a", OwnerID: 1}}))
	mr.FastForward(2 * time.Minute)

	list, err := c.GetList(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, list)
}
