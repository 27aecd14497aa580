package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-exercise-tracker/internal/domain/entity"
)

func sample() []entity.Exercise {
	return []entity.Exercise{{ID: "1", Username: "alice", Description: "Run", Duration: 30,
		Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Category: entity.CategoryOther}}
}

func TestExerciseCache_RoundTrip(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewExerciseCache(db, time.Minute)
	ctx := context.Background()

	exs := sample()
	b, err := json.Marshal(exs)
	require.NoError(t, err)

	mock.ExpectGet("exercises:gen:alice").RedisNil()
	gen, err := c.Generation(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	mock.ExpectSet("exercises:list:alice:0", b, time.Minute).SetVal("OK")
	require.NoError(t, c.Set(ctx, "alice", gen, exs))

	mock.ExpectGet("exercises:list:alice:0").SetVal(string(b))
	got, ok, err := c.Get(ctx, "alice", gen)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, exs, got)

	mock.ExpectIncr("exercises:gen:alice").SetVal(1)
	require.NoError(t, c.Invalidate(ctx, "alice"))

	mock.ExpectGet("exercises:gen:alice").SetVal("1")
	gen, err = c.Generation(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)

	mock.ExpectGet("exercises:list:alice:1").RedisNil()
	_, ok, err = c.Get(ctx, "alice", gen)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExerciseCache_LateWriteIsNotServed(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewExerciseCache(db, time.Minute)
	ctx := context.Background()

	stale := sample()
	b, err := json.Marshal(stale)
	require.NoError(t, err)

	// reader A picks up generation 3 and queries the store
	mock.ExpectGet("exercises:gen:alice").SetVal("3")
	genA, err := c.Generation(ctx, "alice")
	require.NoError(t, err)

	// writer B deletes and invalidates before A caches its result
	mock.ExpectIncr("exercises:gen:alice").SetVal(4)
	require.NoError(t, c.Invalidate(ctx, "alice"))

	mock.ExpectSet("exercises:list:alice:3", b, time.Minute).SetVal("OK")
	require.NoError(t, c.Set(ctx, "alice", genA, stale))

	// the next reader sees generation 4 and misses
	mock.ExpectGet("exercises:gen:alice").SetVal("4")
	gen, err := c.Generation(ctx, "alice")
	require.NoError(t, err)
	mock.ExpectGet("exercises:list:alice:4").RedisNil()
	_, ok, err := c.Get(ctx, "alice", gen)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExerciseCache_Errors(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewExerciseCache(db, time.Minute)

	mock.ExpectGet("exercises:list:bob:0").SetErr(errors.New("down"))
	_, ok, err := c.Get(context.Background(), "bob", 0)
	assert.Error(t, err)
	assert.False(t, ok)

	mock.ExpectGet("exercises:gen:bob").SetErr(errors.New("down"))
	_, err = c.Generation(context.Background(), "bob")
	assert.Error(t, err)
}

func TestExerciseCache_NilIsNoop(t *testing.T) {
	c := NewExerciseCache(nil, time.Minute)
	assert.Nil(t, c)

	ctx := context.Background()
	gen, err := c.Generation(ctx, "alice")
	assert.NoError(t, err)
	assert.Zero(t, gen)
	_, ok, err := c.Get(ctx, "alice", gen)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Set(ctx, "alice", gen, nil))
	assert.NoError(t, c.Invalidate(ctx, "alice"))
}
