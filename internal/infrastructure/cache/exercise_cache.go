package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-exercise-tracker/internal/domain/entity"
	"github.com/oksasatya/go-exercise-tracker/pkg/helpers"
)

// ExerciseCache keeps each user's exercise list as a JSON blob in redis.
// A nil *ExerciseCache is valid and caches nothing.
//
// Lists are stored under the owner's current generation. Invalidate bumps the
// generation, so a list read from the store before a mutation and written
// after it lands under a key nobody reads any more.
type ExerciseCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewExerciseCache(rdb *redis.Client, ttl time.Duration) *ExerciseCache {
	if rdb == nil {
		return nil
	}
	return &ExerciseCache{rdb: rdb, ttl: ttl}
}

func genKey(owner string) string {
	return "exercises:gen:" + owner
}

func listKey(owner string, gen int64) string {
	return "exercises:list:" + owner + ":" + strconv.FormatInt(gen, 10)
}

// Generation returns the owner's current list generation, 0 if never invalidated.
func (c *ExerciseCache) Generation(ctx context.Context, owner string) (int64, error) {
	if c == nil {
		return 0, nil
	}
	gen, err := c.rdb.Get(ctx, genKey(owner)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Get reports false when the list is not cached for gen.
func (c *ExerciseCache) Get(ctx context.Context, owner string, gen int64) ([]entity.Exercise, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	var out []entity.Exercise
	ok, err := helpers.RedisGetJSON(ctx, c.rdb, listKey(owner, gen), &out)
	if err != nil || !ok {
		return nil, false, err
	}
	return out, true, nil
}

// Set stores exs under gen, which must be the generation read before the store was queried.
func (c *ExerciseCache) Set(ctx context.Context, owner string, gen int64, exs []entity.Exercise) error {
	if c == nil {
		return nil
	}
	return helpers.RedisSetJSON(ctx, c.rdb, listKey(owner, gen), exs, c.ttl)
}

func (c *ExerciseCache) Invalidate(ctx context.Context, owner string) error {
	if c == nil {
		return nil
	}
	return c.rdb.Incr(ctx, genKey(owner)).Err()
}
