// Package cache keeps built attendance grids, in Redis or in process.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"roster/internal/training/models"
	id "roster/pkg/domain"
)

const (
	gridKeyPrefix       = "roster:grid:"
	generationKeyPrefix = "roster:gridgen:"
)

// DefaultGridTTL bounds how stale a grid can be if an invalidation is lost.
const DefaultGridTTL = 5 * time.Minute

// RedisGridCache stores grids as JSON under roster:grid:<training id> and the
// training's generation counter under roster:gridgen:<training id>.
type RedisGridCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGridCache(client *redis.Client, ttl time.Duration) *RedisGridCache {
	if ttl <= 0 {
		ttl = DefaultGridTTL
	}
	return &RedisGridCache{client: client, ttl: ttl}
}

func gridKey(trainingID id.TrainingID) string {
	return gridKeyPrefix + trainingID.String()
}

func generationKey(trainingID id.TrainingID) string {
	return generationKeyPrefix + trainingID.String()
}

// Get returns ok=false on a miss.
func (c *RedisGridCache) Get(ctx context.Context, trainingID id.TrainingID) (*models.AttendanceGrid, bool, error) {
	raw, err := c.client.Get(ctx, gridKey(trainingID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get grid: %w", err)
	}
	var grid models.AttendanceGrid
	if err := json.Unmarshal(raw, &grid); err != nil {
		// A stale encoding is a miss; the next Set overwrites it.
		return nil, false, nil
	}
	return &grid, true, nil
}

// Generation is 0 for a training that was never invalidated.
func (c *RedisGridCache) Generation(ctx context.Context, trainingID id.TrainingID) (uint64, error) {
	return readGeneration(ctx, c.client, trainingID)
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, cmd stringGetter, trainingID id.TrainingID) (uint64, error) {
	gen, err := cmd.Get(ctx, generationKey(trainingID)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get grid generation: %w", err)
	}
	return gen, nil
}

// Set writes the grid under WATCH of the generation key: an Invalidate landing
// between the check and the write aborts the transaction.
func (c *RedisGridCache) Set(ctx context.Context, grid *models.AttendanceGrid, generation uint64) (bool, error) {
	raw, err := json.Marshal(grid)
	if err != nil {
		return false, fmt.Errorf("encode grid: %w", err)
	}
	trainingID := grid.Training.ID

	stored := false
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, trainingID)
		if err != nil {
			return err
		}
		if current != generation {
			return nil
		}
		if _, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, gridKey(trainingID), raw, c.ttl)
			return nil
		}); err != nil {
			return err
		}
		stored = true
		return nil
	}, generationKey(trainingID))
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("set grid: %w", err)
	}
	return stored, nil
}

// Invalidate bumps each training's generation and drops its grid in one
// MULTI/EXEC.
func (c *RedisGridCache) Invalidate(ctx context.Context, trainingIDs ...id.TrainingID) error {
	if len(trainingIDs) == 0 {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, tid := range trainingIDs {
			pipe.Incr(ctx, generationKey(tid))
			pipe.Del(ctx, gridKey(tid))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate grids: %w", err)
	}
	return nil
}
