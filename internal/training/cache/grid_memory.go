package cache

import (
	"context"
	"sync"
	"time"

	"roster/internal/training/models"
	id "roster/pkg/domain"
)

// MemoryGridCache keeps grids in process. It is only correct when this
// process sees every invalidation, i.e. with the in-memory stores.
// Cached grids are shared between callers and must not be modified.
type MemoryGridCache struct {
	mu          sync.Mutex
	ttl         time.Duration
	now         func() time.Time
	grids       map[id.TrainingID]cachedGrid
	generations map[id.TrainingID]uint64
}

type cachedGrid struct {
	grid      *models.AttendanceGrid
	expiresAt time.Time
}

func NewMemoryGridCache(ttl time.Duration) *MemoryGridCache {
	if ttl <= 0 {
		ttl = DefaultGridTTL
	}
	return &MemoryGridCache{
		ttl:         ttl,
		now:         time.Now,
		grids:       make(map[id.TrainingID]cachedGrid),
		generations: make(map[id.TrainingID]uint64),
	}
}

func (c *MemoryGridCache) Get(_ context.Context, trainingID id.TrainingID) (*models.AttendanceGrid, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.grids[trainingID]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.grids, trainingID)
		return nil, false, nil
	}
	return entry.grid, true, nil
}

func (c *MemoryGridCache) Generation(_ context.Context, trainingID id.TrainingID) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[trainingID], nil
}

func (c *MemoryGridCache) Set(_ context.Context, grid *models.AttendanceGrid, generation uint64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[grid.Training.ID] != generation {
		return false, nil
	}
	c.grids[grid.Training.ID] = cachedGrid{grid: grid, expiresAt: c.now().Add(c.ttl)}
	return true, nil
}

func (c *MemoryGridCache) Invalidate(_ context.Context, trainingIDs ...id.TrainingID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, tid := range trainingIDs {
		c.generations[tid]++
		delete(c.grids, tid)
	}
	return nil
}
