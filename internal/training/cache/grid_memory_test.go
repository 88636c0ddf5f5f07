package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roster/internal/training/models"
	id "roster/pkg/domain"
)

func TestMemoryGridCache(t *testing.T) {
	ctx := context.Background()
	newGrid := func() *models.AttendanceGrid {
		return &models.AttendanceGrid{Training: models.Training{ID: id.NewTrainingID(), Code: "TRN-A"}}
	}

	t.Run("set and get at the current generation", func(t *testing.T) {
		c := NewMemoryGridCache(time.Minute)
		g := newGrid()

		_, ok, err := c.Get(ctx, g.Training.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		gen, err := c.Generation(ctx, g.Training.ID)
		require.NoError(t, err)
		stored, err := c.Set(ctx, g, gen)
		require.NoError(t, err)
		assert.True(t, stored)

		got, ok, err := c.Get(ctx, g.Training.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Same(t, g, got)
	})

	t.Run("invalidate drops the grid and refuses builds started before it", func(t *testing.T) {
		c := NewMemoryGridCache(time.Minute)
		a, b := newGrid(), newGrid()

		genA, err := c.Generation(ctx, a.Training.ID)
		require.NoError(t, err)
		_, err = c.Set(ctx, b, 0)
		require.NoError(t, err)

		require.NoError(t, c.Invalidate(ctx, a.Training.ID, b.Training.ID))

		stored, err := c.Set(ctx, a, genA)
		require.NoError(t, err)
		assert.False(t, stored)
		for _, g := range []*models.AttendanceGrid{a, b} {
			_, ok, err := c.Get(ctx, g.Training.ID)
			require.NoError(t, err)
			assert.False(t, ok)
		}

		genA, err = c.Generation(ctx, a.Training.ID)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), genA)
		stored, err = c.Set(ctx, a, genA)
		require.NoError(t, err)
		assert.True(t, stored)
	})

	t.Run("entries expire", func(t *testing.T) {
		c := NewMemoryGridCache(time.Minute)
		now := time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC)
		c.now = func() time.Time { return now }
		g := newGrid()
		_, err := c.Set(ctx, g, 0)
		require.NoError(t, err)

		now = now.Add(time.Minute)
		_, ok, err := c.Get(ctx, g.Training.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
