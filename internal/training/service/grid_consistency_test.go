package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roster/internal/training/cache"
	"roster/internal/training/models"
	"roster/internal/training/service"
	id "roster/pkg/domain"
)

// gate blocks the first caller until open is called.
type gate struct {
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGate() *gate {
	return &gate{entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gate) wait() {
	first := false
	g.once.Do(func() {
		first = true
		close(g.entered)
	})
	if first {
		<-g.release
	}
}

func (g *gate) open() { close(g.release) }

type gatedAttendance struct {
	service.AttendanceStore
	gate *gate
}

func (a gatedAttendance) ListByTraining(ctx context.Context, trainingID id.TrainingID) ([]*models.AttendanceRecord, error) {
	a.gate.wait()
	return a.AttendanceStore.ListByTraining(ctx, trainingID)
}

type gatedGridCache struct {
	*cache.MemoryGridCache
	gate *gate

	mu     sync.Mutex
	stored []bool
}

func (c *gatedGridCache) Set(ctx context.Context, grid *models.AttendanceGrid, generation uint64) (bool, error) {
	c.gate.wait()
	stored, err := c.MemoryGridCache.Set(ctx, grid, generation)
	c.mu.Lock()
	c.stored = append(c.stored, stored)
	c.mu.Unlock()
	return stored, err
}

type buildResult struct {
	grid *models.AttendanceGrid
	err  error
}

func buildAsync(svc *service.Service, trainingID id.TrainingID) <-chan buildResult {
	out := make(chan buildResult, 1)
	go func() {
		grid, err := svc.BuildAttendanceGrid(context.Background(), trainingID)
		out <- buildResult{grid: grid, err: err}
	}()
	return out
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the gated call")
	}
}

func TestBuildAttendanceGrid_ReadsOneSnapshot(t *testing.T) {
	f := newFixture(t)
	g := newGate()
	uow := interceptUOW{db: f.db, wrapRead: func(stores service.Stores) service.Stores {
		stores.Attendance = gatedAttendance{AttendanceStore: stores.Attendance, gate: g}
		return stores
	}}
	svc := service.New(stores(f.db), uow)

	build := buildAsync(svc, f.source.ID)
	waitFor(t, g.entered)

	transferred := make(chan error, 1)
	go func() {
		_, err := svc.ExecuteTransfer(context.Background(), f.participant.ID, f.source.ID, f.target.ID, models.Actor{Name: "ops"})
		transferred <- err
	}()
	select {
	case err := <-transferred:
		t.Fatalf("transfer committed between the grid's reads: %v", err)
	case <-time.After(100 * time.Millisecond):
	}
	g.open()

	res := <-build
	require.NoError(t, res.err)
	require.Len(t, res.grid.Participants, 1)
	assert.Len(t, res.grid.Participants[0].Attendance, 3, "a listed participant carries every one of their cells")
	assert.Equal(t, 1, res.grid.Training.CurrentParticipants)

	require.NoError(t, <-transferred)
	after, err := svc.BuildAttendanceGrid(context.Background(), f.source.ID)
	require.NoError(t, err)
	assert.Empty(t, after.Participants)
}

func TestBuildAttendanceGrid_TransferDuringBuildIsNotCached(t *testing.T) {
	ctx := context.Background()

	t.Run("transfer commits while the grid is being loaded", func(t *testing.T) {
		f := newFixture(t)
		g := newGate()
		uow := interceptUOW{db: f.db, wrapRead: func(stores service.Stores) service.Stores {
			stores.Attendance = gatedAttendance{AttendanceStore: stores.Attendance, gate: g}
			return stores
		}}
		svc := service.New(stores(f.db), uow, service.WithGridCache(cache.NewMemoryGridCache(time.Minute)))

		build := buildAsync(svc, f.source.ID)
		waitFor(t, g.entered)
		transferred := make(chan error, 1)
		go func() {
			_, err := svc.ExecuteTransfer(ctx, f.participant.ID, f.source.ID, f.target.ID, models.Actor{Name: "ops"})
			transferred <- err
		}()
		g.open()

		require.NoError(t, (<-build).err)
		require.NoError(t, <-transferred)

		grid, err := svc.BuildAttendanceGrid(ctx, f.source.ID)
		require.NoError(t, err)
		assert.Empty(t, grid.Participants)
		target, err := svc.BuildAttendanceGrid(ctx, f.target.ID)
		require.NoError(t, err)
		assert.Len(t, target.Participants, 1)
	})

	t.Run("transfer commits between the load and the cache write", func(t *testing.T) {
		f := newFixture(t)
		gc := &gatedGridCache{MemoryGridCache: cache.NewMemoryGridCache(time.Minute), gate: newGate()}
		svc := service.New(stores(f.db), f.db, service.WithGridCache(gc))

		build := buildAsync(svc, f.source.ID)
		waitFor(t, gc.gate.entered)

		_, err := svc.ExecuteTransfer(ctx, f.participant.ID, f.source.ID, f.target.ID, models.Actor{Name: "ops"})
		require.NoError(t, err)
		gc.gate.open()

		res := <-build
		require.NoError(t, res.err)
		assert.Len(t, res.grid.Participants, 1, "the caller still gets the grid it loaded")

		grid, err := svc.BuildAttendanceGrid(ctx, f.source.ID)
		require.NoError(t, err)
		assert.Empty(t, grid.Participants)

		gc.mu.Lock()
		defer gc.mu.Unlock()
		require.Len(t, gc.stored, 2)
		assert.False(t, gc.stored[0], "a grid loaded before the transfer is not cached")
		assert.True(t, gc.stored[1])
	})
}
