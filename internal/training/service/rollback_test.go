package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roster/internal/training/models"
	"roster/internal/training/service"
	"roster/internal/training/service/mocks"
	"roster/internal/training/store/memory"
	id "roster/pkg/domain"
	dErrors "roster/pkg/domain-errors"
	auditmemory "roster/pkg/platform/audit/store/memory"
)

// interceptUOW runs the memory unit of work but lets a test swap the stores
// handed to fn.
type interceptUOW struct {
	db       *memory.DB
	wrap     func(tx service.TxStores) service.TxStores
	wrapRead func(stores service.Stores) service.Stores
}

func (u interceptUOW) RunInTx(ctx context.Context, fn func(service.TxStores) error) error {
	return u.db.RunInTx(ctx, func(tx service.TxStores) error {
		if u.wrap == nil {
			return fn(tx)
		}
		return fn(u.wrap(tx))
	})
}

func (u interceptUOW) RunReadOnly(ctx context.Context, fn func(service.Stores) error) error {
	return u.db.RunReadOnly(ctx, func(stores service.Stores) error {
		if u.wrapRead == nil {
			return fn(stores)
		}
		return fn(u.wrapRead(stores))
	})
}

type fixture struct {
	db          *memory.DB
	outbox      *auditmemory.InMemoryStore
	source      *models.Training
	target      *models.Training
	participant *models.Participant
	enrollment  *models.Enrollment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{outbox: auditmemory.NewInMemoryStore()}
	f.db = memory.New(memory.WithAuditStore(f.outbox))

	f.source = &models.Training{ID: id.NewTrainingID(), Code: "SRC", Status: models.TrainingStatusOngoing,
		StartDate: models.NewDate(2025, time.January, 1), EndDate: models.NewDate(2025, time.January, 10), MaxParticipants: 10}
	f.target = &models.Training{ID: id.NewTrainingID(), Code: "DST", Status: models.TrainingStatusDraft,
		StartDate: models.NewDate(2025, time.February, 1), EndDate: models.NewDate(2025, time.February, 5), MaxParticipants: 10}
	require.NoError(t, f.db.Trainings().Save(ctx, f.source))
	require.NoError(t, f.db.Trainings().Save(ctx, f.target))

	f.participant = &models.Participant{ID: id.NewParticipantID(), Name: "Lim"}
	require.NoError(t, f.db.Participants().Save(ctx, f.participant))
	f.enrollment = &models.Enrollment{ID: id.NewEnrollmentID(), TrainingID: f.source.ID, ParticipantID: f.participant.ID, Status: models.EnrollmentActive}
	require.NoError(t, f.db.Enrollments().Create(ctx, f.enrollment))
	require.NoError(t, f.db.Counters().IncrementParticipants(ctx, f.source.ID, 1))

	for day := 1; day <= 3; day++ {
		require.NoError(t, f.db.Attendance().Create(ctx, &models.AttendanceRecord{
			ID: id.NewAttendanceID(), TrainingID: f.source.ID, ParticipantID: f.participant.ID,
			Date: models.NewDate(2025, time.January, day), Status: models.StatusPresent,
		}))
	}
	return f
}

func (f *fixture) assertUntouched(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	e, err := f.db.Enrollments().FindByID(ctx, f.enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, f.source.ID, e.TrainingID)

	src, err := f.db.Attendance().ListByTrainingAndParticipant(ctx, f.source.ID, f.participant.ID)
	require.NoError(t, err)
	assert.Len(t, src, 3)
	dst, err := f.db.Attendance().ListByTrainingAndParticipant(ctx, f.target.ID, f.participant.ID)
	require.NoError(t, err)
	assert.Empty(t, dst)

	source, err := f.db.Trainings().FindByID(ctx, f.source.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, source.CurrentParticipants)
	target, err := f.db.Trainings().FindByID(ctx, f.target.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, target.CurrentParticipants)

	events, err := f.outbox.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestExecuteTransfer_RollsBackWhenTargetCounterFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t)

	uow := interceptUOW{db: f.db, wrap: func(tx service.TxStores) service.TxStores {
		counters := mocks.NewMockCounterAdjuster(ctrl)
		counters.EXPECT().IncrementParticipants(gomock.Any(), f.source.ID, -1).
			DoAndReturn(tx.Counters.IncrementParticipants)
		counters.EXPECT().IncrementParticipants(gomock.Any(), f.target.ID, 1).
			Return(errors.New("disk full"))
		tx.Counters = counters
		return tx
	}}
	svc := service.New(stores(f.db), uow)

	_, err := svc.ExecuteTransfer(context.Background(), f.participant.ID, f.source.ID, f.target.ID, models.Actor{Name: "ops"})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	f.assertUntouched(t)
}

func TestExecuteTransfer_RollsBackWhenCreateFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t)

	uow := interceptUOW{db: f.db, wrap: func(tx service.TxStores) service.TxStores {
		attendance := mocks.NewMockAttendanceStore(ctrl)
		inner := tx.Attendance
		attendance.EXPECT().ListByTrainingAndParticipant(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(inner.ListByTrainingAndParticipant)
		attendance.EXPECT().DeleteAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(inner.DeleteAll)
		attendance.EXPECT().FindByKey(gomock.Any(), gomock.Any()).
			DoAndReturn(inner.FindByKey).AnyTimes()
		gomock.InOrder(
			attendance.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(inner.Create),
			attendance.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("connection reset")),
		)
		tx.Attendance = attendance
		return tx
	}}
	svc := service.New(stores(f.db), uow)

	_, err := svc.ExecuteTransfer(context.Background(), f.participant.ID, f.source.ID, f.target.ID, models.Actor{Name: "ops"})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	f.assertUntouched(t)
}

func TestExecuteTransfer_CancelledContext(t *testing.T) {
	f := newFixture(t)
	svc := service.New(stores(f.db), f.db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ExecuteTransfer(ctx, f.participant.ID, f.source.ID, f.target.ID, models.Actor{})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
	f.assertUntouched(t)
}

func TestGridCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t)
	cache := mocks.NewMockGridCache(ctrl)
	svc := service.New(stores(f.db), f.db, service.WithGridCache(cache))
	ctx := context.Background()

	t.Run("miss builds and stores at the generation read before the build", func(t *testing.T) {
		gomock.InOrder(
			cache.EXPECT().Get(gomock.Any(), f.source.ID).Return(nil, false, nil),
			cache.EXPECT().Generation(gomock.Any(), f.source.ID).Return(uint64(3), nil),
			cache.EXPECT().Set(gomock.Any(), gomock.Any(), uint64(3)).
				DoAndReturn(func(_ context.Context, g *models.AttendanceGrid, _ uint64) (bool, error) {
					assert.Equal(t, f.source.ID, g.Training.ID)
					assert.Len(t, g.Participants, 1)
					return true, nil
				}),
		)

		grid, err := svc.BuildAttendanceGrid(ctx, f.source.ID)
		require.NoError(t, err)
		assert.Len(t, grid.Days, 10)
	})

	t.Run("hit skips the build", func(t *testing.T) {
		cached := &models.AttendanceGrid{Training: *f.source}
		cache.EXPECT().Get(gomock.Any(), f.source.ID).Return(cached, true, nil)

		grid, err := svc.BuildAttendanceGrid(ctx, f.source.ID)
		require.NoError(t, err)
		assert.Same(t, cached, grid)
	})

	t.Run("cache errors fall back to the store", func(t *testing.T) {
		cache.EXPECT().Get(gomock.Any(), f.source.ID).Return(nil, false, errors.New("redis down"))
		cache.EXPECT().Generation(gomock.Any(), f.source.ID).Return(uint64(0), nil)
		cache.EXPECT().Set(gomock.Any(), gomock.Any(), uint64(0)).Return(false, errors.New("redis down"))

		grid, err := svc.BuildAttendanceGrid(ctx, f.source.ID)
		require.NoError(t, err)
		assert.Len(t, grid.Participants, 1)
	})

	t.Run("unknown generation skips the write", func(t *testing.T) {
		cache.EXPECT().Get(gomock.Any(), f.source.ID).Return(nil, false, nil)
		cache.EXPECT().Generation(gomock.Any(), f.source.ID).Return(uint64(0), errors.New("redis down"))

		grid, err := svc.BuildAttendanceGrid(ctx, f.source.ID)
		require.NoError(t, err)
		assert.Len(t, grid.Participants, 1)
	})

	t.Run("transfer invalidates both grids", func(t *testing.T) {
		cache.EXPECT().Invalidate(gomock.Any(), f.source.ID, f.target.ID).Return(nil)

		_, err := svc.ExecuteTransfer(ctx, f.participant.ID, f.source.ID, f.target.ID, models.Actor{Name: "ops"})
		require.NoError(t, err)
	})
}

func TestCheckIn_EmitsOperationalAudit(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t)
	publisher := mocks.NewMockAuditPublisher(ctrl)
	svc := service.New(stores(f.db), f.db, service.WithAuditPublisher(publisher))

	publisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("buffer full"))

	_, err := svc.CheckIn(context.Background(), f.source.ID, f.participant.ID, models.SessionMorningIn, nil)
	require.NoError(t, err, "audit failures do not fail the check-in")
}
