package service

import (
	"context"
	"time"

	"roster/internal/training/models"
	id "roster/pkg/domain"
	"roster/pkg/platform/audit"
)

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

// TrainingStore reads trainings. Missing or soft-deleted rows are
// sentinel.ErrNotFound from FindByID.
type TrainingStore interface {
	FindByID(ctx context.Context, trainingID id.TrainingID) (*models.Training, error)
	// ListTransferTargets returns trainings that are not deleted and are
	// ONGOING or DRAFT, excluding exclude, newest start date first.
	ListTransferTargets(ctx context.Context, exclude id.TrainingID) ([]*models.Training, error)
}

type ParticipantLookup interface {
	FindByID(ctx context.Context, participantID id.ParticipantID) (*models.Participant, error)
}

type EnrollmentStore interface {
	FindByID(ctx context.Context, enrollmentID id.EnrollmentID) (*models.Enrollment, error)
	// FindActive returns sentinel.ErrNotFound when the participant has no
	// active enrollment in the training.
	FindActive(ctx context.Context, participantID id.ParticipantID, trainingID id.TrainingID) (*models.Enrollment, error)
	// ListActiveByTraining resolves participants, ordered by name then participant id.
	ListActiveByTraining(ctx context.Context, trainingID id.TrainingID) ([]models.EnrolledParticipant, error)
	// Create returns sentinel.ErrConflict when an active enrollment already exists.
	Create(ctx context.Context, enrollment *models.Enrollment) error
	// Reassign re-points the enrollment at target keeping its id.
	Reassign(ctx context.Context, enrollmentID id.EnrollmentID, target id.TrainingID, updatedAt time.Time) error
	Delete(ctx context.Context, enrollmentID id.EnrollmentID) error
}

type AttendanceStore interface {
	// ListByTrainingAndParticipant is ordered by date ascending.
	ListByTrainingAndParticipant(ctx context.Context, trainingID id.TrainingID, participantID id.ParticipantID) ([]*models.AttendanceRecord, error)
	ListByTraining(ctx context.Context, trainingID id.TrainingID) ([]*models.AttendanceRecord, error)
	DeleteAll(ctx context.Context, trainingID id.TrainingID, participantID id.ParticipantID) (int, error)
	// FindByKey returns sentinel.ErrNotFound when the slot is empty.
	FindByKey(ctx context.Context, key models.AttendanceKey) (*models.AttendanceRecord, error)
	// Create returns sentinel.ErrConflict when the slot is taken.
	Create(ctx context.Context, record *models.AttendanceRecord) error
	// Upsert inserts or replaces the record at its key. An existing record keeps
	// its id and CreatedAt.
	Upsert(ctx context.Context, record *models.AttendanceRecord) error
}

// CounterAdjuster is the only writer of Training.CurrentParticipants.
type CounterAdjuster interface {
	// IncrementParticipants applies delta, which must be +1 or -1.
	IncrementParticipants(ctx context.Context, trainingID id.TrainingID, delta int) error
}

// TxStores are the stores bound to one unit of work.
type TxStores struct {
	Trainings    TrainingStore
	Participants ParticipantLookup
	Enrollments  EnrollmentStore
	Attendance   AttendanceStore
	Counters     CounterAdjuster
	Audit        audit.Store
	// Locker takes row locks for the rows a transfer touches. May be a no-op
	// when the unit of work is already exclusive.
	Locker Locker
}

type Locker interface {
	LockEnrollment(ctx context.Context, enrollmentID id.EnrollmentID) error
	// LockTrainings locks the given trainings in id order.
	LockTrainings(ctx context.Context, trainingIDs ...id.TrainingID) error
}

// UnitOfWork runs fn atomically: every write through the stores commits
// together or not at all.
type UnitOfWork interface {
	RunInTx(ctx context.Context, fn func(stores TxStores) error) error
	// RunReadOnly runs fn against one consistent snapshot. Every read inside
	// fn sees the same committed state; writes through the stores fail.
	RunReadOnly(ctx context.Context, fn func(stores Stores) error) error
}

// GridCache stores built attendance grids. Each training has a generation
// that Invalidate bumps; Set stores a grid only while the generation read
// before the grid's data was loaded is still current.
type GridCache interface {
	Get(ctx context.Context, trainingID id.TrainingID) (*models.AttendanceGrid, bool, error)
	Generation(ctx context.Context, trainingID id.TrainingID) (uint64, error)
	// Set reports stored=false when the generation moved on.
	Set(ctx context.Context, grid *models.AttendanceGrid, generation uint64) (stored bool, err error)
	Invalidate(ctx context.Context, trainingIDs ...id.TrainingID) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
