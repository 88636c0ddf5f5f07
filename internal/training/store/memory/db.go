// Package memory is the in-process backend for every training store. All
// tables live in one DB guarded by a single RWMutex; a unit of work runs on a
// cloned copy of the tables and swaps it in only when it succeeds.
package memory

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"roster/internal/training/models"
	"roster/internal/training/service"
	id "roster/pkg/domain"
	dErrors "roster/pkg/domain-errors"
	"roster/pkg/platform/audit"
)

const defaultTxTimeout = 5 * time.Second

type tables struct {
	trainings    map[id.TrainingID]*models.Training
	participants map[id.ParticipantID]*models.Participant
	enrollments  map[id.EnrollmentID]*models.Enrollment
	attendance   map[id.AttendanceID]*models.AttendanceRecord
	byKey        map[models.AttendanceKey]id.AttendanceID
}

func newTables() *tables {
	return &tables{
		trainings:    make(map[id.TrainingID]*models.Training),
		participants: make(map[id.ParticipantID]*models.Participant),
		enrollments:  make(map[id.EnrollmentID]*models.Enrollment),
		attendance:   make(map[id.AttendanceID]*models.AttendanceRecord),
		byKey:        make(map[models.AttendanceKey]id.AttendanceID),
	}
}

// clone copies every row so writes on the clone never reach the original.
func (t *tables) clone() *tables {
	c := &tables{
		trainings:    make(map[id.TrainingID]*models.Training, len(t.trainings)),
		participants: make(map[id.ParticipantID]*models.Participant, len(t.participants)),
		enrollments:  make(map[id.EnrollmentID]*models.Enrollment, len(t.enrollments)),
		attendance:   make(map[id.AttendanceID]*models.AttendanceRecord, len(t.attendance)),
		byKey:        maps.Clone(t.byKey),
	}
	for k, v := range t.trainings {
		cp := *v
		c.trainings[k] = &cp
	}
	for k, v := range t.participants {
		cp := *v
		c.participants[k] = &cp
	}
	for k, v := range t.enrollments {
		cp := *v
		c.enrollments[k] = &cp
	}
	for k, v := range t.attendance {
		c.attendance[k] = v.Clone()
	}
	return c
}

var errReadOnly = errors.New("write in a read-only snapshot")

// AuditSink receives the audit events of a committed unit of work in one
// batch. AppendAll stores all of events or none of them.
type AuditSink interface {
	AppendAll(ctx context.Context, events []audit.Event) error
}

// DB owns the tables. The zero value is not usable; call New.
type DB struct {
	mu      sync.RWMutex
	tables  *tables
	audit   AuditSink
	timeout time.Duration
}

type Option func(*DB)

// WithAuditStore makes audit events appended inside a unit of work land in
// store together with the unit of work's writes.
func WithAuditStore(store AuditSink) Option {
	return func(db *DB) { db.audit = store }
}

func WithTxTimeout(d time.Duration) Option {
	return func(db *DB) { db.timeout = d }
}

func New(opts ...Option) *DB {
	db := &DB{tables: newTables(), timeout: defaultTxTimeout}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// binding routes a store either to the live tables (taking the DB lock) or to
// the tables of a unit of work or snapshot (no locking; the caller holds it).
type binding struct {
	db       *DB
	tx       *tables
	readOnly bool
}

func (b binding) read(fn func(t *tables) error) error {
	if b.tx != nil {
		return fn(b.tx)
	}
	b.db.mu.RLock()
	defer b.db.mu.RUnlock()
	return fn(b.db.tables)
}

func (b binding) write(fn func(t *tables) error) error {
	if b.readOnly {
		return errReadOnly
	}
	if b.tx != nil {
		return fn(b.tx)
	}
	b.db.mu.Lock()
	defer b.db.mu.Unlock()
	return fn(b.db.tables)
}

func (db *DB) Trainings() *TrainingStore       { return &TrainingStore{binding{db: db}} }
func (db *DB) Participants() *ParticipantStore { return &ParticipantStore{binding{db: db}} }
func (db *DB) Enrollments() *EnrollmentStore   { return &EnrollmentStore{binding{db: db}} }
func (db *DB) Attendance() *AttendanceStore    { return &AttendanceStore{binding{db: db}} }
func (db *DB) Counters() *TrainingStore        { return db.Trainings() }

// RunInTx holds the write lock for the whole of fn, so units of work are
// serialised and readers only ever see committed tables.
func (db *DB) RunInTx(ctx context.Context, fn func(stores service.TxStores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, db.timeout)
		defer cancel()
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	work := db.tables.clone()
	b := binding{db: db, tx: work}
	events := &auditBuffer{}
	trainings := &TrainingStore{b}
	err := fn(service.TxStores{
		Trainings:    trainings,
		Participants: &ParticipantStore{b},
		Enrollments:  &EnrollmentStore{b},
		Attendance:   &AttendanceStore{b},
		Counters:     trainings,
		Audit:        events,
		Locker:       noopLocker{},
	})
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	if db.audit != nil && len(events.events) > 0 {
		if err := db.audit.AppendAll(context.WithoutCancel(ctx), events.events); err != nil {
			return fmt.Errorf("flush audit events: %w", err)
		}
	}
	db.tables = work
	return nil
}

// RunReadOnly holds the read lock for the whole of fn, so no unit of work can
// commit between two reads inside it.
func (db *DB) RunReadOnly(ctx context.Context, fn func(stores service.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "snapshot aborted: context cancelled")
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	b := binding{db: db, tx: db.tables, readOnly: true}
	return fn(service.Stores{
		Trainings:    &TrainingStore{b},
		Participants: &ParticipantStore{b},
		Enrollments:  &EnrollmentStore{b},
		Attendance:   &AttendanceStore{b},
	})
}

type auditBuffer struct {
	events []audit.Event
}

func (b *auditBuffer) Append(_ context.Context, event audit.Event) error {
	b.events = append(b.events, event)
	return nil
}

type noopLocker struct{}

func (noopLocker) LockEnrollment(context.Context, id.EnrollmentID) error  { return nil }
func (noopLocker) LockTrainings(context.Context, ...id.TrainingID) error { return nil }
