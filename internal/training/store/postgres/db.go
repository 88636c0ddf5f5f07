// Package postgres is the PostgreSQL backend for the training stores. Every
// store can run against the pool or inside a unit of work.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"roster/internal/training/service"
	id "roster/pkg/domain"
	dErrors "roster/pkg/domain-errors"
	"roster/pkg/platform/audit"
	auditpostgres "roster/pkg/platform/audit/store/postgres"
	"roster/pkg/platform/sentinel"
	txcontext "roster/pkg/platform/tx"
)

//go:embed schema.sql
var schema string

const defaultTxTimeout = 5 * time.Second

// Migrate creates the tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

type DB struct {
	db      *sql.DB
	audit   *auditpostgres.Store
	timeout time.Duration
}

type Option func(*DB)

func WithTxTimeout(d time.Duration) Option {
	return func(db *DB) { db.timeout = d }
}

// New wraps db. Audit events appended inside a unit of work go to the outbox
// table in the same transaction.
func New(db *sql.DB, opts ...Option) *DB {
	d := &DB{db: db, audit: auditpostgres.New(db), timeout: defaultTxTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *DB) Trainings() *TrainingStore       { return &TrainingStore{q: d.db} }
func (d *DB) Participants() *ParticipantStore { return &ParticipantStore{q: d.db} }
func (d *DB) Enrollments() *EnrollmentStore   { return &EnrollmentStore{q: d.db} }
func (d *DB) Attendance() *AttendanceStore    { return &AttendanceStore{q: d.db} }
func (d *DB) Counters() *TrainingStore        { return d.Trainings() }

// Outbox is the audit store backed by the outbox table.
func (d *DB) Outbox() *auditpostgres.Store { return d.audit }

// RunInTx runs fn in one READ COMMITTED transaction. Rows a transfer depends
// on are serialised through the Locker's SELECT ... FOR UPDATE.
func (d *DB) RunInTx(ctx context.Context, fn func(stores service.TxStores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return timeoutOr(ctx, fmt.Errorf("begin transaction: %w", err))
	}
	defer func() {
		_ = tx.Rollback()
	}()

	trainings := &TrainingStore{q: tx}
	if err := fn(service.TxStores{
		Trainings:    trainings,
		Participants: &ParticipantStore{q: tx},
		Enrollments:  &EnrollmentStore{q: tx},
		Attendance:   &AttendanceStore{q: tx},
		Counters:     trainings,
		Audit:        txAudit{store: d.audit, tx: tx},
		Locker:       &Locker{q: tx},
	}); err != nil {
		return timeoutOr(ctx, err)
	}

	if err := tx.Commit(); err != nil {
		return timeoutOr(ctx, mapErr(fmt.Errorf("commit transaction: %w", err)))
	}
	return nil
}

// RunReadOnly runs fn in one READ ONLY REPEATABLE READ transaction, so every
// query inside fn reads the same snapshot.
func (d *DB) RunReadOnly(ctx context.Context, fn func(stores service.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "snapshot aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	tx, err := d.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return timeoutOr(ctx, fmt.Errorf("begin read-only transaction: %w", err))
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(service.Stores{
		Trainings:    &TrainingStore{q: tx},
		Participants: &ParticipantStore{q: tx},
		Enrollments:  &EnrollmentStore{q: tx},
		Attendance:   &AttendanceStore{q: tx},
	}); err != nil {
		return timeoutOr(ctx, err)
	}

	if err := tx.Commit(); err != nil {
		return timeoutOr(ctx, mapErr(fmt.Errorf("commit read-only transaction: %w", err)))
	}
	return nil
}

func timeoutOr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return dErrors.Wrap(ctxErr, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	return err
}

// txAudit puts outbox writes on the unit of work's transaction.
type txAudit struct {
	store *auditpostgres.Store
	tx    *sql.Tx
}

func (a txAudit) Append(ctx context.Context, event audit.Event) error {
	return a.store.Append(txcontext.WithTx(ctx, a.tx), event)
}

// Locker takes row locks inside a unit of work.
type Locker struct {
	q txcontext.Execer
}

// LockTrainings locks in id order so two units of work touching the same pair
// cannot deadlock. Missing ids are not an error here; the later read reports them.
func (l *Locker) LockTrainings(ctx context.Context, trainingIDs ...id.TrainingID) error {
	if len(trainingIDs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(trainingIDs))
	for _, tid := range trainingIDs {
		ids = append(ids, tid.String())
	}
	_, err := l.q.ExecContext(ctx,
		`SELECT id FROM trainings WHERE id = ANY($1::uuid[]) ORDER BY id FOR UPDATE`, pq.Array(ids))
	if err != nil {
		return mapErr(fmt.Errorf("lock trainings: %w", err))
	}
	return nil
}

func (l *Locker) LockEnrollment(ctx context.Context, enrollmentID id.EnrollmentID) error {
	var got string
	err := l.q.QueryRowContext(ctx,
		`SELECT id FROM enrollments WHERE id = $1 FOR UPDATE`, enrollmentID.String()).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return mapErr(err)
}

// mapErr turns driver failures into store sentinels: missing rows are
// ErrNotFound; unique violations, serialization failures and deadlocks are
// ErrConflict.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505", "40001", "40P01":
			return fmt.Errorf("%w: %s", sentinel.ErrConflict, pqErr.Message)
		case "23503":
			return fmt.Errorf("%w: %s", sentinel.ErrNotFound, pqErr.Message)
		}
	}
	return err
}
