package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"roster/internal/platform/config"
	"roster/internal/platform/redis"
	"roster/internal/training/cache"
	"roster/internal/training/service"
	"roster/internal/training/store/memory"
	"roster/internal/training/store/postgres"
	audit "roster/pkg/platform/audit"
	"roster/pkg/platform/audit/outbox"
	auditmemory "roster/pkg/platform/audit/store/memory"
)

// auditOutbox is where audit events land and where the relay reads them back.
type auditOutbox interface {
	audit.Store
	outbox.Source
}

type backend struct {
	name      string
	stores    service.Stores
	uow       service.UnitOfWork
	outbox    auditOutbox
	gridCache service.GridCache
	health    func(ctx context.Context) error
	closers   []func() error
}

func (b *backend) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		_ = b.closers[i]()
	}
}

// openBackend picks Postgres when a database URL is configured and the
// in-memory stores (with demo data) otherwise. Redis is optional either way.
func openBackend(ctx context.Context, cfg config.Config, log *slog.Logger) (*backend, error) {
	b := &backend{health: func(context.Context) error { return nil }}

	if cfg.Database.URL != "" {
		db, err := sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		b.closers = append(b.closers, db.Close)
		if err := db.PingContext(ctx); err != nil {
			b.close()
			return nil, fmt.Errorf("ping database: %w", err)
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			b.close()
			return nil, err
		}
		pg := postgres.New(db, postgres.WithTxTimeout(cfg.Database.TxTimeout))
		b.name = "postgres"
		b.stores = service.Stores{
			Trainings:    pg.Trainings(),
			Participants: pg.Participants(),
			Enrollments:  pg.Enrollments(),
			Attendance:   pg.Attendance(),
		}
		b.uow = pg
		b.outbox = pg.Outbox()
		b.health = db.PingContext
	} else {
		events := auditmemory.NewInMemoryStore()
		mem := memory.New(memory.WithAuditStore(events), memory.WithTxTimeout(cfg.Database.TxTimeout))
		if err := memory.SeedDemo(ctx, mem); err != nil {
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
		b.name = "memory"
		b.stores = service.Stores{
			Trainings:    mem.Trainings(),
			Participants: mem.Participants(),
			Enrollments:  mem.Enrollments(),
			Attendance:   mem.Attendance(),
		}
		b.uow = mem
		b.outbox = events
		log.Info("no database configured, serving seeded in-memory data")
	}

	rc, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		b.close()
		return nil, err
	}
	if rc != nil {
		b.closers = append(b.closers, rc.Close)
		b.gridCache = cache.NewRedisGridCache(rc.Client, cfg.Cache.GridTTL)
		dbHealth := b.health
		b.health = func(ctx context.Context) error {
			if err := dbHealth(ctx); err != nil {
				return err
			}
			return rc.Health(ctx)
		}
	} else if b.name == "memory" {
		// a single process owns the data, so an in-process cache sees every invalidation
		b.gridCache = cache.NewMemoryGridCache(cfg.Cache.GridTTL)
	}
	return b, nil
}
