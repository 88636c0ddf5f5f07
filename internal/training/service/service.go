// Package service implements attendance grids, cross-training transfers and
// the enrollment and check-in operations around them.
package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"roster/internal/training/metrics"
	"roster/internal/training/models"
	id "roster/pkg/domain"
	dErrors "roster/pkg/domain-errors"
	"roster/pkg/platform/sentinel"
)

const tracerName = "roster/internal/training/service"

// Stores are the read paths of the service, either on the live backend or
// bound to one read-only snapshot.
type Stores struct {
	Trainings    TrainingStore
	Participants ParticipantLookup
	Enrollments  EnrollmentStore
	Attendance   AttendanceStore
}

type Service struct {
	trainings    TrainingStore
	participants ParticipantLookup
	enrollments  EnrollmentStore
	attendance   AttendanceStore
	uow          UnitOfWork

	logger         *slog.Logger
	metrics        *metrics.Metrics
	cache          GridCache
	auditPublisher AuditPublisher
	tracer         trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithGridCache serves grids from cache and invalidates them on every mutation.
func WithGridCache(cache GridCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithAuditPublisher receives operational events that are not written inside
// a unit of work (check-ins).
func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// New constructs a Service.
func New(stores Stores, uow UnitOfWork, opts ...Option) *Service {
	s := &Service{
		trainings:    stores.Trainings,
		participants: stores.Participants,
		enrollments:  stores.Enrollments,
		attendance:   stores.Attendance,
		uow:          uow,
		logger:       slog.Default(),
		tracer:       otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// startSpan opens a span; finish records err on it and ends it.
func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, func(err error)) {
	ctx, span := s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
		}
		span.End()
	}
}

// translate maps store sentinels onto domain codes. Errors that already
// carry a code pass through unchanged.
func translate(err error, notFound string, op string) error {
	var coded *dErrors.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &coded):
		return err
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, notFound)
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, op+": concurrent change")
	case errors.Is(err, sentinel.ErrInvalidState):
		return dErrors.Wrap(err, dErrors.CodeInvalidState, op)
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to "+op)
	}
}

// loadTraining names the training by role ("source", "target") in errors.
func loadTraining(ctx context.Context, store TrainingStore, trainingID id.TrainingID, role string) (*models.Training, error) {
	noun := "training"
	if role != "" {
		noun = role + " training"
	}
	t, err := store.FindByID(ctx, trainingID)
	if err != nil {
		return nil, translate(err, noun+" not found", "load "+noun)
	}
	return t, nil
}

func loadParticipant(ctx context.Context, store ParticipantLookup, participantID id.ParticipantID) (*models.Participant, error) {
	p, err := store.FindByID(ctx, participantID)
	if err != nil {
		return nil, translate(err, "participant not found", "load participant")
	}
	return p, nil
}

func (s *Service) invalidateGrids(ctx context.Context, trainingIDs ...id.TrainingID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(context.WithoutCancel(ctx), trainingIDs...); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate grid cache", "error", err)
	}
}
