package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"roster/internal/training/models"
	id "roster/pkg/domain"
	dErrors "roster/pkg/domain-errors"
	"roster/pkg/platform/audit"
	"roster/pkg/platform/sentinel"
	pstrings "roster/pkg/platform/strings"
	"roster/pkg/requestcontext"
)

// Enroll enrolls the participant in every listed training. Either all
// enrollments are created or none are.
func (s *Service) Enroll(ctx context.Context, participantID id.ParticipantID, trainingIDs []id.TrainingID, method models.RegistrationMethod, actor models.Actor) (_ []*models.Enrollment, err error) {
	ctx, finish := s.startSpan(ctx, "training.Enroll", attribute.String("participant_id", participantID.String()))
	defer func() { finish(err) }()

	trainingIDs = pstrings.Dedupe(trainingIDs)
	if len(trainingIDs) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "at least one training is required")
	}
	if method == "" {
		method = models.RegistrationManual
	}

	now := requestcontext.Now(ctx)
	created := make([]*models.Enrollment, 0, len(trainingIDs))
	err = s.uow.RunInTx(ctx, func(tx TxStores) error {
		if _, err := loadParticipant(ctx, tx.Participants, participantID); err != nil {
			return err
		}
		if err := tx.Locker.LockTrainings(ctx, trainingIDs...); err != nil {
			return translate(err, "training not found", "lock trainings")
		}
		for _, trainingID := range trainingIDs {
			e, err := enrollOne(ctx, tx, participantID, trainingID, method, actor, now)
			if err != nil {
				return err
			}
			created = append(created, e)
		}
		return nil
	})
	if err != nil {
		return nil, translate(err, "training not found", "enroll participant")
	}

	s.invalidateGrids(ctx, trainingIDs...)
	for range created {
		s.metrics.IncEnrollment("created")
	}
	s.logger.InfoContext(ctx, "participant enrolled",
		"participant_id", participantID,
		"trainings", len(created),
		"request_id", requestcontext.RequestID(ctx),
	)
	return created, nil
}

func enrollOne(ctx context.Context, tx TxStores, participantID id.ParticipantID, trainingID id.TrainingID, method models.RegistrationMethod, actor models.Actor, now time.Time) (*models.Enrollment, error) {
	training, err := loadTraining(ctx, tx.Trainings, trainingID, "")
	if err != nil {
		return nil, err
	}

	_, err = tx.Enrollments.FindActive(ctx, participantID, trainingID)
	switch {
	case err == nil:
		return nil, dErrors.New(dErrors.CodeConflict, "participant is already enrolled in "+training.Code)
	case !errors.Is(err, sentinel.ErrNotFound):
		return nil, translate(err, "enrollment not found", "check enrollment")
	}
	if training.IsFull() {
		return nil, dErrors.New(dErrors.CodeConflict, "training "+training.Code+" is full")
	}

	e := &models.Enrollment{
		ID:                 id.NewEnrollmentID(),
		TrainingID:         trainingID,
		ParticipantID:      participantID,
		RegistrationDate:   now,
		RegistrationMethod: method,
		Role:               models.RoleParticipant,
		Status:             models.EnrollmentActive,
		UpdatedAt:          now,
	}
	if err := tx.Enrollments.Create(ctx, e); err != nil {
		return nil, translate(err, "training not found", "create enrollment")
	}
	if err := tx.Counters.IncrementParticipants(ctx, trainingID, 1); err != nil {
		return nil, translate(err, "training not found", "increment participants")
	}
	if err := tx.Audit.Append(ctx, audit.Event{
		Timestamp:  now,
		ActorID:    actor.UserID,
		ActorName:  actor.Name,
		Action:     string(audit.EventEnrollmentCreated),
		Subject:    participantID.String(),
		TrainingID: trainingID.String(),
		Detail:     string(method),
		RequestID:  requestcontext.RequestID(ctx),
	}); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to write enrollment audit")
	}
	return e, nil
}

// CancelEnrollment removes the enrollment and releases its seat.
func (s *Service) CancelEnrollment(ctx context.Context, enrollmentID id.EnrollmentID, actor models.Actor) (_ *models.Enrollment, err error) {
	ctx, finish := s.startSpan(ctx, "training.CancelEnrollment", attribute.String("enrollment_id", enrollmentID.String()))
	defer func() { finish(err) }()

	now := requestcontext.Now(ctx)
	var cancelled *models.Enrollment
	err = s.uow.RunInTx(ctx, func(tx TxStores) error {
		if err := tx.Locker.LockEnrollment(ctx, enrollmentID); err != nil {
			return translate(err, "enrollment not found", "lock enrollment")
		}
		e, err := tx.Enrollments.FindByID(ctx, enrollmentID)
		if err != nil {
			return translate(err, "enrollment not found", "load enrollment")
		}
		if err := tx.Locker.LockTrainings(ctx, e.TrainingID); err != nil {
			return translate(err, "training not found", "lock training")
		}
		if err := tx.Enrollments.Delete(ctx, enrollmentID); err != nil {
			return translate(err, "enrollment not found", "delete enrollment")
		}
		if e.IsActive() {
			if err := tx.Counters.IncrementParticipants(ctx, e.TrainingID, -1); err != nil {
				return translate(err, "training not found", "decrement participants")
			}
		}
		if err := tx.Audit.Append(ctx, audit.Event{
			Timestamp:  now,
			ActorID:    actor.UserID,
			ActorName:  actor.Name,
			Action:     string(audit.EventEnrollmentCancelled),
			Subject:    e.ParticipantID.String(),
			TrainingID: e.TrainingID.String(),
			RequestID:  requestcontext.RequestID(ctx),
		}); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write enrollment audit")
		}
		cancelled = e
		return nil
	})
	if err != nil {
		return nil, translate(err, "enrollment not found", "cancel enrollment")
	}

	s.invalidateGrids(ctx, cancelled.TrainingID)
	s.metrics.IncEnrollment("cancelled")
	return cancelled, nil
}

// ListEnrollmentsByTraining lists the training's active enrollments with
// participant details.
func (s *Service) ListEnrollmentsByTraining(ctx context.Context, trainingID id.TrainingID) ([]models.EnrolledParticipant, error) {
	if _, err := loadTraining(ctx, s.trainings, trainingID, ""); err != nil {
		return nil, err
	}
	list, err := s.enrollments.ListActiveByTraining(ctx, trainingID)
	if err != nil {
		return nil, translate(err, "training not found", "list enrollments")
	}
	if list == nil {
		list = []models.EnrolledParticipant{}
	}
	return list, nil
}
