package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"roster/internal/training/calendar"
	"roster/internal/training/models"
	id "roster/pkg/domain"
	dErrors "roster/pkg/domain-errors"
	"roster/pkg/platform/audit"
	"roster/pkg/platform/sentinel"
	"roster/pkg/requestcontext"
)

const defaultBulkReason = "Updated via attendance grid"

// CheckIn stamps the named session of today's record, creating the record
// (status PRESENT) on the first punch of the day.
func (s *Service) CheckIn(ctx context.Context, trainingID id.TrainingID, participantID id.ParticipantID, session models.Session, location *models.Location) (_ *models.AttendanceRecord, err error) {
	ctx, finish := s.startSpan(ctx, "training.CheckIn",
		attribute.String("training_id", trainingID.String()),
		attribute.String("session", string(session)),
	)
	defer func() { finish(err) }()

	if !session.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown session %q", session))
	}

	now := requestcontext.Now(ctx)
	key := models.AttendanceKey{TrainingID: trainingID, ParticipantID: participantID, Date: models.DateOf(now)}

	var record *models.AttendanceRecord
	err = s.uow.RunInTx(ctx, func(tx TxStores) error {
		if _, err := loadTraining(ctx, tx.Trainings, trainingID, ""); err != nil {
			return err
		}
		if err := requireEnrolled(ctx, tx.Enrollments, participantID, trainingID); err != nil {
			return err
		}

		existing, err := tx.Attendance.FindByKey(ctx, key)
		switch {
		case err == nil:
			record = existing
		case errors.Is(err, sentinel.ErrNotFound):
			record = &models.AttendanceRecord{
				ID:            id.NewAttendanceID(),
				TrainingID:    trainingID,
				ParticipantID: participantID,
				Date:          key.Date,
				Status:        models.StatusPresent,
				CreatedAt:     now,
			}
		default:
			return translate(err, "attendance not found", "load attendance")
		}

		record.SetPunch(session, now)
		if location != nil {
			loc := *location
			record.Location = &loc
		}
		if device := requestcontext.Device(ctx); device != "" {
			record.Device = device
		}
		record.UpdatedAt = now
		return translate(tx.Attendance.Upsert(ctx, record), "attendance not found", "save attendance")
	})
	if err != nil {
		return nil, translate(err, "training not found", "check in")
	}

	s.invalidateGrids(ctx, trainingID)
	s.metrics.IncCheckIn(string(session))
	if s.auditPublisher != nil {
		actor := requestcontext.Actor(ctx)
		if err := s.auditPublisher.Emit(ctx, audit.Event{
			Timestamp:  now,
			ActorID:    actor.UserID,
			ActorName:  actor.Name,
			Action:     string(audit.EventAttendanceCheckedIn),
			Subject:    participantID.String(),
			TrainingID: trainingID.String(),
			Detail:     string(session),
			RequestID:  requestcontext.RequestID(ctx),
		}); err != nil {
			s.logger.WarnContext(ctx, "failed to emit check-in audit", "error", err)
		}
	}
	return record, nil
}

func requireEnrolled(ctx context.Context, enrollments EnrollmentStore, participantID id.ParticipantID, trainingID id.TrainingID) error {
	_, err := enrollments.FindActive(ctx, participantID, trainingID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeInvalidState, "participant is not enrolled in this training")
	}
	return translate(err, "enrollment not found", "check enrollment")
}

// BulkEntry replaces one grid cell: all four punches and the status.
type BulkEntry struct {
	ParticipantID id.ParticipantID
	Date          models.Date
	MorningIn     models.Punch
	MorningOut    models.Punch
	AfternoonIn   models.Punch
	AfternoonOut  models.Punch
	Status        models.AttendanceStatus
}

// BulkUpdateAttendance writes grid edits in one unit of work. Each entry is
// stamped as a manual entry by actor.
func (s *Service) BulkUpdateAttendance(ctx context.Context, trainingID id.TrainingID, entries []BulkEntry, reason string, actor models.Actor) (_ int, err error) {
	ctx, finish := s.startSpan(ctx, "training.BulkUpdateAttendance",
		attribute.String("training_id", trainingID.String()),
		attribute.Int("entries", len(entries)),
	)
	defer func() { finish(err) }()

	if len(entries) == 0 {
		return 0, dErrors.New(dErrors.CodeValidation, "no attendance entries supplied")
	}
	if reason == "" {
		reason = defaultBulkReason
	}
	for i, e := range entries {
		if !e.Status.IsValid() {
			return 0, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("entry %d: unknown status %q", i, e.Status))
		}
	}

	now := requestcontext.Now(ctx)
	err = s.uow.RunInTx(ctx, func(tx TxStores) error {
		training, err := loadTraining(ctx, tx.Trainings, trainingID, "")
		if err != nil {
			return err
		}
		checked := make(map[id.ParticipantID]struct{})
		for i, e := range entries {
			if !calendar.Contains(training, calendar.DayNumber(e.Date, training.StartDate)) {
				return dErrors.New(dErrors.CodeValidation,
					fmt.Sprintf("entry %d: %s is outside %s to %s", i, e.Date, training.StartDate, training.EndDate))
			}
			if _, ok := checked[e.ParticipantID]; !ok {
				if err := requireEnrolled(ctx, tx.Enrollments, e.ParticipantID, trainingID); err != nil {
					return err
				}
				checked[e.ParticipantID] = struct{}{}
			}
			if err := upsertCell(ctx, tx.Attendance, trainingID, e, reason, actor, now); err != nil {
				return err
			}
		}
		if err := tx.Audit.Append(ctx, audit.Event{
			Timestamp:  now,
			ActorID:    actor.UserID,
			ActorName:  actor.Name,
			Action:     string(audit.EventAttendanceBulkUpdated),
			Subject:    training.Code,
			TrainingID: trainingID.String(),
			Detail:     fmt.Sprintf("%d cells: %s", len(entries), reason),
			RequestID:  requestcontext.RequestID(ctx),
		}); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write attendance audit")
		}
		return nil
	})
	if err != nil {
		return 0, translate(err, "training not found", "update attendance")
	}

	s.invalidateGrids(ctx, trainingID)
	return len(entries), nil
}

func upsertCell(ctx context.Context, store AttendanceStore, trainingID id.TrainingID, e BulkEntry, reason string, actor models.Actor, now time.Time) error {
	key := models.AttendanceKey{TrainingID: trainingID, ParticipantID: e.ParticipantID, Date: e.Date}
	record, err := store.FindByKey(ctx, key)
	switch {
	case err == nil:
	case errors.Is(err, sentinel.ErrNotFound):
		record = &models.AttendanceRecord{
			ID:            id.NewAttendanceID(),
			TrainingID:    trainingID,
			ParticipantID: e.ParticipantID,
			Date:          e.Date,
			CreatedAt:     now,
		}
	default:
		return translate(err, "attendance not found", "load attendance")
	}

	record.MorningIn = e.MorningIn
	record.MorningOut = e.MorningOut
	record.AfternoonIn = e.AfternoonIn
	record.AfternoonOut = e.AfternoonOut
	record.Status = e.Status
	record.Manual = models.ManualEntry{Manual: true, MarkedBy: actor.UserID, MarkedByName: actor.Name, Reason: reason}
	record.UpdatedAt = now
	return translate(store.Upsert(ctx, record), "attendance not found", "save attendance")
}
