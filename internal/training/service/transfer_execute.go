package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"roster/internal/training/models"
	id "roster/pkg/domain"
	dErrors "roster/pkg/domain-errors"
	"roster/pkg/platform/audit"
	"roster/pkg/platform/sentinel"
	"roster/pkg/requestcontext"
)

// transferOutcome is what one unit of work did.
type transferOutcome struct {
	result     models.TransferResult
	outOfRange int
	source     *models.Training
	target     *models.Training
}

// ExecuteTransfer moves the participant's enrollment from source to target and
// recreates their attendance on the target calendar. Every precondition is
// checked again inside the unit of work; nothing is written unless all of it
// commits.
func (s *Service) ExecuteTransfer(ctx context.Context, participantID id.ParticipantID, sourceID, targetID id.TrainingID, actor models.Actor) (_ *models.TransferResult, err error) {
	ctx, finish := s.startSpan(ctx, "training.ExecuteTransfer",
		attribute.String("participant_id", participantID.String()),
		attribute.String("source_training_id", sourceID.String()),
		attribute.String("target_training_id", targetID.String()),
	)
	defer func() { finish(err) }()

	start := time.Now()
	defer func() {
		s.metrics.ObserveTransferLatency(time.Since(start))
		if err != nil {
			s.metrics.IncTransferRejected(string(dErrors.CodeOf(err)))
		}
	}()

	// Cheap rejection before taking any lock.
	if _, err := checkTransfer(ctx, s.readers(), participantID, sourceID, targetID); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	var out *transferOutcome
	err = s.uow.RunInTx(ctx, func(tx TxStores) error {
		var txErr error
		out, txErr = executeTransfer(ctx, tx, participantID, sourceID, targetID, actor, now)
		return txErr
	})
	if err != nil {
		s.logger.WarnContext(ctx, "transfer rejected",
			"participant_id", participantID,
			"source_training_id", sourceID,
			"target_training_id", targetID,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, translate(err, "transfer subject not found", "execute transfer")
	}

	s.invalidateGrids(ctx, sourceID, targetID)
	s.metrics.IncTransferExecuted(out.result.TransferredAttendanceRecords, out.outOfRange, out.result.SkippedCollisions)
	s.logger.InfoContext(ctx, "participant transferred",
		"participant_id", participantID,
		"source_training", out.source.Code,
		"target_training", out.target.Code,
		"carried", out.result.TransferredAttendanceRecords,
		"original", out.result.TotalOriginalRecords,
		"collisions", out.result.SkippedCollisions,
		"request_id", requestcontext.RequestID(ctx),
	)
	return &out.result, nil
}

func executeTransfer(ctx context.Context, tx TxStores, participantID id.ParticipantID, sourceID, targetID id.TrainingID, actor models.Actor, now time.Time) (*transferOutcome, error) {
	if err := tx.Locker.LockTrainings(ctx, sourceID, targetID); err != nil {
		return nil, translate(err, "training not found", "lock trainings")
	}

	in, err := checkTransfer(ctx, transferReaders{
		trainings:    tx.Trainings,
		participants: tx.Participants,
		enrollments:  tx.Enrollments,
	}, participantID, sourceID, targetID)
	if err != nil {
		return nil, err
	}

	enrollment, err := tx.Enrollments.FindActive(ctx, participantID, sourceID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "participant is not enrolled in the source training")
		}
		return nil, translate(err, "enrollment not found", "load source enrollment")
	}
	if err := tx.Locker.LockEnrollment(ctx, enrollment.ID); err != nil {
		return nil, translate(err, "enrollment not found", "lock enrollment")
	}

	records, err := tx.Attendance.ListByTrainingAndParticipant(ctx, sourceID, participantID)
	if err != nil {
		return nil, translate(err, "attendance not found", "list source attendance")
	}
	mapping := mapRecords(records, in.source, in.target)

	if err := tx.Enrollments.Reassign(ctx, enrollment.ID, targetID, now); err != nil {
		return nil, translate(err, "enrollment not found", "reassign enrollment")
	}

	deleted, err := tx.Attendance.DeleteAll(ctx, sourceID, participantID)
	if err != nil {
		return nil, translate(err, "attendance not found", "delete source attendance")
	}
	if deleted != len(records) {
		return nil, dErrors.New(dErrors.CodeConflict, "source attendance changed during transfer")
	}

	out := &transferOutcome{source: in.source, target: in.target}
	reason := "Transferred from " + in.source.Code
	for i, r := range records {
		m := mapping[i]
		if !m.WillTransfer {
			out.outOfRange++
			continue
		}
		key := models.AttendanceKey{TrainingID: targetID, ParticipantID: participantID, Date: m.TargetDate}
		_, err := tx.Attendance.FindByKey(ctx, key)
		if err == nil {
			out.result.SkippedCollisions++
			continue
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			return nil, translate(err, "attendance not found", "check target attendance")
		}

		moved := carryRecord(r, key, actor, reason, now)
		if err := tx.Attendance.Create(ctx, moved); err != nil {
			return nil, translate(err, "attendance not found", "create target attendance")
		}
		out.result.TransferredAttendanceRecords++
	}

	if err := tx.Counters.IncrementParticipants(ctx, sourceID, -1); err != nil {
		return nil, translate(err, "source training not found", "decrement source participants")
	}
	if err := tx.Counters.IncrementParticipants(ctx, targetID, 1); err != nil {
		return nil, translate(err, "target training not found", "increment target participants")
	}

	if err := tx.Audit.Append(ctx, audit.Event{
		Timestamp:  now,
		ActorID:    actor.UserID,
		ActorName:  actor.Name,
		Action:     string(audit.EventParticipantTransferred),
		Subject:    participantID.String(),
		TrainingID: targetID.String(),
		Detail: fmt.Sprintf("%s -> %s: %d of %d records carried, %d collisions",
			in.source.Code, in.target.Code, out.result.TransferredAttendanceRecords, len(records), out.result.SkippedCollisions),
		RequestID: requestcontext.RequestID(ctx),
	}); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to write transfer audit")
	}

	out.result.EnrollmentID = enrollment.ID
	out.result.TotalOriginalRecords = len(records)
	out.result.DayMapping = mapping
	return out, nil
}

// carryRecord builds the target-side copy of r: a new record with the same
// punches, status, location and device, marked as a manual entry by actor.
func carryRecord(r *models.AttendanceRecord, key models.AttendanceKey, actor models.Actor, reason string, now time.Time) *models.AttendanceRecord {
	c := r.Clone()
	c.ID = id.NewAttendanceID()
	c.TrainingID = key.TrainingID
	c.ParticipantID = key.ParticipantID
	c.Date = key.Date
	c.Manual = models.ManualEntry{
		Manual:       true,
		MarkedBy:     actor.UserID,
		MarkedByName: actor.Name,
		Reason:       reason,
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	return c
}
