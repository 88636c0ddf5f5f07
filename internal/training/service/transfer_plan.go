package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"roster/internal/training/calendar"
	"roster/internal/training/models"
	id "roster/pkg/domain"
	dErrors "roster/pkg/domain-errors"
	"roster/pkg/platform/sentinel"
)

// transferInputs is everything a transfer is decided on. Preview and execute
// both build it with checkTransfer and map it with mapRecords.
type transferInputs struct {
	participant *models.Participant
	source      *models.Training
	target      *models.Training
}

type transferReaders struct {
	trainings    TrainingStore
	participants ParticipantLookup
	enrollments  EnrollmentStore
}

// checkTransfer enforces, in order: participant exists, source exists, target
// exists, source differs from target, and no active enrollment in target.
func checkTransfer(ctx context.Context, r transferReaders, participantID id.ParticipantID, sourceID, targetID id.TrainingID) (*transferInputs, error) {
	participant, err := loadParticipant(ctx, r.participants, participantID)
	if err != nil {
		return nil, err
	}
	source, err := loadTraining(ctx, r.trainings, sourceID, "source")
	if err != nil {
		return nil, err
	}
	target, err := loadTraining(ctx, r.trainings, targetID, "target")
	if err != nil {
		return nil, err
	}
	if sourceID == targetID {
		return nil, dErrors.New(dErrors.CodeValidation, "source and target training must differ")
	}

	_, err = r.enrollments.FindActive(ctx, participantID, targetID)
	switch {
	case err == nil:
		return nil, dErrors.New(dErrors.CodeConflict, "participant is already enrolled in the target training")
	case !errors.Is(err, sentinel.ErrNotFound):
		return nil, translate(err, "enrollment not found", "check target enrollment")
	}
	return &transferInputs{participant: participant, source: source, target: target}, nil
}

// mapRecords re-expresses records (date ascending) on the target calendar.
func mapRecords(records []*models.AttendanceRecord, source, target *models.Training) []models.DayMapping {
	mapping := make([]models.DayMapping, 0, len(records))
	for _, r := range records {
		mapping = append(mapping, calendar.Mapping(r.Date, source, target))
	}
	return mapping
}

func countTransferable(mapping []models.DayMapping) int {
	n := 0
	for _, m := range mapping {
		if m.WillTransfer {
			n++
		}
	}
	return n
}

// PreviewTransfer reports, without writing anything, which of the
// participant's source records would survive a move to target and where each
// would land.
func (s *Service) PreviewTransfer(ctx context.Context, participantID id.ParticipantID, sourceID, targetID id.TrainingID) (_ *models.TransferPreview, err error) {
	ctx, finish := s.startSpan(ctx, "training.PreviewTransfer",
		attribute.String("participant_id", participantID.String()),
		attribute.String("source_training_id", sourceID.String()),
		attribute.String("target_training_id", targetID.String()),
	)
	defer func() { finish(err) }()

	in, err := checkTransfer(ctx, s.readers(), participantID, sourceID, targetID)
	if err != nil {
		return nil, err
	}

	records, err := s.attendance.ListByTrainingAndParticipant(ctx, sourceID, participantID)
	if err != nil {
		return nil, translate(err, "attendance not found", "list source attendance")
	}
	mapping := mapRecords(records, in.source, in.target)

	return &models.TransferPreview{
		Participant: models.ParticipantSummary{
			ID:          in.participant.ID,
			Name:        in.participant.Name,
			NameEnglish: in.participant.NameEnglish,
			Code:        in.participant.Code,
		},
		SourceTraining:          models.SummaryOf(in.source),
		TargetTraining:          models.SummaryOf(in.target),
		AttendanceRecordsCount:  len(records),
		RecordsThatWillTransfer: countTransferable(mapping),
		DayMapping:              mapping,
	}, nil
}

// ListTransferTargets lists trainings a participant could be moved into.
func (s *Service) ListTransferTargets(ctx context.Context, exclude id.TrainingID) ([]*models.Training, error) {
	list, err := s.trainings.ListTransferTargets(ctx, exclude)
	if err != nil {
		return nil, translate(err, "training not found", "list transfer targets")
	}
	if list == nil {
		list = []*models.Training{}
	}
	return list, nil
}

func (s *Service) readers() transferReaders {
	return transferReaders{trainings: s.trainings, participants: s.participants, enrollments: s.enrollments}
}
