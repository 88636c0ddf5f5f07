package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"roster/internal/training/calendar"
	"roster/internal/training/models"
	id "roster/pkg/domain"
)

// BuildAttendanceGrid returns one row per actively enrolled participant and
// one column per training day. Cells exist only where a record exists.
func (s *Service) BuildAttendanceGrid(ctx context.Context, trainingID id.TrainingID) (_ *models.AttendanceGrid, err error) {
	ctx, finish := s.startSpan(ctx, "training.BuildAttendanceGrid", attribute.String("training_id", trainingID.String()))
	defer func() { finish(err) }()

	if _, err := loadTraining(ctx, s.trainings, trainingID, ""); err != nil {
		return nil, err
	}

	// generation must be read before the snapshot: a mutation that commits
	// after this point bumps it, and the Set below is then refused.
	var (
		generation uint64
		cacheable  bool
	)
	if s.cache != nil {
		grid, ok, cacheErr := s.cache.Get(ctx, trainingID)
		switch {
		case cacheErr != nil:
			s.metrics.IncGridCache("error")
			s.logger.WarnContext(ctx, "grid cache read failed", "training_id", trainingID, "error", cacheErr)
		case ok:
			s.metrics.IncGridCache("hit")
			return grid, nil
		default:
			s.metrics.IncGridCache("miss")
		}
		generation, cacheErr = s.cache.Generation(ctx, trainingID)
		if cacheErr != nil {
			s.logger.WarnContext(ctx, "grid cache generation read failed", "training_id", trainingID, "error", cacheErr)
		} else {
			cacheable = true
		}
	}

	start := time.Now()
	var grid *models.AttendanceGrid
	err = s.uow.RunReadOnly(ctx, func(stores Stores) error {
		training, err := loadTraining(ctx, stores.Trainings, trainingID, "")
		if err != nil {
			return err
		}
		enrolled, err := stores.Enrollments.ListActiveByTraining(ctx, trainingID)
		if err != nil {
			return translate(err, "training not found", "list enrollments")
		}
		records, err := stores.Attendance.ListByTraining(ctx, trainingID)
		if err != nil {
			return translate(err, "training not found", "list attendance")
		}
		grid = assembleGrid(training, enrolled, records)
		return nil
	})
	if err != nil {
		return nil, translate(err, "training not found", "build grid")
	}
	s.metrics.ObserveGridBuild(time.Since(start))

	if cacheable {
		stored, err := s.cache.Set(ctx, grid, generation)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "grid cache write failed", "training_id", trainingID, "error", err)
		case !stored:
			s.logger.DebugContext(ctx, "grid changed during build, not cached", "training_id", trainingID)
		}
	}
	return grid, nil
}

func assembleGrid(training *models.Training, enrolled []models.EnrolledParticipant, records []*models.AttendanceRecord) *models.AttendanceGrid {
	days := calendar.Days(training)
	grid := &models.AttendanceGrid{
		Training:     *training,
		Days:         make([]models.GridDay, 0, len(days)),
		Participants: make([]models.GridParticipant, 0, len(enrolled)),
		Tallies:      make([]models.DayTally, 0, len(days)),
	}
	tallyIndex := make(map[models.Date]int, len(days))
	for i, d := range days {
		grid.Days = append(grid.Days, models.GridDay{DayNumber: d.Number, Date: d.Date})
		grid.Tallies = append(grid.Tallies, models.DayTally{Date: d.Date})
		tallyIndex[d.Date] = i
	}

	cells := make(map[id.ParticipantID]map[string]models.GridCell)
	for _, r := range records {
		byDate, ok := cells[r.ParticipantID]
		if !ok {
			byDate = make(map[string]models.GridCell)
			cells[r.ParticipantID] = byDate
		}
		byDate[r.Date.String()] = models.CellFor(r)
	}

	for _, e := range enrolled {
		attendance := cells[e.Participant.ID]
		if attendance == nil {
			attendance = map[string]models.GridCell{}
		}
		for date, cell := range attendance {
			d, err := models.ParseDate(date)
			if err != nil {
				continue
			}
			if i, ok := tallyIndex[d]; ok {
				grid.Tallies[i].Add(cell.Status)
			}
		}
		grid.Participants = append(grid.Participants, models.GridParticipant{
			ParticipantID: e.Participant.ID,
			EnrollmentID:  e.Enrollment.ID,
			Code:          e.Participant.Code,
			Name:          e.Participant.Name,
			NameEnglish:   e.Participant.NameEnglish,
			Attendance:    attendance,
		})
	}
	return grid
}
