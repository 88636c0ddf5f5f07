package service_test

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"roster/internal/training/models"
	id "roster/pkg/domain"
	dErrors "roster/pkg/domain-errors"
	"roster/pkg/platform/audit"
)

// seedWorkedExample enrolls a participant in a with attendance on days 1, 2, 3 and 8.
func (s *ServiceSuite) seedWorkedExample() (*models.Participant, *models.Enrollment) {
	p := s.participant("Sophea")
	e := s.enroll(p, s.a)
	for _, n := range []int{1, 2, 3, 8} {
		s.record(p, s.a, s.day(s.a, n), models.StatusPresent)
	}
	return p, e
}

func (s *ServiceSuite) TestPreviewTransfer() {
	p, _ := s.seedWorkedExample()

	preview, err := s.service.PreviewTransfer(s.ctx, p.ID, s.a.ID, s.b.ID)
	s.Require().NoError(err)

	s.Equal(4, preview.AttendanceRecordsCount)
	s.Equal(3, preview.RecordsThatWillTransfer)
	s.Equal("TRN-A", preview.SourceTraining.Code)
	s.Equal("TRN-B", preview.TargetTraining.Code)
	s.Equal(p.Name, preview.Participant.Name)

	s.Require().Len(preview.DayMapping, 4)
	want := []models.DayMapping{
		{SourceDate: models.NewDate(2025, time.January, 1), DayNumber: 1, TargetDate: models.NewDate(2025, time.February, 1), WillTransfer: true},
		{SourceDate: models.NewDate(2025, time.January, 2), DayNumber: 2, TargetDate: models.NewDate(2025, time.February, 2), WillTransfer: true},
		{SourceDate: models.NewDate(2025, time.January, 3), DayNumber: 3, TargetDate: models.NewDate(2025, time.February, 3), WillTransfer: true},
		{SourceDate: models.NewDate(2025, time.January, 8), DayNumber: 8, TargetDate: models.NewDate(2025, time.February, 8), WillTransfer: false},
	}
	s.Equal(want, preview.DayMapping)

	s.Run("preview writes nothing", func() {
		s.Len(s.records(p, s.a), 4)
		s.Empty(s.records(p, s.b))
		s.Equal(0, s.reload(s.b).CurrentParticipants)
	})
}

func (s *ServiceSuite) TestPreviewTransfer_Rejections() {
	p, _ := s.seedWorkedExample()
	other := s.participant("Other")
	s.enroll(other, s.a)
	s.enroll(other, s.b)

	cases := []struct {
		name        string
		participant id.ParticipantID
		source      id.TrainingID
		target      id.TrainingID
		code        dErrors.Code
		msg         string
	}{
		{"unknown participant", id.NewParticipantID(), s.a.ID, s.b.ID, dErrors.CodeNotFound, "participant not found"},
		{"unknown source", p.ID, id.NewTrainingID(), s.b.ID, dErrors.CodeNotFound, "source training not found"},
		{"unknown target", p.ID, s.a.ID, id.NewTrainingID(), dErrors.CodeNotFound, "target training not found"},
		{"same training", p.ID, s.a.ID, s.a.ID, dErrors.CodeValidation, "source and target training must differ"},
		{"already in target", other.ID, s.a.ID, s.b.ID, dErrors.CodeConflict, "participant is already enrolled in the target training"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.service.PreviewTransfer(s.ctx, tc.participant, tc.source, tc.target)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, tc.code), "got %v", err)
			s.EqualError(err, tc.msg)
		})
	}
}

func (s *ServiceSuite) TestExecuteTransfer() {
	p, enrollment := s.seedWorkedExample()

	preview, err := s.service.PreviewTransfer(s.ctx, p.ID, s.a.ID, s.b.ID)
	s.Require().NoError(err)

	result, err := s.service.ExecuteTransfer(s.ctx, p.ID, s.a.ID, s.b.ID, s.actor)
	s.Require().NoError(err)

	s.Run("result matches the preview", func() {
		s.Equal(enrollment.ID, result.EnrollmentID)
		s.Equal(preview.RecordsThatWillTransfer, result.TransferredAttendanceRecords)
		s.Equal(preview.AttendanceRecordsCount, result.TotalOriginalRecords)
		s.Equal(preview.DayMapping, result.DayMapping)
		s.Zero(result.SkippedCollisions)
	})

	s.Run("records move to the target calendar", func() {
		s.Empty(s.records(p, s.a))
		moved := s.records(p, s.b)
		s.Require().Len(moved, 3)
		for i, r := range moved {
			s.Equal(models.NewDate(2025, time.February, i+1), r.Date)
			s.Equal(models.StatusPresent, r.Status)
			s.Equal("Chrome 120 on Android", r.Device)
			s.True(r.MorningIn.IsSet())
			s.True(r.Manual.Manual)
			s.Equal(s.actor.UserID, r.Manual.MarkedBy)
			s.Equal("Transferred from TRN-A", r.Manual.Reason)
		}
	})

	s.Run("enrollment keeps its id and points at the target", func() {
		moved, err := s.db.Enrollments().FindByID(s.ctx, enrollment.ID)
		s.Require().NoError(err)
		s.Equal(s.b.ID, moved.TrainingID)
		s.True(moved.IsActive())
	})

	s.Run("seat moves with the participant", func() {
		s.Equal(0, s.reload(s.a).CurrentParticipants)
		s.Equal(1, s.reload(s.b).CurrentParticipants)
	})

	s.Run("audit and metrics", func() {
		events, err := s.outbox.ListAll(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.Equal(string(audit.EventParticipantTransferred), events[0].Action)
		s.Equal(audit.CategoryCompliance, events[0].Category)
		s.Equal(p.ID.String(), events[0].Subject)

		s.Equal(1.0, testutil.ToFloat64(s.metrics.TransfersExecuted))
		s.Equal(3.0, testutil.ToFloat64(s.metrics.RecordsCarried))
		s.Equal(1.0, testutil.ToFloat64(s.metrics.RecordsDropped.WithLabelValues("out_of_range")))
	})

	s.Run("repeating the transfer is a conflict and changes nothing", func() {
		_, err := s.service.ExecuteTransfer(s.ctx, p.ID, s.a.ID, s.b.ID, s.actor)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Len(s.records(p, s.b), 3)
		s.Equal(1, s.reload(s.b).CurrentParticipants)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.TransfersRejected.WithLabelValues(string(dErrors.CodeConflict))))
	})
}

func (s *ServiceSuite) TestExecuteTransfer_Collisions() {
	p, _ := s.seedWorkedExample()
	// Left over from an earlier stint in b.
	existing := s.record(p, s.b, models.NewDate(2025, time.February, 2), models.StatusExcused)

	result, err := s.service.ExecuteTransfer(s.ctx, p.ID, s.a.ID, s.b.ID, s.actor)
	s.Require().NoError(err)
	s.Equal(2, result.TransferredAttendanceRecords)
	s.Equal(1, result.SkippedCollisions)
	s.Equal(4, result.TotalOriginalRecords)

	got, err := s.db.Attendance().FindByKey(s.ctx, existing.Key())
	s.Require().NoError(err)
	s.Equal(existing.ID, got.ID)
	s.Equal(models.StatusExcused, got.Status)
	s.False(got.Manual.Manual)

	s.Len(s.records(p, s.b), 3)
	s.Empty(s.records(p, s.a))
}

// A record dated before the source start has day number 0 or less. It is
// retired with the source records and never lands on the target calendar,
// even though its mapped date is a real date just before the target start.
func (s *ServiceSuite) TestTransfer_RecordBeforeSourceStart() {
	p := s.participant("Early")
	s.enroll(p, s.a)
	s.record(p, s.a, s.day(s.a, 0), models.StatusPresent)
	s.record(p, s.a, s.day(s.a, 2), models.StatusLate)

	preview, err := s.service.PreviewTransfer(s.ctx, p.ID, s.a.ID, s.b.ID)
	s.Require().NoError(err)
	s.Equal(2, preview.AttendanceRecordsCount)
	s.Equal(1, preview.RecordsThatWillTransfer)
	s.Require().Len(preview.DayMapping, 2)
	s.Equal(models.DayMapping{
		SourceDate:   models.NewDate(2024, time.December, 31),
		DayNumber:    0,
		TargetDate:   models.NewDate(2025, time.January, 31),
		WillTransfer: false,
	}, preview.DayMapping[0])
	s.True(preview.DayMapping[1].WillTransfer)

	result, err := s.service.ExecuteTransfer(s.ctx, p.ID, s.a.ID, s.b.ID, s.actor)
	s.Require().NoError(err)
	s.Equal(preview.DayMapping, result.DayMapping)
	s.Equal(2, result.TotalOriginalRecords)
	s.Equal(1, result.TransferredAttendanceRecords)
	s.Zero(result.SkippedCollisions)

	s.Empty(s.records(p, s.a))
	moved := s.records(p, s.b)
	s.Require().Len(moved, 1)
	s.Equal(models.NewDate(2025, time.February, 2), moved[0].Date)
	s.Equal(models.StatusLate, moved[0].Status)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.RecordsDropped.WithLabelValues("out_of_range")))
}

func (s *ServiceSuite) TestExecuteTransfer_NotEnrolledInSource() {
	p := s.participant("Drifter")
	s.record(p, s.a, s.day(s.a, 1), models.StatusPresent)

	_, err := s.service.ExecuteTransfer(s.ctx, p.ID, s.a.ID, s.b.ID, s.actor)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.EqualError(err, "participant is not enrolled in the source training")
	s.Len(s.records(p, s.a), 1)
}

func (s *ServiceSuite) TestExecuteTransfer_NoRecords() {
	p := s.participant("Fresh")
	s.enroll(p, s.a)

	result, err := s.service.ExecuteTransfer(s.ctx, p.ID, s.a.ID, s.b.ID, s.actor)
	s.Require().NoError(err)
	s.Zero(result.TotalOriginalRecords)
	s.NotNil(result.DayMapping)
	s.Equal(1, s.reload(s.b).CurrentParticipants)
}

func (s *ServiceSuite) TestExecuteTransfer_Concurrent() {
	p, _ := s.seedWorkedExample()

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.ExecuteTransfer(s.ctx, p.ID, s.a.ID, s.b.ID, s.actor)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case dErrors.HasCode(err, dErrors.CodeConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, succeeded)
	s.Equal(workers-1, conflicts)
	s.Len(s.records(p, s.b), 3)
	s.Equal(0, s.reload(s.a).CurrentParticipants)
	s.Equal(1, s.reload(s.b).CurrentParticipants)
}

func (s *ServiceSuite) TestListTransferTargets() {
	draft := s.training("TRN-C", models.NewDate(2025, time.March, 1), models.NewDate(2025, time.March, 3), 10)
	done := s.training("TRN-D", models.NewDate(2025, time.April, 1), models.NewDate(2025, time.April, 3), 10)
	done.Status = models.TrainingStatusCompleted
	s.Require().NoError(s.db.Trainings().Save(s.ctx, done))
	draft.Status = models.TrainingStatusDraft
	s.Require().NoError(s.db.Trainings().Save(s.ctx, draft))

	list, err := s.service.ListTransferTargets(s.ctx, s.a.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("TRN-C", list[0].Code)
	s.Equal("TRN-B", list[1].Code)
}
