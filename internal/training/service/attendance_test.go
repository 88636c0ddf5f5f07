package service_test

import (
	"time"

	"roster/internal/training/models"
	"roster/internal/training/service"
	id "roster/pkg/domain"
	dErrors "roster/pkg/domain-errors"
	"roster/pkg/platform/audit"
	"roster/pkg/requestcontext"
)

func (s *ServiceSuite) TestCheckIn() {
	p := s.participant("Dara")
	s.enroll(p, s.a)

	morning := time.Date(2025, time.January, 2, 7, 55, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(s.ctx, morning)
	ctx = requestcontext.WithDevice(ctx, "Safari 17 on iPhone")
	acc := 12.5
	loc := &models.Location{Latitude: 11.55, Longitude: 104.92, Accuracy: &acc}

	first, err := s.service.CheckIn(ctx, s.a.ID, p.ID, models.SessionMorningIn, loc)
	s.Require().NoError(err)
	s.Equal(models.NewDate(2025, time.January, 2), first.Date)
	s.Equal(models.StatusPresent, first.Status)
	s.Equal("Safari 17 on iPhone", first.Device)
	at, ok := first.MorningIn.Time()
	s.True(ok)
	s.True(morning.Equal(at))

	s.Run("later punches update the same record", func() {
		evening := requestcontext.WithTime(s.ctx, morning.Add(9*time.Hour))
		second, err := s.service.CheckIn(evening, s.a.ID, p.ID, models.SessionAfternoonOut, nil)
		s.Require().NoError(err)
		s.Equal(first.ID, second.ID)
		s.True(second.MorningIn.IsSet())
		s.True(second.AfternoonOut.IsSet())
		s.Require().NotNil(second.Location)
		s.Equal(11.55, second.Location.Latitude)
		s.Len(s.records(p, s.a), 1)
	})

	s.Run("not enrolled", func() {
		_, err := s.service.CheckIn(ctx, s.b.ID, p.ID, models.SessionMorningIn, nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	s.Run("unknown session", func() {
		_, err := s.service.CheckIn(ctx, s.a.ID, p.ID, models.Session("lunch"), nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown training", func() {
		_, err := s.service.CheckIn(ctx, id.NewTrainingID(), p.ID, models.SessionMorningIn, nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestBulkUpdateAttendance() {
	p := s.participant("Keo")
	s.enroll(p, s.a)
	existing := s.record(p, s.a, s.day(s.a, 1), models.StatusPresent)

	nine := models.PunchAt(time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC))
	n, err := s.service.BulkUpdateAttendance(s.ctx, s.a.ID, []service.BulkEntry{
		{ParticipantID: p.ID, Date: s.day(s.a, 1), MorningIn: nine, Status: models.StatusLate},
		{ParticipantID: p.ID, Date: s.day(s.a, 2), Status: models.StatusAbsent},
	}, "", s.actor)
	s.Require().NoError(err)
	s.Equal(2, n)

	list := s.records(p, s.a)
	s.Require().Len(list, 2)
	s.Equal(existing.ID, list[0].ID)
	s.Equal(models.StatusLate, list[0].Status)
	s.Equal("Chrome 120 on Android", list[0].Device, "device survives a grid edit")
	s.Equal(nine, list[0].MorningIn)
	s.Equal(models.StatusAbsent, list[1].Status)
	for _, r := range list {
		s.True(r.Manual.Manual)
		s.Equal("Updated via attendance grid", r.Manual.Reason)
		s.Equal(s.actor.Name, r.Manual.MarkedByName)
	}

	events, err := s.outbox.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(string(audit.EventAttendanceBulkUpdated), events[0].Action)

	s.Run("a date outside the training rejects the batch", func() {
		_, err := s.service.BulkUpdateAttendance(s.ctx, s.a.ID, []service.BulkEntry{
			{ParticipantID: p.ID, Date: s.day(s.a, 3), Status: models.StatusPresent},
			{ParticipantID: p.ID, Date: s.day(s.a, 11), Status: models.StatusPresent},
		}, "fix", s.actor)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Len(s.records(p, s.a), 2)
	})

	s.Run("participant not enrolled", func() {
		stranger := s.participant("Stranger")
		_, err := s.service.BulkUpdateAttendance(s.ctx, s.a.ID, []service.BulkEntry{
			{ParticipantID: stranger.ID, Date: s.day(s.a, 1), Status: models.StatusPresent},
		}, "", s.actor)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	s.Run("unknown status", func() {
		_, err := s.service.BulkUpdateAttendance(s.ctx, s.a.ID, []service.BulkEntry{
			{ParticipantID: p.ID, Date: s.day(s.a, 1), Status: "MAYBE"},
		}, "", s.actor)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}
