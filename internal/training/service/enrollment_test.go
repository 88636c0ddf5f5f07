package service_test

import (
	"roster/internal/training/models"
	id "roster/pkg/domain"
	dErrors "roster/pkg/domain-errors"
	"roster/pkg/platform/audit"
)

func (s *ServiceSuite) TestEnroll() {
	p := s.participant("Vanna")

	s.Run("enrolls in every listed training", func() {
		created, err := s.service.Enroll(s.ctx, p.ID, []id.TrainingID{s.a.ID, s.b.ID, s.a.ID}, "", s.actor)
		s.Require().NoError(err)
		s.Require().Len(created, 2, "duplicate training ids collapse")
		s.Equal(models.RegistrationManual, created[0].RegistrationMethod)
		s.Equal(1, s.reload(s.a).CurrentParticipants)
		s.Equal(1, s.reload(s.b).CurrentParticipants)

		events, err := s.outbox.ListAll(s.ctx)
		s.Require().NoError(err)
		s.Len(events, 2)
		s.Equal(string(audit.EventEnrollmentCreated), events[0].Action)
	})

	s.Run("already enrolled rolls back the whole request", func() {
		c := s.training("TRN-C", s.a.StartDate, s.a.EndDate, 10)
		_, err := s.service.Enroll(s.ctx, p.ID, []id.TrainingID{c.ID, s.a.ID}, models.RegistrationQR, s.actor)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Equal(0, s.reload(c).CurrentParticipants)
		_, err = s.db.Enrollments().FindActive(s.ctx, p.ID, c.ID)
		s.Error(err)
	})

	s.Run("full training", func() {
		tiny := s.training("TRN-TINY", s.a.StartDate, s.a.EndDate, 1)
		s.enroll(s.participant("First"), tiny)

		_, err := s.service.Enroll(s.ctx, p.ID, []id.TrainingID{tiny.ID}, models.RegistrationQR, s.actor)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.EqualError(err, "training TRN-TINY is full")
	})

	s.Run("unknown participant", func() {
		_, err := s.service.Enroll(s.ctx, id.NewParticipantID(), []id.TrainingID{s.a.ID}, "", s.actor)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("no trainings", func() {
		_, err := s.service.Enroll(s.ctx, p.ID, nil, "", s.actor)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestCancelEnrollment() {
	p := s.participant("Pisey")
	e := s.enroll(p, s.a)

	cancelled, err := s.service.CancelEnrollment(s.ctx, e.ID, s.actor)
	s.Require().NoError(err)
	s.Equal(e.ID, cancelled.ID)
	s.Equal(0, s.reload(s.a).CurrentParticipants)

	_, err = s.db.Enrollments().FindByID(s.ctx, e.ID)
	s.Error(err)

	_, err = s.service.CancelEnrollment(s.ctx, e.ID, s.actor)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestListEnrollmentsByTraining() {
	s.enroll(s.participant("Zed"), s.a)
	s.enroll(s.participant("Amy"), s.a)

	list, err := s.service.ListEnrollmentsByTraining(s.ctx, s.a.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("Amy", list[0].Participant.Name)

	empty, err := s.service.ListEnrollmentsByTraining(s.ctx, s.b.ID)
	s.Require().NoError(err)
	s.NotNil(empty)
	s.Empty(empty)
}
