package service_test

import (
	"roster/internal/training/models"
	id "roster/pkg/domain"
	dErrors "roster/pkg/domain-errors"
)

func (s *ServiceSuite) TestBuildAttendanceGrid() {
	bopha := s.participant("Bopha")
	arun := s.participant("Arun")
	gone := s.participant("Gone")
	s.enroll(bopha, s.a)
	s.enroll(arun, s.a)

	s.record(bopha, s.a, s.day(s.a, 1), models.StatusPresent)
	s.record(bopha, s.a, s.day(s.a, 2), models.StatusLate)
	// Records of participants without an active enrollment stay out of the grid.
	s.record(gone, s.a, s.day(s.a, 1), models.StatusPresent)

	grid, err := s.service.BuildAttendanceGrid(s.ctx, s.a.ID)
	s.Require().NoError(err)

	s.Run("one column per training day", func() {
		s.Require().Len(grid.Days, 10)
		s.Equal(1, grid.Days[0].DayNumber)
		s.Equal(s.a.StartDate, grid.Days[0].Date)
		s.Equal(s.a.EndDate, grid.Days[9].Date)
	})

	s.Run("one row per active enrollment ordered by name", func() {
		s.Require().Len(grid.Participants, 2)
		s.Equal("Arun", grid.Participants[0].Name)
		s.Equal("Bopha", grid.Participants[1].Name)
	})

	s.Run("cells only where records exist", func() {
		s.NotNil(grid.Participants[0].Attendance)
		s.Empty(grid.Participants[0].Attendance)

		cells := grid.Participants[1].Attendance
		s.Len(cells, 2)
		s.Equal(models.StatusLate, cells["2025-01-02"].Status)
		_, ok := cells["2025-01-03"]
		s.False(ok, "a missing cell is not ABSENT")
	})

	s.Run("tallies count active participants only", func() {
		s.Equal(1, grid.Tallies[0].Present)
		s.Equal(1, grid.Tallies[1].Late)
		s.Zero(grid.Tallies[2].Present + grid.Tallies[2].Absent)
	})
}

func (s *ServiceSuite) TestBuildAttendanceGrid_UnknownTraining() {
	_, err := s.service.BuildAttendanceGrid(s.ctx, id.NewTrainingID())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
