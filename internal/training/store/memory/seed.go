package memory

import (
	"context"
	"time"

	"roster/internal/training/models"
	id "roster/pkg/domain"
)

// SeedDemo loads two overlapping trainings and a handful of participants so a
// fresh in-memory server has something to show.
func SeedDemo(ctx context.Context, db *DB) error {
	now := time.Now()
	today := models.DateOf(now)

	trainings := []*models.Training{
		{
			ID: id.NewTrainingID(), Code: "TRN-2025-001", Name: "Primary Mathematics Pedagogy",
			Status: models.TrainingStatusOngoing, StartDate: today.AddDays(-4), EndDate: today.AddDays(5),
			MaxParticipants: 50, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: id.NewTrainingID(), Code: "TRN-2025-002", Name: "Primary Mathematics Pedagogy (cohort B)",
			Status: models.TrainingStatusDraft, StartDate: today.AddDays(10), EndDate: today.AddDays(14),
			MaxParticipants: 40, CreatedAt: now, UpdatedAt: now,
		},
	}
	for _, t := range trainings {
		if err := db.Trainings().Save(ctx, t); err != nil {
			return err
		}
	}

	names := []string{"Chan Dara", "Keo Sophea", "Lim Vanna", "Sok Pisey"}
	for i, name := range names {
		p := &models.Participant{ID: id.NewParticipantID(), Code: "T-" + string(rune('A'+i)), Name: name}
		if err := db.Participants().Save(ctx, p); err != nil {
			return err
		}
		e := &models.Enrollment{
			ID: id.NewEnrollmentID(), TrainingID: trainings[0].ID, ParticipantID: p.ID,
			RegistrationDate: now, RegistrationMethod: models.RegistrationImport,
			Role: models.RoleParticipant, Status: models.EnrollmentActive, UpdatedAt: now,
		}
		if err := db.Enrollments().Create(ctx, e); err != nil {
			return err
		}
		if err := db.Counters().IncrementParticipants(ctx, trainings[0].ID, 1); err != nil {
			return err
		}
	}
	return nil
}
