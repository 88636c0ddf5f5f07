package memory

import (
	"context"
	"sort"
	"time"

	"roster/internal/training/models"
	id "roster/pkg/domain"
	"roster/pkg/platform/sentinel"
)

type EnrollmentStore struct {
	binding
}

func (s *EnrollmentStore) FindByID(_ context.Context, enrollmentID id.EnrollmentID) (*models.Enrollment, error) {
	var out *models.Enrollment
	err := s.read(func(t *tables) error {
		e, ok := t.enrollments[enrollmentID]
		if !ok {
			return sentinel.ErrNotFound
		}
		cp := *e
		out = &cp
		return nil
	})
	return out, err
}

func (s *EnrollmentStore) FindActive(_ context.Context, participantID id.ParticipantID, trainingID id.TrainingID) (*models.Enrollment, error) {
	var out *models.Enrollment
	err := s.read(func(t *tables) error {
		e := findActive(t, participantID, trainingID)
		if e == nil {
			return sentinel.ErrNotFound
		}
		cp := *e
		out = &cp
		return nil
	})
	return out, err
}

func findActive(t *tables, participantID id.ParticipantID, trainingID id.TrainingID) *models.Enrollment {
	for _, e := range t.enrollments {
		if e.ParticipantID == participantID && e.TrainingID == trainingID && e.IsActive() {
			return e
		}
	}
	return nil
}

func (s *EnrollmentStore) ListActiveByTraining(_ context.Context, trainingID id.TrainingID) ([]models.EnrolledParticipant, error) {
	var out []models.EnrolledParticipant
	err := s.read(func(t *tables) error {
		for _, e := range t.enrollments {
			if e.TrainingID != trainingID || !e.IsActive() {
				continue
			}
			p, ok := t.participants[e.ParticipantID]
			if !ok {
				continue
			}
			out = append(out, models.EnrolledParticipant{Enrollment: *e, Participant: *p})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Participant, out[j].Participant
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID.String() < b.ID.String()
	})
	return out, err
}

func (s *EnrollmentStore) Create(_ context.Context, enrollment *models.Enrollment) error {
	return s.write(func(t *tables) error {
		if _, ok := t.enrollments[enrollment.ID]; ok {
			return sentinel.ErrConflict
		}
		if enrollment.IsActive() && findActive(t, enrollment.ParticipantID, enrollment.TrainingID) != nil {
			return sentinel.ErrConflict
		}
		cp := *enrollment
		t.enrollments[enrollment.ID] = &cp
		return nil
	})
}

func (s *EnrollmentStore) Reassign(_ context.Context, enrollmentID id.EnrollmentID, target id.TrainingID, updatedAt time.Time) error {
	return s.write(func(t *tables) error {
		e, ok := t.enrollments[enrollmentID]
		if !ok {
			return sentinel.ErrNotFound
		}
		if other := findActive(t, e.ParticipantID, target); other != nil && other.ID != e.ID {
			return sentinel.ErrConflict
		}
		e.TrainingID = target
		e.UpdatedAt = updatedAt
		return nil
	})
}

func (s *EnrollmentStore) Delete(_ context.Context, enrollmentID id.EnrollmentID) error {
	return s.write(func(t *tables) error {
		if _, ok := t.enrollments[enrollmentID]; !ok {
			return sentinel.ErrNotFound
		}
		delete(t.enrollments, enrollmentID)
		return nil
	})
}

// ListByTraining returns every enrollment of the training, active or not.
func (s *EnrollmentStore) ListByTraining(_ context.Context, trainingID id.TrainingID) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	err := s.read(func(t *tables) error {
		for _, e := range t.enrollments {
			if e.TrainingID == trainingID {
				cp := *e
				out = append(out, &cp)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RegistrationDate.Equal(out[j].RegistrationDate) {
			return out[i].RegistrationDate.Before(out[j].RegistrationDate)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, err
}
