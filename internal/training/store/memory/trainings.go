package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"roster/internal/training/models"
	id "roster/pkg/domain"
	"roster/pkg/platform/sentinel"
)

// TrainingStore serves training reads and is the participant counter.
type TrainingStore struct {
	binding
}

func (s *TrainingStore) FindByID(_ context.Context, trainingID id.TrainingID) (*models.Training, error) {
	var out *models.Training
	err := s.read(func(t *tables) error {
		tr, ok := t.trainings[trainingID]
		if !ok || tr.Deleted {
			return sentinel.ErrNotFound
		}
		cp := *tr
		out = &cp
		return nil
	})
	return out, err
}

func (s *TrainingStore) ListTransferTargets(_ context.Context, exclude id.TrainingID) ([]*models.Training, error) {
	var out []*models.Training
	err := s.read(func(t *tables) error {
		for _, tr := range t.trainings {
			if tr.ID == exclude || !tr.AcceptsTransfers() {
				continue
			}
			cp := *tr
			out = append(out, &cp)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartDate != out[j].StartDate {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, err
}

func (s *TrainingStore) IncrementParticipants(_ context.Context, trainingID id.TrainingID, delta int) error {
	if delta != 1 && delta != -1 {
		return fmt.Errorf("participant delta %d: %w", delta, sentinel.ErrInvalidState)
	}
	return s.write(func(t *tables) error {
		tr, ok := t.trainings[trainingID]
		if !ok || tr.Deleted {
			return sentinel.ErrNotFound
		}
		if tr.CurrentParticipants+delta < 0 {
			return fmt.Errorf("participant counter of %s below zero: %w", trainingID, sentinel.ErrInvalidState)
		}
		tr.CurrentParticipants += delta
		tr.UpdatedAt = time.Now()
		return nil
	})
}

// Save inserts or replaces a training. It is the admin path, not part of the
// core, and never touches CurrentParticipants of an existing row.
func (s *TrainingStore) Save(_ context.Context, training *models.Training) error {
	return s.write(func(t *tables) error {
		cp := *training
		if existing, ok := t.trainings[training.ID]; ok {
			cp.CurrentParticipants = existing.CurrentParticipants
		}
		t.trainings[training.ID] = &cp
		return nil
	})
}

// ParticipantStore serves participant reads.
type ParticipantStore struct {
	binding
}

func (s *ParticipantStore) FindByID(_ context.Context, participantID id.ParticipantID) (*models.Participant, error) {
	var out *models.Participant
	err := s.read(func(t *tables) error {
		p, ok := t.participants[participantID]
		if !ok {
			return sentinel.ErrNotFound
		}
		cp := *p
		out = &cp
		return nil
	})
	return out, err
}

func (s *ParticipantStore) Save(_ context.Context, participant *models.Participant) error {
	return s.write(func(t *tables) error {
		cp := *participant
		t.participants[participant.ID] = &cp
		return nil
	})
}
