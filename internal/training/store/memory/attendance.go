package memory

import (
	"context"
	"sort"

	"roster/internal/training/models"
	id "roster/pkg/domain"
	"roster/pkg/platform/sentinel"
)

type AttendanceStore struct {
	binding
}

func sortByDate(records []*models.AttendanceRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date.Before(records[j].Date)
		}
		return records[i].ParticipantID.String() < records[j].ParticipantID.String()
	})
}

func (s *AttendanceStore) ListByTrainingAndParticipant(_ context.Context, trainingID id.TrainingID, participantID id.ParticipantID) ([]*models.AttendanceRecord, error) {
	var out []*models.AttendanceRecord
	err := s.read(func(t *tables) error {
		for _, r := range t.attendance {
			if r.TrainingID == trainingID && r.ParticipantID == participantID {
				out = append(out, r.Clone())
			}
		}
		return nil
	})
	sortByDate(out)
	return out, err
}

func (s *AttendanceStore) ListByTraining(_ context.Context, trainingID id.TrainingID) ([]*models.AttendanceRecord, error) {
	var out []*models.AttendanceRecord
	err := s.read(func(t *tables) error {
		for _, r := range t.attendance {
			if r.TrainingID == trainingID {
				out = append(out, r.Clone())
			}
		}
		return nil
	})
	sortByDate(out)
	return out, err
}

func (s *AttendanceStore) DeleteAll(_ context.Context, trainingID id.TrainingID, participantID id.ParticipantID) (int, error) {
	var n int
	err := s.write(func(t *tables) error {
		for recordID, r := range t.attendance {
			if r.TrainingID == trainingID && r.ParticipantID == participantID {
				delete(t.byKey, r.Key())
				delete(t.attendance, recordID)
				n++
			}
		}
		return nil
	})
	return n, err
}

func (s *AttendanceStore) FindByKey(_ context.Context, key models.AttendanceKey) (*models.AttendanceRecord, error) {
	var out *models.AttendanceRecord
	err := s.read(func(t *tables) error {
		recordID, ok := t.byKey[key]
		if !ok {
			return sentinel.ErrNotFound
		}
		out = t.attendance[recordID].Clone()
		return nil
	})
	return out, err
}

func (s *AttendanceStore) Create(_ context.Context, record *models.AttendanceRecord) error {
	return s.write(func(t *tables) error {
		if _, taken := t.byKey[record.Key()]; taken {
			return sentinel.ErrConflict
		}
		if _, taken := t.attendance[record.ID]; taken {
			return sentinel.ErrConflict
		}
		t.attendance[record.ID] = record.Clone()
		t.byKey[record.Key()] = record.ID
		return nil
	})
}

func (s *AttendanceStore) Upsert(_ context.Context, record *models.AttendanceRecord) error {
	return s.write(func(t *tables) error {
		cp := record.Clone()
		if existingID, ok := t.byKey[record.Key()]; ok {
			existing := t.attendance[existingID]
			cp.ID = existing.ID
			cp.CreatedAt = existing.CreatedAt
		}
		t.attendance[cp.ID] = cp
		t.byKey[cp.Key()] = cp.ID
		record.ID = cp.ID
		record.CreatedAt = cp.CreatedAt
		return nil
	})
}
