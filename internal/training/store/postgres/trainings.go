package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"roster/internal/training/models"
	id "roster/pkg/domain"
	"roster/pkg/platform/sentinel"
	txcontext "roster/pkg/platform/tx"
)

// TrainingStore reads trainings and owns the participant counter.
type TrainingStore struct {
	q txcontext.Execer
}

const trainingColumns = `id, code, name, name_english, status, start_date, end_date,
	max_participants, current_participants, deleted, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanTraining(row scanner) (*models.Training, error) {
	var (
		t      models.Training
		tid    uuid.UUID
		status string
	)
	if err := row.Scan(&tid, &t.Code, &t.Name, &t.NameEnglish, &status, &t.StartDate, &t.EndDate,
		&t.MaxParticipants, &t.CurrentParticipants, &t.Deleted, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.ID = id.TrainingID(tid)
	t.Status = models.TrainingStatus(status)
	return &t, nil
}

func (s *TrainingStore) FindByID(ctx context.Context, trainingID id.TrainingID) (*models.Training, error) {
	query := `SELECT ` + trainingColumns + ` FROM trainings WHERE id = $1 AND NOT deleted`
	t, err := scanTraining(s.q.QueryRowContext(ctx, query, trainingID.String()))
	if err != nil {
		return nil, mapErr(fmt.Errorf("find training: %w", err))
	}
	return t, nil
}

func (s *TrainingStore) ListTransferTargets(ctx context.Context, exclude id.TrainingID) ([]*models.Training, error) {
	query := `
		SELECT ` + trainingColumns + `
		FROM trainings
		WHERE NOT deleted
		  AND status IN ('ONGOING', 'DRAFT')
		  AND id <> $1
		ORDER BY start_date DESC, id
	`
	rows, err := s.q.QueryContext(ctx, query, exclude.String())
	if err != nil {
		return nil, fmt.Errorf("list transfer targets: %w", err)
	}
	defer rows.Close()

	var out []*models.Training
	for rows.Next() {
		t, err := scanTraining(rows)
		if err != nil {
			return nil, fmt.Errorf("scan training: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trainings: %w", err)
	}
	return out, nil
}

// IncrementParticipants applies delta (+1 or -1) in one statement. The
// counter never goes below zero.
func (s *TrainingStore) IncrementParticipants(ctx context.Context, trainingID id.TrainingID, delta int) error {
	if delta != 1 && delta != -1 {
		return fmt.Errorf("participant delta %d: %w", delta, sentinel.ErrInvalidState)
	}
	res, err := s.q.ExecContext(ctx, `
		UPDATE trainings
		SET current_participants = current_participants + $2, updated_at = NOW()
		WHERE id = $1 AND NOT deleted AND current_participants + $2 >= 0
	`, trainingID.String(), delta)
	if err != nil {
		return mapErr(fmt.Errorf("adjust participants: %w", err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("adjust participants rows affected: %w", err)
	}
	if n == 0 {
		var exists bool
		if err := s.q.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM trainings WHERE id = $1 AND NOT deleted)`, trainingID.String()).Scan(&exists); err != nil {
			return fmt.Errorf("check training: %w", err)
		}
		if !exists {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("participant counter would go negative: %w", sentinel.ErrInvalidState)
	}
	return nil
}

// Save inserts or updates a training. An existing counter is left alone;
// only IncrementParticipants moves it.
func (s *TrainingStore) Save(ctx context.Context, t *models.Training) error {
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO trainings (id, code, name, name_english, status, start_date, end_date,
			max_participants, current_participants, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7::date, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			code = EXCLUDED.code,
			name = EXCLUDED.name,
			name_english = EXCLUDED.name_english,
			status = EXCLUDED.status,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			max_participants = EXCLUDED.max_participants,
			deleted = EXCLUDED.deleted,
			updated_at = EXCLUDED.updated_at
	`, t.ID.String(), t.Code, t.Name, t.NameEnglish, string(t.Status), t.StartDate, t.EndDate,
		t.MaxParticipants, t.CurrentParticipants, t.Deleted, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return mapErr(fmt.Errorf("save training: %w", err))
	}
	return nil
}

type ParticipantStore struct {
	q txcontext.Execer
}

func (s *ParticipantStore) FindByID(ctx context.Context, participantID id.ParticipantID) (*models.Participant, error) {
	var (
		p   models.Participant
		pid uuid.UUID
	)
	err := s.q.QueryRowContext(ctx,
		`SELECT id, code, name, name_english FROM participants WHERE id = $1`, participantID.String()).
		Scan(&pid, &p.Code, &p.Name, &p.NameEnglish)
	if err != nil {
		return nil, mapErr(fmt.Errorf("find participant: %w", err))
	}
	p.ID = id.ParticipantID(pid)
	return &p, nil
}

func (s *ParticipantStore) Save(ctx context.Context, p *models.Participant) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO participants (id, code, name, name_english)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			code = EXCLUDED.code,
			name = EXCLUDED.name,
			name_english = EXCLUDED.name_english
	`, p.ID.String(), p.Code, p.Name, p.NameEnglish)
	if err != nil {
		return mapErr(fmt.Errorf("save participant: %w", err))
	}
	return nil
}
