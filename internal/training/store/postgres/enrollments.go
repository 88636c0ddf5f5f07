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

type EnrollmentStore struct {
	q txcontext.Execer
}

const enrollmentColumns = `e.id, e.training_id, e.participant_id, e.registration_date,
	e.registration_method, e.role, e.status, e.updated_at`

func scanEnrollment(row scanner, extra ...any) (*models.Enrollment, error) {
	var (
		e             models.Enrollment
		eid, tid, pid uuid.UUID
		method, role  string
		status        string
	)
	dest := append([]any{&eid, &tid, &pid, &e.RegistrationDate, &method, &role, &status, &e.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	e.ID = id.EnrollmentID(eid)
	e.TrainingID = id.TrainingID(tid)
	e.ParticipantID = id.ParticipantID(pid)
	e.RegistrationMethod = models.RegistrationMethod(method)
	e.Role = models.EnrollmentRole(role)
	e.Status = models.EnrollmentStatus(status)
	return &e, nil
}

func (s *EnrollmentStore) FindByID(ctx context.Context, enrollmentID id.EnrollmentID) (*models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments e WHERE e.id = $1`
	e, err := scanEnrollment(s.q.QueryRowContext(ctx, query, enrollmentID.String()))
	if err != nil {
		return nil, mapErr(fmt.Errorf("find enrollment: %w", err))
	}
	return e, nil
}

func (s *EnrollmentStore) FindActive(ctx context.Context, participantID id.ParticipantID, trainingID id.TrainingID) (*models.Enrollment, error) {
	query := `
		SELECT ` + enrollmentColumns + `
		FROM enrollments e
		WHERE e.participant_id = $1 AND e.training_id = $2 AND e.status = 'ACTIVE'
	`
	e, err := scanEnrollment(s.q.QueryRowContext(ctx, query, participantID.String(), trainingID.String()))
	if err != nil {
		return nil, mapErr(fmt.Errorf("find active enrollment: %w", err))
	}
	return e, nil
}

func (s *EnrollmentStore) ListActiveByTraining(ctx context.Context, trainingID id.TrainingID) ([]models.EnrolledParticipant, error) {
	query := `
		SELECT ` + enrollmentColumns + `, p.code, p.name, p.name_english
		FROM enrollments e
		JOIN participants p ON p.id = e.participant_id
		WHERE e.training_id = $1 AND e.status = 'ACTIVE'
		ORDER BY p.name, p.id
	`
	rows, err := s.q.QueryContext(ctx, query, trainingID.String())
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()

	var out []models.EnrolledParticipant
	for rows.Next() {
		var p models.Participant
		e, err := scanEnrollment(rows, &p.Code, &p.Name, &p.NameEnglish)
		if err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		p.ID = e.ParticipantID
		out = append(out, models.EnrolledParticipant{Enrollment: *e, Participant: p})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate enrollments: %w", err)
	}
	return out, nil
}

// Create relies on the enrollments_one_active index to reject a second active
// enrollment; that surfaces as ErrConflict.
func (s *EnrollmentStore) Create(ctx context.Context, e *models.Enrollment) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO enrollments (id, training_id, participant_id, registration_date,
			registration_method, role, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, e.ID.String(), e.TrainingID.String(), e.ParticipantID.String(), e.RegistrationDate,
		string(e.RegistrationMethod), string(e.Role), string(e.Status), e.UpdatedAt)
	if err != nil {
		return mapErr(fmt.Errorf("create enrollment: %w", err))
	}
	return nil
}

func (s *EnrollmentStore) Reassign(ctx context.Context, enrollmentID id.EnrollmentID, target id.TrainingID, updatedAt time.Time) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE enrollments SET training_id = $2, updated_at = $3 WHERE id = $1`,
		enrollmentID.String(), target.String(), updatedAt)
	if err != nil {
		return mapErr(fmt.Errorf("reassign enrollment: %w", err))
	}
	return expectOne(res, "reassign enrollment")
}

func (s *EnrollmentStore) Delete(ctx context.Context, enrollmentID id.EnrollmentID) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM enrollments WHERE id = $1`, enrollmentID.String())
	if err != nil {
		return mapErr(fmt.Errorf("delete enrollment: %w", err))
	}
	return expectOne(res, "delete enrollment")
}

type rowsAffected interface {
	RowsAffected() (int64, error)
}

func expectOne(res rowsAffected, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
