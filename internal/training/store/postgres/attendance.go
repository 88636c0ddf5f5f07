package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"roster/internal/training/models"
	id "roster/pkg/domain"
	txcontext "roster/pkg/platform/tx"
)

type AttendanceStore struct {
	q txcontext.Execer
}

const attendanceColumns = `id, training_id, participant_id, attendance_date,
	morning_in, morning_out, afternoon_in, afternoon_out, status,
	location_lat, location_lng, location_accuracy, device,
	manual_entry, manual_marked_by, manual_marked_by_name, manual_entry_reason,
	created_at, updated_at`

func scanAttendance(row scanner) (*models.AttendanceRecord, error) {
	var (
		r                  models.AttendanceRecord
		rid, tid, pid      uuid.UUID
		punches            [4]sql.NullTime
		status             string
		lat, lng, accuracy sql.NullFloat64
		markedBy           uuid.NullUUID
	)
	if err := row.Scan(&rid, &tid, &pid, &r.Date,
		&punches[0], &punches[1], &punches[2], &punches[3], &status,
		&lat, &lng, &accuracy, &r.Device,
		&r.Manual.Manual, &markedBy, &r.Manual.MarkedByName, &r.Manual.Reason,
		&r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.ID = id.AttendanceID(rid)
	r.TrainingID = id.TrainingID(tid)
	r.ParticipantID = id.ParticipantID(pid)
	r.MorningIn = punchOf(punches[0])
	r.MorningOut = punchOf(punches[1])
	r.AfternoonIn = punchOf(punches[2])
	r.AfternoonOut = punchOf(punches[3])
	r.Status = models.AttendanceStatus(status)
	if lat.Valid && lng.Valid {
		r.Location = &models.Location{Latitude: lat.Float64, Longitude: lng.Float64}
		if accuracy.Valid {
			acc := accuracy.Float64
			r.Location.Accuracy = &acc
		}
	}
	if markedBy.Valid {
		r.Manual.MarkedBy = id.UserID(markedBy.UUID)
	}
	return &r, nil
}

func punchOf(t sql.NullTime) models.Punch {
	if !t.Valid {
		return models.Punch{}
	}
	return models.PunchAt(t.Time)
}

func punchArg(p models.Punch) any {
	if t, ok := p.Time(); ok {
		return t
	}
	return nil
}

// attendanceArgs is the column order of attendanceColumns.
func attendanceArgs(r *models.AttendanceRecord) []any {
	var lat, lng, accuracy any
	if r.Location != nil {
		lat, lng = r.Location.Latitude, r.Location.Longitude
		if r.Location.Accuracy != nil {
			accuracy = *r.Location.Accuracy
		}
	}
	var markedBy any
	if !r.Manual.MarkedBy.IsNil() {
		markedBy = r.Manual.MarkedBy.String()
	}
	return []any{
		r.ID.String(), r.TrainingID.String(), r.ParticipantID.String(), r.Date,
		punchArg(r.MorningIn), punchArg(r.MorningOut), punchArg(r.AfternoonIn), punchArg(r.AfternoonOut), string(r.Status),
		lat, lng, accuracy, r.Device,
		r.Manual.Manual, markedBy, r.Manual.MarkedByName, r.Manual.Reason,
		r.CreatedAt, r.UpdatedAt,
	}
}

const attendanceValues = `$1, $2, $3, $4::date, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19`

func (s *AttendanceStore) list(ctx context.Context, query string, args ...any) ([]*models.AttendanceRecord, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	var out []*models.AttendanceRecord
	for rows.Next() {
		r, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance: %w", err)
	}
	return out, nil
}

func (s *AttendanceStore) ListByTrainingAndParticipant(ctx context.Context, trainingID id.TrainingID, participantID id.ParticipantID) ([]*models.AttendanceRecord, error) {
	return s.list(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance_records
		WHERE training_id = $1 AND participant_id = $2
		ORDER BY attendance_date
	`, trainingID.String(), participantID.String())
}

func (s *AttendanceStore) ListByTraining(ctx context.Context, trainingID id.TrainingID) ([]*models.AttendanceRecord, error) {
	return s.list(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance_records
		WHERE training_id = $1
		ORDER BY attendance_date, participant_id
	`, trainingID.String())
}

func (s *AttendanceStore) DeleteAll(ctx context.Context, trainingID id.TrainingID, participantID id.ParticipantID) (int, error) {
	res, err := s.q.ExecContext(ctx,
		`DELETE FROM attendance_records WHERE training_id = $1 AND participant_id = $2`,
		trainingID.String(), participantID.String())
	if err != nil {
		return 0, mapErr(fmt.Errorf("delete attendance: %w", err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete attendance rows affected: %w", err)
	}
	return int(n), nil
}

func (s *AttendanceStore) FindByKey(ctx context.Context, key models.AttendanceKey) (*models.AttendanceRecord, error) {
	r, err := scanAttendance(s.q.QueryRowContext(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance_records
		WHERE training_id = $1 AND participant_id = $2 AND attendance_date = $3::date
	`, key.TrainingID.String(), key.ParticipantID.String(), key.Date))
	if err != nil {
		return nil, mapErr(fmt.Errorf("find attendance: %w", err))
	}
	return r, nil
}

// Create fails with ErrConflict when the (training, participant, date) slot is taken.
func (s *AttendanceStore) Create(ctx context.Context, r *models.AttendanceRecord) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO attendance_records (`+attendanceColumns+`) VALUES (`+attendanceValues+`)`,
		attendanceArgs(r)...)
	if err != nil {
		return mapErr(fmt.Errorf("create attendance: %w", err))
	}
	return nil
}

// Upsert writes r at its key. An existing row keeps its id and created_at,
// which are copied back into r.
func (s *AttendanceStore) Upsert(ctx context.Context, r *models.AttendanceRecord) error {
	var rid uuid.UUID
	err := s.q.QueryRowContext(ctx, `
		INSERT INTO attendance_records (`+attendanceColumns+`) VALUES (`+attendanceValues+`)
		ON CONFLICT (training_id, participant_id, attendance_date) DO UPDATE SET
			morning_in = EXCLUDED.morning_in,
			morning_out = EXCLUDED.morning_out,
			afternoon_in = EXCLUDED.afternoon_in,
			afternoon_out = EXCLUDED.afternoon_out,
			status = EXCLUDED.status,
			location_lat = EXCLUDED.location_lat,
			location_lng = EXCLUDED.location_lng,
			location_accuracy = EXCLUDED.location_accuracy,
			device = EXCLUDED.device,
			manual_entry = EXCLUDED.manual_entry,
			manual_marked_by = EXCLUDED.manual_marked_by,
			manual_marked_by_name = EXCLUDED.manual_marked_by_name,
			manual_entry_reason = EXCLUDED.manual_entry_reason,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`, attendanceArgs(r)...).Scan(&rid, &r.CreatedAt)
	if err != nil {
		return mapErr(fmt.Errorf("upsert attendance: %w", err))
	}
	r.ID = id.AttendanceID(rid)
	return nil
}
