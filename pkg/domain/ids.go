// Package domain holds typed identifiers shared across bounded contexts.
// Each ID wraps a uuid.UUID so a TrainingID can never be passed where a
// ParticipantID is expected.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "roster/pkg/domain-errors"
)

type (
	UserID        uuid.UUID
	TrainingID    uuid.UUID
	ParticipantID uuid.UUID
	EnrollmentID  uuid.UUID
	AttendanceID  uuid.UUID
)

func (id UserID) String() string        { return uuid.UUID(id).String() }
func (id TrainingID) String() string    { return uuid.UUID(id).String() }
func (id ParticipantID) String() string { return uuid.UUID(id).String() }
func (id EnrollmentID) String() string  { return uuid.UUID(id).String() }
func (id AttendanceID) String() string  { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id TrainingID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id ParticipantID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id EnrollmentID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id AttendanceID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }

func (id TrainingID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }
func (id ParticipantID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id EnrollmentID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id AttendanceID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id UserID) MarshalText() ([]byte, error)        { return []byte(id.String()), nil }

// UnmarshalText accepts any well-formed UUID, nil included. Use the Parse
// functions at trust boundaries.
func (id *TrainingID) UnmarshalText(b []byte) error    { return unmarshalUUID(b, (*uuid.UUID)(id)) }
func (id *ParticipantID) UnmarshalText(b []byte) error { return unmarshalUUID(b, (*uuid.UUID)(id)) }
func (id *EnrollmentID) UnmarshalText(b []byte) error  { return unmarshalUUID(b, (*uuid.UUID)(id)) }
func (id *AttendanceID) UnmarshalText(b []byte) error  { return unmarshalUUID(b, (*uuid.UUID)(id)) }
func (id *UserID) UnmarshalText(b []byte) error        { return unmarshalUUID(b, (*uuid.UUID)(id)) }

func unmarshalUUID(b []byte, dst *uuid.UUID) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return err
	}
	*dst = u
	return nil
}

// NewTrainingID and friends mint random (v4) identifiers.
func NewTrainingID() TrainingID       { return TrainingID(uuid.New()) }
func NewParticipantID() ParticipantID { return ParticipantID(uuid.New()) }
func NewEnrollmentID() EnrollmentID   { return EnrollmentID(uuid.New()) }
func NewAttendanceID() AttendanceID   { return AttendanceID(uuid.New()) }

func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user")
	return UserID(u), err
}

func ParseTrainingID(s string) (TrainingID, error) {
	u, err := parseUUID(s, "training")
	return TrainingID(u), err
}

func ParseParticipantID(s string) (ParticipantID, error) {
	u, err := parseUUID(s, "participant")
	return ParticipantID(u), err
}

func ParseEnrollmentID(s string) (EnrollmentID, error) {
	u, err := parseUUID(s, "enrollment")
	return EnrollmentID(u), err
}

func ParseAttendanceID(s string) (AttendanceID, error) {
	u, err := parseUUID(s, "attendance")
	return AttendanceID(u), err
}

// parseUUID enforces "valid, non-empty, non-nil" at trust boundaries.
func parseUUID(s, kind string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind+" id")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id must not be nil")
	}
	return u, nil
}
