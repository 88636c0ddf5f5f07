package models

import (
	"encoding/json"
	"fmt"
	"time"

	id "roster/pkg/domain"
)

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "PRESENT"
	StatusAbsent  AttendanceStatus = "ABSENT"
	StatusLate    AttendanceStatus = "LATE"
	StatusExcused AttendanceStatus = "EXCUSED"
)

func (s AttendanceStatus) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusExcused:
		return true
	}
	return false
}

// Session names one of the four punch slots of a day.
type Session string

const (
	SessionMorningIn    Session = "morning_in"
	SessionMorningOut   Session = "morning_out"
	SessionAfternoonIn  Session = "afternoon_in"
	SessionAfternoonOut Session = "afternoon_out"
)

func (s Session) IsValid() bool {
	switch s {
	case SessionMorningIn, SessionMorningOut, SessionAfternoonIn, SessionAfternoonOut:
		return true
	}
	return false
}

// Punch is either unset or a timestamp. It serialises as null or RFC 3339.
type Punch struct {
	at  time.Time
	set bool
}

func PunchAt(t time.Time) Punch {
	return Punch{at: t, set: true}
}

func (p Punch) IsSet() bool { return p.set }

// Time returns the punch timestamp and whether it is set.
func (p Punch) Time() (time.Time, bool) {
	return p.at, p.set
}

func (p Punch) MarshalJSON() ([]byte, error) {
	if !p.set {
		return []byte("null"), nil
	}
	return json.Marshal(p.at.Format(time.RFC3339))
}

func (p *Punch) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*p = Punch{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("punch: %w", err)
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("punch: %w", err)
	}
	*p = PunchAt(t)
	return nil
}

type Location struct {
	Latitude  float64  `json:"lat"`
	Longitude float64  `json:"lng"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

// ManualEntry marks a record as written by a person rather than a device punch.
type ManualEntry struct {
	Manual       bool      `json:"manual_entry"`
	MarkedBy     id.UserID `json:"marked_by,omitempty"`
	MarkedByName string    `json:"marked_by_name,omitempty"`
	Reason       string    `json:"manual_entry_reason,omitempty"`
}

// AttendanceRecord is one participant's attendance for one calendar day of a
// training. (TrainingID, ParticipantID, Date) is unique.
type AttendanceRecord struct {
	ID            id.AttendanceID  `json:"attendance_id"`
	TrainingID    id.TrainingID    `json:"training_id"`
	ParticipantID id.ParticipantID `json:"participant_id"`
	Date          Date             `json:"attendance_date"`
	MorningIn     Punch            `json:"morning_in"`
	MorningOut    Punch            `json:"morning_out"`
	AfternoonIn   Punch            `json:"afternoon_in"`
	AfternoonOut  Punch            `json:"afternoon_out"`
	Status        AttendanceStatus `json:"attendance_status"`
	Location      *Location        `json:"location,omitempty"`
	Device        string           `json:"device,omitempty"`
	Manual        ManualEntry      `json:"manual"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// Key identifies the (training, participant, date) slot a record occupies.
func (r *AttendanceRecord) Key() AttendanceKey {
	return AttendanceKey{TrainingID: r.TrainingID, ParticipantID: r.ParticipantID, Date: r.Date}
}

// SetPunch records t in the named session slot.
func (r *AttendanceRecord) SetPunch(s Session, t time.Time) {
	switch s {
	case SessionMorningIn:
		r.MorningIn = PunchAt(t)
	case SessionMorningOut:
		r.MorningOut = PunchAt(t)
	case SessionAfternoonIn:
		r.AfternoonIn = PunchAt(t)
	case SessionAfternoonOut:
		r.AfternoonOut = PunchAt(t)
	}
}

// Clone returns a deep copy.
func (r *AttendanceRecord) Clone() *AttendanceRecord {
	c := *r
	if r.Location != nil {
		loc := *r.Location
		if r.Location.Accuracy != nil {
			acc := *r.Location.Accuracy
			loc.Accuracy = &acc
		}
		c.Location = &loc
	}
	return &c
}

type AttendanceKey struct {
	TrainingID    id.TrainingID
	ParticipantID id.ParticipantID
	Date          Date
}
