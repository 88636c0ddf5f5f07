package models

import id "roster/pkg/domain"

// GridDay is one column of the attendance grid.
type GridDay struct {
	DayNumber int  `json:"day_number"`
	Date      Date `json:"date"`
}

// GridCell is the per-day summary shown in one grid cell. A missing cell means
// no check-in; it never means ABSENT.
type GridCell struct {
	MorningIn    Punch            `json:"morning_in"`
	MorningOut   Punch            `json:"morning_out"`
	AfternoonIn  Punch            `json:"afternoon_in"`
	AfternoonOut Punch            `json:"afternoon_out"`
	Status       AttendanceStatus `json:"status"`
	ManualEntry  bool             `json:"manual_entry"`
}

// CellFor summarises a record for the grid.
func CellFor(r *AttendanceRecord) GridCell {
	return GridCell{
		MorningIn:    r.MorningIn,
		MorningOut:   r.MorningOut,
		AfternoonIn:  r.AfternoonIn,
		AfternoonOut: r.AfternoonOut,
		Status:       r.Status,
		ManualEntry:  r.Manual.Manual,
	}
}

type GridParticipant struct {
	ParticipantID id.ParticipantID `json:"participant_id"`
	EnrollmentID  id.EnrollmentID  `json:"enrollment_id"`
	Code          string           `json:"teacher_id"`
	Name          string           `json:"name"`
	NameEnglish   string           `json:"name_english,omitempty"`
	// Attendance is keyed by YYYY-MM-DD.
	Attendance map[string]GridCell `json:"attendance"`
}

// DayTally counts statuses recorded on one day across all participants.
type DayTally struct {
	Date    Date `json:"date"`
	Present int  `json:"present"`
	Absent  int  `json:"absent"`
	Late    int  `json:"late"`
	Excused int  `json:"excused"`
}

func (t *DayTally) Add(s AttendanceStatus) {
	switch s {
	case StatusPresent:
		t.Present++
	case StatusAbsent:
		t.Absent++
	case StatusLate:
		t.Late++
	case StatusExcused:
		t.Excused++
	}
}

type AttendanceGrid struct {
	Training     Training          `json:"training"`
	Days         []GridDay         `json:"days"`
	Participants []GridParticipant `json:"participants"`
	Tallies      []DayTally        `json:"tallies"`
}
