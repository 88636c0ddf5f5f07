package models

import (
	id "roster/pkg/domain"
)

// DayMapping is the planned fate of one source record.
type DayMapping struct {
	SourceDate   Date `json:"source_date"`
	DayNumber    int  `json:"day_number"`
	TargetDate   Date `json:"target_date"`
	WillTransfer bool `json:"will_transfer"`
}

// TrainingSummary is the subset of a training echoed in transfer responses.
type TrainingSummary struct {
	ID          id.TrainingID `json:"id"`
	Code        string        `json:"training_code"`
	Name        string        `json:"training_name"`
	NameEnglish string        `json:"training_name_english,omitempty"`
	StartDate   Date          `json:"start_date"`
	EndDate     Date          `json:"end_date"`
}

func SummaryOf(t *Training) TrainingSummary {
	return TrainingSummary{
		ID:          t.ID,
		Code:        t.Code,
		Name:        t.Name,
		NameEnglish: t.NameEnglish,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
	}
}

type ParticipantSummary struct {
	ID          id.ParticipantID `json:"id"`
	Name        string           `json:"name"`
	NameEnglish string           `json:"name_english,omitempty"`
	Code        string           `json:"teacher_id"`
}

type TransferPreview struct {
	Participant             ParticipantSummary `json:"participant"`
	SourceTraining          TrainingSummary    `json:"source_training"`
	TargetTraining          TrainingSummary    `json:"target_training"`
	AttendanceRecordsCount  int                `json:"attendance_records_count"`
	RecordsThatWillTransfer int                `json:"records_that_will_transfer"`
	DayMapping              []DayMapping       `json:"day_mapping"`
}

type TransferResult struct {
	EnrollmentID                 id.EnrollmentID `json:"enrollment_id"`
	TransferredAttendanceRecords int             `json:"transferred_attendance_records"`
	TotalOriginalRecords         int             `json:"total_original_records"`
	SkippedCollisions            int             `json:"skipped_collisions"`
	DayMapping                   []DayMapping    `json:"day_mapping"`
}

// Actor is the authenticated user performing a mutation.
type Actor struct {
	UserID id.UserID
	Name   string
}
