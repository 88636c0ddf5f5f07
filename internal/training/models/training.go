package models

import (
	"time"

	id "roster/pkg/domain"
)

type TrainingStatus string

const (
	TrainingStatusDraft     TrainingStatus = "DRAFT"
	TrainingStatusOngoing   TrainingStatus = "ONGOING"
	TrainingStatusCompleted TrainingStatus = "COMPLETED"
	TrainingStatusCancelled TrainingStatus = "CANCELLED"
)

// Training is a time-bounded program. CurrentParticipants is a cached count of
// active enrollments; only the counter choke point in the store mutates it.
type Training struct {
	ID                  id.TrainingID  `json:"id"`
	Code                string         `json:"training_code"`
	Name                string         `json:"training_name"`
	NameEnglish         string         `json:"training_name_english,omitempty"`
	Status              TrainingStatus `json:"training_status"`
	StartDate           Date           `json:"start_date"`
	EndDate             Date           `json:"end_date"`
	MaxParticipants     int            `json:"max_participants"`
	CurrentParticipants int            `json:"current_participants"`
	Deleted             bool           `json:"-"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// IsFull reports whether no seat is left.
func (t *Training) IsFull() bool {
	return t.CurrentParticipants >= t.MaxParticipants
}

// AcceptsTransfers reports whether the training can be offered as a transfer target.
func (t *Training) AcceptsTransfers() bool {
	return !t.Deleted && (t.Status == TrainingStatusOngoing || t.Status == TrainingStatusDraft)
}

// Participant is the enrolled person ("beneficiary"). The core only reads it.
type Participant struct {
	ID          id.ParticipantID `json:"participant_id"`
	Code        string           `json:"teacher_id"`
	Name        string           `json:"name"`
	NameEnglish string           `json:"name_english,omitempty"`
}
