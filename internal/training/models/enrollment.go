package models

import (
	"time"

	id "roster/pkg/domain"
)

type RegistrationMethod string

const (
	RegistrationQR     RegistrationMethod = "QR"
	RegistrationManual RegistrationMethod = "MANUAL"
	RegistrationImport RegistrationMethod = "IMPORT"
)

type EnrollmentRole string

const (
	RoleParticipant EnrollmentRole = "PARTICIPANT"
	RoleTrainer     EnrollmentRole = "TRAINER"
	RoleCoordinator EnrollmentRole = "COORDINATOR"
)

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "ACTIVE"
	EnrollmentCancelled EnrollmentStatus = "CANCELLED"
)

// Enrollment links one participant to one training. A transfer re-points the
// same row at another training instead of creating a new one.
type Enrollment struct {
	ID                 id.EnrollmentID    `json:"enrollment_id"`
	TrainingID         id.TrainingID      `json:"training_id"`
	ParticipantID      id.ParticipantID   `json:"participant_id"`
	RegistrationDate   time.Time          `json:"registration_date"`
	RegistrationMethod RegistrationMethod `json:"registration_method"`
	Role               EnrollmentRole     `json:"training_role"`
	Status             EnrollmentStatus   `json:"status"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

func (e *Enrollment) IsActive() bool {
	return e.Status == EnrollmentActive
}

// EnrolledParticipant is an active enrollment resolved with the participant's
// display fields.
type EnrolledParticipant struct {
	Enrollment  Enrollment  `json:"enrollment"`
	Participant Participant `json:"participant"`
}

// ParseRegistrationMethod defaults to MANUAL for empty input.
func ParseRegistrationMethod(s string) (RegistrationMethod, bool) {
	switch RegistrationMethod(s) {
	case "":
		return RegistrationManual, true
	case RegistrationQR, RegistrationManual, RegistrationImport:
		return RegistrationMethod(s), true
	default:
		return "", false
	}
}
