package handler

import (
	"roster/internal/training/models"
	"roster/internal/training/service"
	id "roster/pkg/domain"
	dErrors "roster/pkg/domain-errors"
)

type CheckInRequest struct {
	TrainingID    string           `json:"training_id" validate:"required,uuid"`
	ParticipantID string           `json:"participant_id" validate:"required,uuid"`
	Session       string           `json:"session_type" validate:"required,oneof=morning_in morning_out afternoon_in afternoon_out"`
	Location      *models.Location `json:"location" validate:"omitempty"`
}

type BulkEntryRequest struct {
	ParticipantID string       `json:"participant_id" validate:"required,uuid"`
	Date          string       `json:"date" validate:"required,datetime=2006-01-02"`
	MorningIn     models.Punch `json:"morning_in"`
	MorningOut    models.Punch `json:"morning_out"`
	AfternoonIn   models.Punch `json:"afternoon_in"`
	AfternoonOut  models.Punch `json:"afternoon_out"`
	Status        string       `json:"status" validate:"required,oneof=PRESENT ABSENT LATE EXCUSED"`
}

type BulkUpdateRequest struct {
	TrainingID string             `json:"training_id" validate:"required,uuid"`
	Reason     string             `json:"reason" validate:"max=500"`
	Entries    []BulkEntryRequest `json:"entries" validate:"required,min=1,max=2000,dive"`
}

// toEntries parses the already-validated entries.
func (r *BulkUpdateRequest) toEntries() ([]service.BulkEntry, error) {
	out := make([]service.BulkEntry, 0, len(r.Entries))
	for _, e := range r.Entries {
		pid, err := id.ParseParticipantID(e.ParticipantID)
		if err != nil {
			return nil, err
		}
		date, err := models.ParseDate(e.Date)
		if err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, "invalid date "+e.Date)
		}
		out = append(out, service.BulkEntry{
			ParticipantID: pid,
			Date:          date,
			MorningIn:     e.MorningIn,
			MorningOut:    e.MorningOut,
			AfternoonIn:   e.AfternoonIn,
			AfternoonOut:  e.AfternoonOut,
			Status:        models.AttendanceStatus(e.Status),
		})
	}
	return out, nil
}

type TransferRequest struct {
	ParticipantID    string `json:"participant_id" validate:"required,uuid"`
	SourceTrainingID string `json:"source_training_id" validate:"required,uuid"`
	TargetTrainingID string `json:"target_training_id" validate:"required,uuid"`
}

func (r *TransferRequest) ids() (id.ParticipantID, id.TrainingID, id.TrainingID, error) {
	pid, err := id.ParseParticipantID(r.ParticipantID)
	if err != nil {
		return pid, id.TrainingID{}, id.TrainingID{}, err
	}
	source, err := id.ParseTrainingID(r.SourceTrainingID)
	if err != nil {
		return pid, source, id.TrainingID{}, err
	}
	target, err := id.ParseTrainingID(r.TargetTrainingID)
	return pid, source, target, err
}

type EnrollRequest struct {
	ParticipantID      string   `json:"participant_id" validate:"required,uuid"`
	TrainingIDs        []string `json:"training_ids" validate:"required,min=1,max=50,dive,uuid"`
	RegistrationMethod string   `json:"registration_method" validate:"omitempty,oneof=QR MANUAL IMPORT"`
}

type TransferResponse struct {
	Message string `json:"message"`
	*models.TransferResult
}

type BulkUpdateResponse struct {
	Updated int `json:"updated"`
}
