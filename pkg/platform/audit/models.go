package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	id "roster/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
type EventCategory string

const (
	// CategoryCompliance covers changes to who is enrolled where and what
	// attendance they are credited with. These are written in the same
	// transaction as the change.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers routine activity such as device check-ins.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	ActorID   id.UserID
	ActorName string
	Action    string
	// Subject is the participant or enrollment the action applies to.
	Subject    string
	TrainingID string
	Detail     string
	RequestID  string
}

type AuditEvent string

const (
	EventParticipantTransferred AuditEvent = "participant_transferred"
	EventEnrollmentCreated      AuditEvent = "enrollment_created"
	EventEnrollmentCancelled    AuditEvent = "enrollment_cancelled"
	EventAttendanceBulkUpdated  AuditEvent = "attendance_bulk_updated"
	EventAttendanceCheckedIn    AuditEvent = "attendance_checked_in"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventParticipantTransferred: CategoryCompliance,
	EventEnrollmentCreated:      CategoryCompliance,
	EventEnrollmentCancelled:    CategoryCompliance,
	EventAttendanceBulkUpdated:  CategoryCompliance,

	EventAttendanceCheckedIn: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store appends audit events. Outbox-backed stores make the append part of
// the caller's transaction.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// OutboxEntry is one event waiting to be relayed to the broker.
type OutboxEntry struct {
	ID          uuid.UUID
	AggregateID string
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// outboxPayload is the JSON structure published to Kafka.
type outboxPayload struct {
	ID         string `json:"id"`
	Category   string `json:"category"`
	Timestamp  string `json:"timestamp"`
	ActorID    string `json:"actor_id,omitempty"`
	ActorName  string `json:"actor_name,omitempty"`
	Action     string `json:"action"`
	Subject    string `json:"subject"`
	TrainingID string `json:"training_id,omitempty"`
	Detail     string `json:"detail,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
}

// NewOutboxEntry serialises event for the outbox. The category is always
// derived from the action.
func NewOutboxEntry(event Event, now time.Time) (OutboxEntry, error) {
	entryID := uuid.New()
	if event.Timestamp.IsZero() {
		event.Timestamp = now
	}
	payload := outboxPayload{
		ID:         entryID.String(),
		Category:   string(AuditEvent(event.Action).Category()),
		Timestamp:  event.Timestamp.Format(time.RFC3339Nano),
		ActorName:  event.ActorName,
		Action:     event.Action,
		Subject:    event.Subject,
		TrainingID: event.TrainingID,
		Detail:     event.Detail,
		RequestID:  event.RequestID,
	}
	if !event.ActorID.IsNil() {
		payload.ActorID = event.ActorID.String()
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return OutboxEntry{}, fmt.Errorf("marshal audit payload: %w", err)
	}

	aggregateID := event.TrainingID
	if aggregateID == "" {
		aggregateID = entryID.String()
	}
	return OutboxEntry{
		ID:          entryID,
		AggregateID: aggregateID,
		EventType:   event.Action,
		Payload:     b,
		CreatedAt:   now,
	}, nil
}

// DecodePayload reverses NewOutboxEntry.
func DecodePayload(b []byte) (Event, error) {
	var p outboxPayload
	if err := json.Unmarshal(b, &p); err != nil {
		return Event{}, fmt.Errorf("unmarshal audit payload: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, p.Timestamp)
	if err != nil {
		return Event{}, fmt.Errorf("parse audit timestamp: %w", err)
	}
	ev := Event{
		Category:   EventCategory(p.Category),
		Timestamp:  ts,
		ActorName:  p.ActorName,
		Action:     p.Action,
		Subject:    p.Subject,
		TrainingID: p.TrainingID,
		Detail:     p.Detail,
		RequestID:  p.RequestID,
	}
	if p.ActorID != "" {
		actor, err := id.ParseUserID(p.ActorID)
		if err != nil {
			return Event{}, err
		}
		ev.ActorID = actor
	}
	return ev, nil
}
