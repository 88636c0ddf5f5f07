package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	audit "roster/pkg/platform/audit"
)

// InMemoryStore is an outbox kept in process memory.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []audit.OutboxEntry
	now     func() time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{now: time.Now}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	entry, err := audit.NewOutboxEntry(event, s.now())
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// AppendAll stores every event or, when one cannot be encoded, none of them.
func (s *InMemoryStore) AppendAll(_ context.Context, events []audit.Event) error {
	now := s.now()
	batch := make([]audit.OutboxEntry, 0, len(events))
	for _, event := range events {
		entry, err := audit.NewOutboxEntry(event, now)
		if err != nil {
			return err
		}
		batch = append(batch, entry)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, batch...)
	return nil
}

// ListAll decodes every event in append order.
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]audit.Event, 0, len(s.entries))
	for _, e := range s.entries {
		ev, err := audit.DecodePayload(e.Payload)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// Pending returns up to limit unpublished entries, oldest first.
func (s *InMemoryStore) Pending(_ context.Context, limit int) ([]audit.OutboxEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []audit.OutboxEntry
	for _, e := range s.entries {
		if e.PublishedAt != nil {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *InMemoryStore) MarkPublished(_ context.Context, ids []uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	for i := range s.entries {
		if _, ok := set[s.entries[i].ID]; ok {
			ts := at
			s.entries[i].PublishedAt = &ts
		}
	}
	return nil
}
