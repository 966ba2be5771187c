package memory

import (
	"context"
	"sync"

	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/schema"
)

// SessionStore holds conversation records keyed by session id. The engine
// never touches shared state itself: it receives and returns record
// values, and the store owns the lifecycle. Implementations must tolerate
// being called under an external per-session lock.
type SessionStore interface {
	// Load returns the record for a session, or a fresh record when the
	// session is unknown. Load never fails: storage errors degrade to a
	// fresh record so the conversation can continue.
	Load(ctx context.Context, sessionID string) *schema.ConversationRecord

	// Save persists the record.
	Save(ctx context.Context, record *schema.ConversationRecord) error

	// Delete removes a session according to the store's retention policy.
	Delete(ctx context.Context, sessionID string) error
}

// InMemoryStore keeps records in a process-local map. Suitable for tests
// and single-process deployments.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]*schema.ConversationRecord
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: map[string]*schema.ConversationRecord{}}
}

func (s *InMemoryStore) Load(ctx context.Context, sessionID string) *schema.ConversationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.records[sessionID]; ok {
		return r.Clone()
	}
	return schema.NewConversationRecord(sessionID)
}

func (s *InMemoryStore) Save(ctx context.Context, record *schema.ConversationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.SessionID] = record.Clone()
	return nil
}

func (s *InMemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, sessionID)
	return nil
}
