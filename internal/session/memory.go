package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is a mutex-guarded in-memory TokenStore. It backs tests and
// any deployment that keeps sessions out of the database.
type MemoryStore struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[uuid.UUID]string)}
}

// Register makes an account known with no session yet. The GORM-backed store
// gets this state from the account row itself (an empty session_token column),
// so Current reports found=true with an empty token in both implementations.
func (s *MemoryStore) Register(accountID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[accountID]; !ok {
		s.tokens[accountID] = ""
	}
}

func (s *MemoryStore) Swap(_ context.Context, accountID uuid.UUID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[accountID] = token
	return nil
}

func (s *MemoryStore) Current(_ context.Context, accountID uuid.UUID) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, found := s.tokens[accountID]
	return token, found, nil
}
