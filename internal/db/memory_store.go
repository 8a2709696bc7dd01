package db

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryUserStore is an in-process UserStore. It keeps nothing across restarts.
type MemoryUserStore struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]string
}

var _ UserStore = (*MemoryUserStore)(nil)

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		byID:    make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

func (s *MemoryUserStore) Insert(ctx context.Context, u *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[u.Email]; taken {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, u.Email)
	}

	stored := *u
	stored.ID = uuid.NewString()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	s.byID[stored.ID] = &stored
	s.byEmail[stored.Email] = stored.ID

	result := stored
	return &result, nil
}

func (s *MemoryUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := *s.byID[id]
	return &u, nil
}

func (s *MemoryUserStore) FindByID(ctx context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := *user
	u.PasswordHash = ""
	return &u, nil
}

func (s *MemoryUserStore) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryUserStore) Close(ctx context.Context) error {
	return nil
}
