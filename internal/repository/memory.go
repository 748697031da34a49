package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"orderdesk/internal/domain"
)

// MemoryStore неизменяемый набор учётных записей, собирается один раз при старте.
// После конструктора карта только читается, поэтому блокировки не нужны.
type MemoryStore struct {
	usersByID map[string]domain.User
}

func NewMemoryStore(users []domain.User) (*MemoryStore, error) {
	m := &MemoryStore{usersByID: make(map[string]domain.User, len(users))}
	for _, u := range users {
		if u.ID == "" {
			return nil, fmt.Errorf("%w: empty id", ErrInvalidUser)
		}
		if _, ok := m.usersByID[u.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateUser, u.ID)
		}
		m.usersByID[u.ID] = u
	}
	return m, nil
}

// LoadUsersFile читает JSON-массив вида [{"id": "...", "password": "..."}]
func LoadUsersFile(path string) (*MemoryStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read users file: %w", err)
	}
	var users []domain.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("parse users file %s: %w", path, err)
	}
	return NewMemoryStore(users)
}

// Ensure interfaces
var _ UserRepository = (*MemoryStore)(nil)

func (m *MemoryStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := m.usersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	cp := u
	return &cp, nil
}

// Len количество загруженных учётных записей
func (m *MemoryStore) Len() int { return len(m.usersByID) }
