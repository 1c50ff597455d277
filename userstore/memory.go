package userstore

import (
	"context"
	"sort"
	"sync"

	"github.com/credgate/credgate"
)

// Memory is an in-process user repository. Save is atomic under one mutex,
// so concurrent registrations of the same username resolve to exactly one
// winner.
type Memory struct {
	mu    sync.RWMutex
	users map[string]credgate.UserRecord
}

// NewMemory returns an empty in-process repository.
func NewMemory() *Memory {
	return &Memory{users: make(map[string]credgate.UserRecord)}
}

// FindByUsername implements credgate.UserRepository.
func (m *Memory) FindByUsername(ctx context.Context, username string) (*credgate.UserRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	record, ok := m.users[username]
	m.mu.RUnlock()

	if !ok {
		return nil, credgate.ErrUserNotFound
	}

	return &record, nil
}

// Save implements credgate.UserRepository. An existing username fails with
// credgate.ErrDuplicateUser and leaves the stored record untouched.
func (m *Memory) Save(ctx context.Context, record credgate.UserRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[record.Username]; exists {
		return credgate.ErrDuplicateUser
	}
	m.users[record.Username] = record

	return nil
}

// ListUsernames implements credgate.UserRepository. Output is sorted for
// stable responses.
func (m *Memory) ListUsernames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	names := make([]string, 0, len(m.users))
	for name := range m.users {
		names = append(names, name)
	}
	m.mu.RUnlock()

	sort.Strings(names)
	return names, nil
}
