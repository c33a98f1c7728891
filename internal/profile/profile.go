// Package profile stores named tuning sets so a match can be started with a
// saved configuration instead of a full document.
package profile

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/DoyleJ11/ball-contest-support/internal/config"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrEmptyName       = errors.New("profile name empty")
)

type Profile struct {
	Name      string        `json:"name"`
	Tuning    config.Tuning `json:"tuning"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type Store interface {
	Save(ctx context.Context, p Profile) error
	Get(ctx context.Context, name string) (Profile, error)
	List(ctx context.Context) ([]Profile, error)
	Delete(ctx context.Context, name string) error
}

// MemoryStore is the default store when no database is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]Profile
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]Profile), now: time.Now}
}

func (m *MemoryStore) Save(_ context.Context, p Profile) error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if err := p.Tuning.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = m.now().UTC()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.Name] = p
	return nil
}

func (m *MemoryStore) Get(_ context.Context, name string) (Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[name]
	if !ok {
		return Profile{}, ErrProfileNotFound
	}
	return p, nil
}

func (m *MemoryStore) List(_ context.Context) ([]Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[name]; !ok {
		return ErrProfileNotFound
	}
	delete(m.profiles, name)
	return nil
}
