package inmem

import (
	"context"
	"fmt"
	"sync"

	"github.com/spurintel/spursetup/domain"
	"github.com/spurintel/spursetup/domain/model"
)

// SecretStore is a thread-safe in-memory secret store with fault injection
// hooks for tests.
type SecretStore struct {
	mu    sync.RWMutex
	items map[string]*model.Secret
	// FailLookup / FailCreate / FailUpdate, when set, are returned by the
	// corresponding call.
	FailLookup error
	FailCreate error
	FailUpdate error
}

func NewSecretStore() *SecretStore {
	return &SecretStore{items: make(map[string]*model.Secret)}
}

func (s *SecretStore) List(_ context.Context) ([]*model.Secret, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Secret, 0, len(s.items))
	for _, v := range s.items {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (s *SecretStore) Lookup(_ context.Context, key string) (*model.SecretRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailLookup != nil {
		return nil, s.FailLookup
	}
	v, ok := s.items[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrSecretNotFound, key)
	}
	return &model.SecretRef{Realm: v.Realm, Name: v.Name}, nil
}

func (s *SecretStore) Create(_ context.Context, secret *model.Secret) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailCreate != nil {
		return s.FailCreate
	}
	cp := *secret
	s.items[secret.Key()] = &cp
	return nil
}

func (s *SecretStore) Update(_ context.Context, ref *model.SecretRef, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailUpdate != nil {
		return s.FailUpdate
	}
	v, ok := s.items[ref.Key()]
	if !ok {
		return fmt.Errorf("%w: %s", model.ErrSecretNotFound, ref.Key())
	}
	v.Value = value
	return nil
}

// Value returns the stored clear value under key, for test assertions.
func (s *SecretStore) Value(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	if !ok {
		return "", false
	}
	return v.Value, true
}

// Len returns the number of stored records.
func (s *SecretStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

var _ domain.SecretStore = (*SecretStore)(nil)
