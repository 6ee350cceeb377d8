package inmem

import (
	"context"
	"fmt"
	"sync"

	"github.com/spurintel/spursetup/domain"
	"github.com/spurintel/spursetup/domain/model"
)

// ConfigService is a thread-safe in-memory config domain store with fault
// injection hooks for tests.
type ConfigService struct {
	mu      sync.RWMutex
	domains map[string]map[string]map[string]string // domain -> stanza -> props
	down    map[string]bool
	// FailUpdate, when set, is returned by every UpdateStanza call.
	FailUpdate error
}

func NewConfigService() *ConfigService {
	return &ConfigService{
		domains: make(map[string]map[string]map[string]string),
		down:    make(map[string]bool),
	}
}

// SetUnavailable simulates an unreachable config domain.
func (s *ConfigService) SetUnavailable(domainName string, down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down[domainName] = down
}

// Seed installs properties without going through UpdateStanza.
func (s *ConfigService) Seed(domainName, stanza string, props map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(domainName, stanza, props)
}

func (s *ConfigService) put(domainName, stanza string, props map[string]string) {
	if s.domains[domainName] == nil {
		s.domains[domainName] = make(map[string]map[string]string)
	}
	if s.domains[domainName][stanza] == nil {
		s.domains[domainName][stanza] = make(map[string]string)
	}
	for k, v := range props {
		s.domains[domainName][stanza][k] = v
	}
}

func (s *ConfigService) FetchStanza(_ context.Context, domainName, stanza string) (*model.Stanza, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.down[domainName] {
		return nil, fmt.Errorf("%w: %s", model.ErrDomainUnavailable, domainName)
	}
	stanzas, ok := s.domains[domainName]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", model.ErrStanzaNotFound, domainName, stanza)
	}
	props, ok := stanzas[stanza]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", model.ErrStanzaNotFound, domainName, stanza)
	}
	cp := make(map[string]string, len(props))
	for k, v := range props {
		cp[k] = v
	}
	return &model.Stanza{Domain: domainName, Name: stanza, Properties: cp}, nil
}

func (s *ConfigService) UpdateStanza(_ context.Context, domainName, stanza string, props map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailUpdate != nil {
		return s.FailUpdate
	}
	if s.down[domainName] {
		return fmt.Errorf("%w: %s", model.ErrDomainUnavailable, domainName)
	}
	s.put(domainName, stanza, props)
	return nil
}

var _ domain.ConfigService = (*ConfigService)(nil)
