package inmem

import (
	"github.com/spurintel/spursetup/domain"
	"github.com/spurintel/spursetup/domain/model"
)

// Store bundles the in-memory port implementations.
type Store struct {
	Config  *ConfigService
	Secrets *SecretStore
	Apps    *AppRegistry
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		Config:  NewConfigService(),
		Secrets: NewSecretStore(),
		Apps:    NewAppRegistry(),
	}
}

// Ports returns the store as the collaborator port set.
func (s *Store) Ports() *domain.Ports {
	return &domain.Ports{Config: s.Config, Secrets: s.Secrets, Apps: s.Apps}
}

// SeedDefaults registers the add-on app and its optional config domains
// empty, the state of a fresh install.
func (s *Store) SeedDefaults() {
	s.Apps.Add(&model.App{Name: model.DefaultAppName, Label: "Spur Enrichment", Version: "dev"})
	s.Config.Seed(model.DomainCustomAlerts, model.StanzaAlerts, map[string]string{})
	s.Config.Seed(model.DomainAPI, model.StanzaSettings, map[string]string{})
}
