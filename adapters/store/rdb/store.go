package rdb

import (
	"context"

	"github.com/spurintel/spursetup/domain"
	"github.com/spurintel/spursetup/domain/model"
	"gorm.io/gorm"
)

// Store bundles the sandbox port implementations over one DB.
type Store struct {
	DB      *gorm.DB
	Config  *ConfigService
	Secrets *SecretStore
	Apps    *AppRegistry
}

// NewStore opens the sandbox at serviceURL, migrates the schema, and seeds
// the add-on app registration.
func NewStore(ctx context.Context, serviceURL string) (*Store, error) {
	db, err := OpenFromURL(serviceURL)
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	s := &Store{
		DB:      db,
		Config:  NewConfigService(db),
		Secrets: NewSecretStore(db),
		Apps:    NewAppRegistry(db),
	}
	app := &model.App{Name: model.DefaultAppName, Label: "Spur Enrichment", Version: "sandbox"}
	if err := s.Apps.Register(ctx, app); err != nil {
		return nil, err
	}
	return s, nil
}

// Ports returns the store as the collaborator port set.
func (s *Store) Ports() *domain.Ports {
	return &domain.Ports{Config: s.Config, Secrets: s.Secrets, Apps: s.Apps}
}
