package domain

import (
	"context"

	"github.com/spurintel/spursetup/domain/model"
)

// ConfigService reads and writes named config domains on the host platform.
type ConfigService interface {
	// FetchStanza returns the current properties of domain/stanza.
	// model.ErrStanzaNotFound means the domain is reachable but the stanza
	// does not exist yet; any other error marks the domain unavailable.
	FetchStanza(ctx context.Context, domain, stanza string) (*model.Stanza, error)
	// UpdateStanza writes properties into domain/stanza, creating the
	// stanza when absent. Existing properties not named are left alone.
	UpdateStanza(ctx context.Context, domain, stanza string, props map[string]string) error
}

// SecretStore persists credentials keyed by realm:name:.
type SecretStore interface {
	List(ctx context.Context) ([]*model.Secret, error)
	// Lookup returns a weak reference to the record under key, or
	// model.ErrSecretNotFound when absent.
	Lookup(ctx context.Context, key string) (*model.SecretRef, error)
	Create(ctx context.Context, s *model.Secret) error
	// Update replaces the value of the record ref points at; the realm/name
	// identity never changes.
	Update(ctx context.Context, ref *model.SecretRef, value string) error
}

// AppRegistry exposes application registrations and their reload mechanism.
type AppRegistry interface {
	List(ctx context.Context) ([]*model.App, error)
	Get(ctx context.Context, name string) (*model.App, error)
	// Reload asks the platform to re-read the app's configuration so a
	// freshly written configured flag is observed by subsequent loads.
	Reload(ctx context.Context, name string) error
}

// Ports groups the collaborator interfaces required by setup use cases.
type Ports struct {
	Config  ConfigService
	Secrets SecretStore
	Apps    AppRegistry
}
