package rdb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spurintel/spursetup/domain"
	"github.com/spurintel/spursetup/domain/model"
	"gorm.io/gorm"
)

type SecretStore struct{ db *gorm.DB }

func NewSecretStore(db *gorm.DB) *SecretStore { return &SecretStore{db: db} }

func secretToModel(r *SecretRecord) *model.Secret {
	return &model.Secret{Realm: r.Realm, Name: r.Name, Value: r.Value}
}

func (s *SecretStore) List(ctx context.Context) ([]*model.Secret, error) {
	var recs []SecretRecord
	if err := s.db.WithContext(ctx).Order("realm ASC, name ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Secret, 0, len(recs))
	for i := range recs {
		out = append(out, secretToModel(&recs[i]))
	}
	return out, nil
}

func (s *SecretStore) Lookup(ctx context.Context, key string) (*model.SecretRef, error) {
	recs, err := s.byKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return &model.SecretRef{Realm: recs.Realm, Name: recs.Name}, nil
}

func (s *SecretStore) Create(ctx context.Context, secret *model.Secret) error {
	rec := &SecretRecord{
		ID:    "secret-" + uuid.NewString(),
		Realm: secret.Realm,
		Name:  secret.Name,
		Value: secret.Value,
	}
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *SecretStore) Update(ctx context.Context, ref *model.SecretRef, value string) error {
	rec, err := s.byKey(ctx, ref.Key())
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Model(&SecretRecord{}).
		Where("id = ?", rec.ID).
		Update("value", value).Error
}

func (s *SecretStore) byKey(ctx context.Context, key string) (*SecretRecord, error) {
	realm, name, ok := splitKey(key)
	if !ok {
		return nil, fmt.Errorf("%w: malformed key %q", model.ErrSecretNotFound, key)
	}
	var rec SecretRecord
	err := s.db.WithContext(ctx).First(&rec, "realm = ? AND name = ?", realm, name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", model.ErrSecretNotFound, key)
		}
		return nil, err
	}
	return &rec, nil
}

// splitKey parses the realm:name: store identifier.
func splitKey(key string) (realm, name string, ok bool) {
	realm, rest, found := strings.Cut(key, ":")
	if !found || !strings.HasSuffix(rest, ":") {
		return "", "", false
	}
	name = strings.TrimSuffix(rest, ":")
	return realm, name, name != ""
}

var _ domain.SecretStore = (*SecretStore)(nil)
