package rdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spurintel/spursetup/domain"
	"github.com/spurintel/spursetup/domain/model"
	"gorm.io/gorm"
)

type AppRegistry struct{ db *gorm.DB }

func NewAppRegistry(db *gorm.DB) *AppRegistry { return &AppRegistry{db: db} }

func appToModel(r *AppRecord) *model.App {
	return &model.App{
		Name:       r.Name,
		Label:      r.Label,
		Version:    r.Version,
		Configured: r.Configured,
		ReloadedAt: r.ReloadedAt,
	}
}

func (r *AppRegistry) List(ctx context.Context) ([]*model.App, error) {
	var recs []AppRecord
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.App, 0, len(recs))
	for i := range recs {
		out = append(out, appToModel(&recs[i]))
	}
	return out, nil
}

func (r *AppRegistry) Get(ctx context.Context, name string) (*model.App, error) {
	var rec AppRecord
	err := r.db.WithContext(ctx).First(&rec, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", model.ErrAppNotFound, name)
		}
		return nil, err
	}
	return appToModel(&rec), nil
}

// Reload re-reads the app's configured flag from the install domain, which
// is what a real registry reload makes the platform observe.
func (r *AppRegistry) Reload(ctx context.Context, name string) error {
	var rec AppRecord
	err := r.db.WithContext(ctx).First(&rec, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", model.ErrAppNotFound, name)
		}
		return err
	}

	var prop PropertyRecord
	configured := false
	err = r.db.WithContext(ctx).
		First(&prop, "domain = ? AND stanza = ? AND key = ?",
			model.DomainInstall, model.StanzaInstall, model.PropConfigured).Error
	switch {
	case err == nil:
		configured = model.ParseFlag(prop.Value)
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return err
	}

	return r.db.WithContext(ctx).
		Model(&AppRecord{}).
		Where("id = ?", rec.ID).
		Updates(map[string]any{"configured": configured, "reloaded_at": time.Now()}).Error
}

// Register creates the app record when missing, for sandbox seeding.
func (r *AppRegistry) Register(ctx context.Context, a *model.App) error {
	var rec AppRecord
	err := r.db.WithContext(ctx).First(&rec, "name = ?", a.Name).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(&AppRecord{
		ID:         "app-" + uuid.NewString(),
		Name:       a.Name,
		Label:      a.Label,
		Version:    a.Version,
		Configured: a.Configured,
	}).Error
}

var _ domain.AppRegistry = (*AppRegistry)(nil)
