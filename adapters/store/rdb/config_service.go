package rdb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spurintel/spursetup/domain"
	"github.com/spurintel/spursetup/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConfigService struct{ db *gorm.DB }

func NewConfigService(db *gorm.DB) *ConfigService { return &ConfigService{db: db} }

func (s *ConfigService) FetchStanza(ctx context.Context, domainName, stanza string) (*model.Stanza, error) {
	var recs []PropertyRecord
	err := s.db.WithContext(ctx).
		Where("domain = ? AND stanza = ?", domainName, stanza).
		Order("key ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", model.ErrStanzaNotFound, domainName, stanza)
	}
	props := make(map[string]string, len(recs))
	for i := range recs {
		props[recs[i].Key] = recs[i].Value
	}
	return &model.Stanza{Domain: domainName, Name: stanza, Properties: props}, nil
}

func (s *ConfigService) UpdateStanza(ctx context.Context, domainName, stanza string, props map[string]string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for k, v := range props {
			rec := &PropertyRecord{
				ID:     "prop-" + uuid.NewString(),
				Domain: domainName,
				Stanza: stanza,
				Key:    k,
				Value:  v,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "domain"}, {Name: "stanza"}, {Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value"}),
			}).Create(rec).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

var _ domain.ConfigService = (*ConfigService)(nil)
