// Package rdb is a sqlite-backed sandbox implementation of the collaborator
// ports so the full bootstrap can run without a live splunkd.
package rdb

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenFromURL opens a GORM DB based on a simple service-url string.
// Supported:
//   - sqlite:<dsn>   e.g., sqlite:./spursetup.db or sqlite::memory:
//   - sqlite3:<dsn>  alias of sqlite
func OpenFromURL(serviceURL string) (*gorm.DB, error) {
	var dsn string
	switch {
	case strings.HasPrefix(serviceURL, "sqlite:"):
		dsn = strings.TrimPrefix(serviceURL, "sqlite:")
	case strings.HasPrefix(serviceURL, "sqlite3:"):
		dsn = strings.TrimPrefix(serviceURL, "sqlite3:")
	default:
		return nil, fmt.Errorf("unsupported service scheme: %s", serviceURL)
	}
	if dsn == "" {
		dsn = "./spursetup.db"
	}
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
}

// AutoMigrate applies schema migrations for all sandbox models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&PropertyRecord{}, &SecretRecord{}, &AppRecord{})
}
