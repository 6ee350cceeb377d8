package rdb

import "time"

// PropertyRecord stores one conf property (domain/stanza/key → value).
type PropertyRecord struct {
	ID     string `gorm:"primaryKey;size:64"`
	Domain string `gorm:"size:128;uniqueIndex:idx_prop,priority:1"`
	Stanza string `gorm:"size:128;uniqueIndex:idx_prop,priority:2"`
	Key    string `gorm:"size:128;uniqueIndex:idx_prop,priority:3"`
	Value  string
}

// SecretRecord stores one credential keyed by realm+name.
type SecretRecord struct {
	ID    string `gorm:"primaryKey;size:64"`
	Realm string `gorm:"size:128;uniqueIndex:idx_secret,priority:1"`
	Name  string `gorm:"size:128;uniqueIndex:idx_secret,priority:2"`
	Value string
}

// AppRecord stores one app registration.
type AppRecord struct {
	ID         string `gorm:"primaryKey;size:64"`
	Name       string `gorm:"size:128;uniqueIndex"`
	Label      string
	Version    string
	Configured bool
	ReloadedAt time.Time
}
