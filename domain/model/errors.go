package model

import "errors"

var (
	ErrStanzaNotFound    = errors.New("stanza not found")
	ErrDomainUnavailable = errors.New("config domain unavailable")
	ErrSecretNotFound    = errors.New("secret not found")
	ErrAppNotFound       = errors.New("app not found")
	ErrInputInvalid      = errors.New("setup input invalid")
	ErrRunInProgress     = errors.New("setup run already in progress")
)
