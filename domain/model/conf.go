package model

import "strconv"

// Config domain / stanza / property identifiers owned by the add-on.
// These match the conf files shipped with the Splunk package and must not
// change between releases; persisted state is keyed by them.
const (
	DomainInstall      = "install"
	DomainCustomAlerts = "customalerts"
	DomainAPI          = "api"

	StanzaInstall  = "install"
	StanzaAlerts   = "alerts"
	StanzaSettings = "settings"

	PropConfigured = "is_configured"
	PropThreshold  = "low_query_threshold"
	PropContextURL = "context_url"
)

// DefaultContextURL is written when the operator leaves the API URL blank.
const DefaultContextURL = "https://api.spur.us/v2/context/"

// Stanza is a named group of key/value properties within a config domain.
// Fetched fresh per orchestration run, never cached across runs.
type Stanza struct {
	Domain     string
	Name       string
	Properties map[string]string
}

// Get returns the named property or "" when absent.
func (s *Stanza) Get(key string) string {
	if s == nil || s.Properties == nil {
		return ""
	}
	return s.Properties[key]
}

// ParseFlag interprets a persisted boolean property value. Splunk conf files
// store booleans as "0"/"1" but hand-edited files may carry "true"/"false".
func ParseFlag(v string) bool {
	switch v {
	case "1", "true", "True", "TRUE":
		return true
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return false
}

// FormatFlag renders a boolean the way conf files expect it.
func FormatFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
