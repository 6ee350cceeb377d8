package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Input carries the raw strings supplied by the setup form. Values are
// validated and transformed at the point of use, never persisted as-is.
type Input struct {
	Token      string
	Threshold  string
	ContextURL string
}

// ParseThreshold converts the raw threshold string to the integer that gets
// persisted. Empty or non-numeric input defaults to 0. A syntactically valid
// negative number is rejected: it parsed cleanly, so it reflects operator
// intent rather than a stray value, and a negative threshold would disable
// low-balance alerting silently.
func ParseThreshold(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, nil
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: threshold must not be negative: %d", ErrInputInvalid, n)
	}
	return n, nil
}

// NormalizeContextURL returns the API URL to persist: the raw string
// verbatim when non-empty, the documented default otherwise.
func NormalizeContextURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultContextURL
	}
	return raw
}
