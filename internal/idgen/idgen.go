// Package idgen generates identifiers for ephemeral route/segment objects
// that the caller didn't supply one for, grounded on the pack's uuid.New()
// usage for request-scoped entity IDs (e.g. other_examples' route/stop
// records).
package idgen

import "github.com/google/uuid"

// New returns a fresh random identifier string.
func New() string {
	return uuid.New().String()
}
