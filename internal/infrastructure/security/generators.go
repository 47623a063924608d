// Package security provides id generation utilities
package security

import (
	"strings"

	"github.com/oklog/ulid/v2"
)

// GenerateULID generates a new ULID string.
func GenerateULID() string {
	return ulid.Make().String()
}

// GenerateComponentID returns a lower-case ULID for new layout nodes, optionally prefixed
// with the component type ("text-01h...").
func GenerateComponentID(componentType string) string {
	id := strings.ToLower(ulid.Make().String())
	if componentType == "" {
		return id
	}
	return componentType + "-" + id
}

// IsULID reports whether s parses as a ULID.
func IsULID(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
