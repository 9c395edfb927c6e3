// Package id generates client-side identifiers.
package id

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// LocalPrefix marks identifiers minted by the client for entries the backend
// has not confirmed yet.
const LocalPrefix = "local"

// Generate creates a prefixed NanoID, e.g. "local-V1StGXR8_Z5jdHi6B-myT".
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// Local returns a fresh local identifier. Falls back to a fixed placeholder
// if the system has no entropy, since the id only keys an optimistic view entry.
func Local() string {
	id, err := Generate(LocalPrefix)
	if err != nil {
		return LocalPrefix + "-pending"
	}
	return id
}

// IsLocal reports whether id was minted by Local.
func IsLocal(id string) bool {
	return strings.HasPrefix(id, LocalPrefix+"-")
}
