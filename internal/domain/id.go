package domain

import "github.com/google/uuid"

// generateID creates a new unique identifier.
func generateID() string {
	return uuid.New().String()
}

// NewID returns a fresh identifier for values created outside this package.
func NewID() string {
	return generateID()
}
