package uid

import "github.com/google/uuid"

// StringID generates opaque string identifiers.
type StringID interface {
	Generate() string
}

// UUID generates RFC 9562 UUID strings, time ordered (v7) when possible.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUID string.
func (u *UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString() // fallback: uuidV4
	}
	return id.String()
}

// IsUUID reports whether s is a canonical 8-4-4-4-12 hex UUID.
func IsUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	return uuid.Validate(s) == nil
}
