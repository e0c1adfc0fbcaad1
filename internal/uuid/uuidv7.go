package uuid

import (
	"strings"

	googleuuid "github.com/google/uuid"
)

// TemporaryPrefix marks identifiers assigned locally before the gateway has
// confirmed a record.
const TemporaryPrefix = "tmp-"

// New generates a new UUIDv7 based on the current timestamp.
// UUIDv7 is time-ordered and suitable for use as database primary keys.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Fallback to standard UUIDv4 if random generation fails
		return googleuuid.New().String()
	}
	return id.String()
}

// NewTemporary returns a locally unique placeholder identifier.
func NewTemporary() string {
	return TemporaryPrefix + googleuuid.New().String()
}

// IsTemporary reports whether id was produced by NewTemporary.
func IsTemporary(id string) bool {
	return strings.HasPrefix(id, TemporaryPrefix)
}

// Parse validates and parses a UUID string
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
