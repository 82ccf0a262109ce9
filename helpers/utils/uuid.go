package utils

import (
	"github.com/gofrs/uuid/v5"
)

// GenerateUUID returns a random (v4) UUID string.
func GenerateUUID() string {
	id, err := uuid.NewV4()
	if err != nil {
		// only fails when the system entropy source does
		return uuid.Nil.String()
	}
	return id.String()
}

// IsUUID reports whether s parses as a UUID.
func IsUUID(s string) bool {
	_, err := uuid.FromString(s)
	return err == nil
}
