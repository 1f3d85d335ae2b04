// Package uuid generates time-ordered identifiers for primary keys.
package uuid

import googleuuid "github.com/google/uuid"

// New returns a UUIDv7 string. Time-ordered IDs keep inserts roughly
// sequential on the primary-key index.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Random generation failed; fall back to v4.
		return googleuuid.New().String()
	}
	return id.String()
}

// IsValid reports whether s parses as a UUID of any version.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
