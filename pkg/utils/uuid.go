package utils

import "github.com/google/uuid"

// IsUUID checks if the string is a valid UUID. Handlers use it to decide
// whether a path segment is an id or a slug.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
