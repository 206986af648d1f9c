package utils

import "github.com/google/uuid"

var newUUIDv7 = uuid.NewV7

// NewID returns a time-ordered UUIDv7, or a random v4 if the clock source
// fails.
func NewID() uuid.UUID {
	if id, err := newUUIDv7(); err == nil {
		return id
	}
	return uuid.New()
}
