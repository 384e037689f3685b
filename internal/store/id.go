package store

import "github.com/google/uuid"

// NewDocID generates a fresh document id.
//
// Uses UUIDv7, which is time-ordered: ids allocated later sort later,
// so insertion-ordered scans and generated ids agree.
// Uses github.com/google/uuid for RFC 4122 compliant UUIDs.
func NewDocID() string {
	return uuid.Must(uuid.NewV7()).String()
}
