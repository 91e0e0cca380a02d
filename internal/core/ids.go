package core

import "github.com/google/uuid"

// IDGenerator abstracts unique ID generation so tests are deterministic.
// Used for upload payload keys.
type IDGenerator interface {
	New() string
}

// UUIDGenerator produces random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.New().String() }
