// Package repository defines the fingerprint store contract and its
// implementations. Stored fingerprints are immutable once written and the
// store is read-mostly: searches full-scan a snapshot of the collection.
package repository

import (
	"context"

	"github.com/hoopsight/momentum/internal/domain/model"
)

// Store provides insert and list access to game fingerprints, keyed by
// the external game id.
type Store interface {
	// Insert stores a new fingerprint. Returns ErrDuplicateGame when the
	// game id already exists and ErrInvalidFingerprint for malformed input.
	Insert(ctx context.Context, fp model.Fingerprint) error

	// ListAll returns a snapshot of every stored fingerprint in first-seen
	// order. Concurrent appends may or may not be visible; snapshot
	// consistency is all callers get.
	ListAll(ctx context.Context) ([]model.Fingerprint, error)

	// Exists reports whether a game id is already stored.
	Exists(ctx context.Context, gameID string) (bool, error)

	// Count returns the number of stored fingerprints.
	Count(ctx context.Context) (int, error)
}
