package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/hoopsight/momentum/internal/domain/model"
	"github.com/hoopsight/momentum/pkg/metrics"
)

// MemoryStore is an in-memory Store for development and tests. It keeps
// first-seen order so similarity ties stay stable across calls.
type MemoryStore struct {
	mu      sync.RWMutex
	byGame  map[string]struct{}
	ordered []model.Fingerprint
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byGame: make(map[string]struct{})}
}

// Insert stores a fingerprint, rejecting duplicates and malformed vectors.
func (s *MemoryStore) Insert(_ context.Context, fp model.Fingerprint) error {
	if err := validate(fp); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byGame[fp.GameID]; exists {
		return fmt.Errorf("game %s: %w", fp.GameID, ErrDuplicateGame)
	}
	s.byGame[fp.GameID] = struct{}{}
	s.ordered = append(s.ordered, cloned(fp))
	metrics.UpdateFingerprintCount(len(s.ordered))
	return nil
}

// ListAll returns a copy of the stored fingerprints in insertion order.
func (s *MemoryStore) ListAll(_ context.Context) ([]model.Fingerprint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Fingerprint, len(s.ordered))
	for i, fp := range s.ordered {
		out[i] = cloned(fp)
	}
	return out, nil
}

// Exists reports whether the game id is stored.
func (s *MemoryStore) Exists(_ context.Context, gameID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byGame[gameID]
	return ok, nil
}

// Count returns the number of stored fingerprints.
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ordered), nil
}

func validate(fp model.Fingerprint) error {
	if fp.GameID == "" {
		return fmt.Errorf("missing game id: %w", ErrInvalidFingerprint)
	}
	if len(fp.Vector) != model.VectorLength {
		return fmt.Errorf("game %s has %d vector components, want %d: %w",
			fp.GameID, len(fp.Vector), model.VectorLength, ErrInvalidFingerprint)
	}
	return nil
}

// cloned copies the vector so later caller mutations cannot reach the
// stored snapshot.
func cloned(fp model.Fingerprint) model.Fingerprint {
	fp.Vector = append([]float64(nil), fp.Vector...)
	return fp
}
