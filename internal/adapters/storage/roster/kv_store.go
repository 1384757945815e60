package roster

import (
	"context"
	"encoding/json"
	"fmt"

	"physionomie/internal/adapters/storage/kv"
	domain "physionomie/internal/domain/therapist"
)

// KVStore implements Store on the key-value layer.
type KVStore struct {
	kv kv.Store
}

// NewKVStore creates a roster store.
func NewKVStore(store kv.Store) *KVStore {
	return &KVStore{kv: store}
}

// Load reads the full roster.
// POST: found is false only when the key was never written
func (s *KVStore) Load(ctx context.Context) ([]domain.Therapist, bool, error) {
	raw, found, err := s.kv.Get(ctx, kv.KeyTherapists)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	var therapists []domain.Therapist
	if err := json.Unmarshal(raw, &therapists); err != nil {
		return nil, false, fmt.Errorf("decode roster: %w", err)
	}
	return therapists, true, nil
}

// Replace writes the full roster, overwriting the previous document.
// PRE: every therapist has been validated
func (s *KVStore) Replace(ctx context.Context, therapists []domain.Therapist) error {
	if therapists == nil {
		therapists = []domain.Therapist{}
	}
	raw, err := json.Marshal(therapists)
	if err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}
	return s.kv.Set(ctx, kv.KeyTherapists, raw)
}
