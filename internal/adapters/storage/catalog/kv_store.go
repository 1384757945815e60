package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"physionomie/internal/adapters/storage/kv"
	domain "physionomie/internal/domain/therapy"
)

// KVStore implements Store on the key-value layer.
type KVStore struct {
	kv kv.Store
}

// NewKVStore creates a catalog store.
func NewKVStore(store kv.Store) *KVStore {
	return &KVStore{kv: store}
}

// Load reads the full catalog.
// POST: found is false only when the key was never written
func (s *KVStore) Load(ctx context.Context) ([]domain.Therapy, bool, error) {
	raw, found, err := s.kv.Get(ctx, kv.KeyTherapies)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	var therapies []domain.Therapy
	if err := json.Unmarshal(raw, &therapies); err != nil {
		return nil, false, fmt.Errorf("decode catalog: %w", err)
	}
	return therapies, true, nil
}

// Replace writes the full catalog, overwriting the previous document.
// PRE: every therapy has been validated and carries a derived bonus table
func (s *KVStore) Replace(ctx context.Context, therapies []domain.Therapy) error {
	if therapies == nil {
		therapies = []domain.Therapy{}
	}
	raw, err := json.Marshal(therapies)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return s.kv.Set(ctx, kv.KeyTherapies, raw)
}
