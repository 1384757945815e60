package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"physionomie/internal/adapters/storage/kv"
	"physionomie/internal/domain/activity"
)

// KVStore implements Store on the key-value layer.
type KVStore struct {
	kv kv.Store
}

// NewKVStore creates a ledger store.
func NewKVStore(store kv.Store) *KVStore {
	return &KVStore{kv: store}
}

// Load reads the full ledger.
// POST: found is false only when the key was never written; the returned
// ledger is never nil
func (s *KVStore) Load(ctx context.Context) (activity.Ledger, bool, error) {
	raw, found, err := s.kv.Get(ctx, kv.KeyActivities)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return activity.Ledger{}, false, nil
	}

	var l activity.Ledger
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, false, fmt.Errorf("decode ledger: %w", err)
	}
	if l == nil {
		l = activity.Ledger{}
	}
	return l, true, nil
}

// Replace writes the full ledger, overwriting the previous document.
func (s *KVStore) Replace(ctx context.Context, l activity.Ledger) error {
	if l == nil {
		l = activity.Ledger{}
	}
	raw, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	return s.kv.Set(ctx, kv.KeyActivities, raw)
}
