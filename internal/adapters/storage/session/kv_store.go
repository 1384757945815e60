package session

import (
	"context"
	"encoding/json"
	"fmt"

	"physionomie/internal/adapters/storage/kv"
	"physionomie/internal/domain/auth"
)

// KVStore implements Store on the key-value layer.
type KVStore struct {
	kv kv.Store
}

// NewKVStore creates a session store.
func NewKVStore(store kv.Store) *KVStore {
	return &KVStore{kv: store}
}

// Load reads the remembered session, if any.
func (s *KVStore) Load(ctx context.Context) (auth.Session, bool, error) {
	raw, found, err := s.kv.Get(ctx, kv.KeyCurrentUser)
	if err != nil {
		return auth.Session{}, false, err
	}
	if !found {
		return auth.Session{}, false, nil
	}

	var sess auth.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return auth.Session{}, false, fmt.Errorf("decode session: %w", err)
	}
	return sess, true, nil
}

// Save persists the session for restoration after a restart.
// PRE: the caller only saves sessions when remember-me was chosen
func (s *KVStore) Save(ctx context.Context, sess auth.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.kv.Set(ctx, kv.KeyCurrentUser, raw)
}

// Clear removes the remembered session. Clearing an absent session is fine.
func (s *KVStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, kv.KeyCurrentUser)
}
