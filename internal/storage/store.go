package storage

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/chatkeeper/internal/logging"
)

// keyPrefix namespaces every key this application writes, so the kv table
// can be shared with unrelated tooling without collisions.
const keyPrefix = "chatapp_"

// Store is the JSON view over a KV that the rest of the layer talks to.
//
// A failed or corrupted read degrades to a miss and a failed write is
// dropped; both are logged, neither is surfaced to the caller. The data
// layer treats the store as always reachable and re-reads before every
// mutation, so a dropped write costs at most the one operation.
type Store struct {
	kv  KV
	log logging.Logger
}

func NewStore(kv KV, log logging.Logger) *Store {
	return &Store{kv: kv, log: log.With("component", "storage")}
}

// Get reads and unmarshals the value for key into dest. It reports whether
// dest was populated; absence and failure both read as a miss.
func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	b, err := s.kv.Get(ctx, keyPrefix+key)
	if err != nil {
		s.log.Error(ctx, "read failed", "key", key, "error", err)
		return false
	}
	if b == nil {
		return false
	}
	if err := json.Unmarshal(b, dest); err != nil {
		s.log.Error(ctx, "corrupted value", "key", key, "error", err)
		return false
	}
	return true
}

// Set marshals value and writes it under key. Failures are logged and the
// write is dropped.
func (s *Store) Set(ctx context.Context, key string, value any) {
	b, err := json.Marshal(value)
	if err != nil {
		s.log.Error(ctx, "marshal failed", "key", key, "error", err)
		return
	}
	if err := s.kv.Set(ctx, keyPrefix+key, b); err != nil {
		s.log.Error(ctx, "write dropped", "key", key, "error", err)
	}
}

// Remove deletes the value under key, logging failures.
func (s *Store) Remove(ctx context.Context, key string) {
	if err := s.kv.Delete(ctx, keyPrefix+key); err != nil {
		s.log.Error(ctx, "delete failed", "key", key, "error", err)
	}
}
