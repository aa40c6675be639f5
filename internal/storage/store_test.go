package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/chatkeeper/internal/common"
	"github.com/dmitrijs2005/chatkeeper/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// brokenKV fails every operation, standing in for an unreachable store.
type brokenKV struct{}

func (brokenKV) Get(context.Context, string) ([]byte, error) {
	return nil, errors.Join(common.ErrStorageUnavailable, errors.New("boom"))
}
func (brokenKV) Set(context.Context, string, []byte) error {
	return errors.Join(common.ErrStorageUnavailable, errors.New("boom"))
}
func (brokenKV) Delete(context.Context, string) error {
	return errors.Join(common.ErrStorageUnavailable, errors.New("boom"))
}

func TestStore_RoundTripWithPrefix(t *testing.T) {
	kv := NewMemoryKV()
	s := NewStore(kv, testLogger())
	ctx := context.Background()

	s.Set(ctx, "users", []string{"a", "b"})

	// The raw key carries the application namespace.
	raw, err := kv.Get(ctx, "chatapp_users")
	require.NoError(t, err)
	require.JSONEq(t, `["a","b"]`, string(raw))

	var out []string
	require.True(t, s.Get(ctx, "users", &out))
	require.Equal(t, []string{"a", "b"}, out)
}

func TestStore_MissReadsAsFalse(t *testing.T) {
	s := NewStore(NewMemoryKV(), testLogger())

	var out []string
	require.False(t, s.Get(context.Background(), "absent", &out))
	require.Nil(t, out)
}

func TestStore_Remove(t *testing.T) {
	s := NewStore(NewMemoryKV(), testLogger())
	ctx := context.Background()

	s.Set(ctx, "user", map[string]string{"id": "u1"})
	s.Remove(ctx, "user")

	var out map[string]string
	require.False(t, s.Get(ctx, "user", &out))
}

func TestStore_CorruptedValueReadsAsMiss(t *testing.T) {
	kv := NewMemoryKV()
	s := NewStore(kv, testLogger())
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "chatapp_users", []byte("{not json")))

	var out []string
	require.False(t, s.Get(ctx, "users", &out))
}

func TestStore_DegradesWhenUnavailable(t *testing.T) {
	s := NewStore(brokenKV{}, testLogger())
	ctx := context.Background()

	// None of these may panic or surface an error to the caller.
	s.Set(ctx, "users", []string{"a"})
	s.Remove(ctx, "user")

	var out []string
	require.False(t, s.Get(ctx, "users", &out))
}
