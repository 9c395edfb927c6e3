package authstore

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondbrain/brain-client/internal/config"
	domainerrors "github.com/secondbrain/brain-client/internal/errors"
)

func newTestStore(t *testing.T) (*Store, *MemoryBackend) {
	t.Helper()
	backend := NewMemoryBackend()
	return New(backend, slog.New(slog.NewTextHandler(io.Discard, nil))), backend
}

func TestStore_SetAndToken(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Set("abc"))
	assert.Equal(t, "abc", store.Token())
	assert.True(t, store.IsAuthenticated())
}

func TestStore_TokenMissing(t *testing.T) {
	store, _ := newTestStore(t)

	assert.Equal(t, "", store.Token())
	assert.False(t, store.IsAuthenticated())
}

func TestStore_Clear(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set("abc"))

	store.Clear()

	assert.Equal(t, "", store.Token())
	assert.False(t, store.IsAuthenticated())
}

func TestStore_BlankTokenIsNotAuthenticated(t *testing.T) {
	for _, token := range []string{"", "   ", "\t\n"} {
		store, _ := newTestStore(t)
		require.NoError(t, store.Set(token))
		assert.False(t, store.IsAuthenticated(), "token %q", token)
	}
}

func TestStore_WriteFailureIsReturned(t *testing.T) {
	store, backend := newTestStore(t)
	backend.FailWrites = true

	err := store.Set("abc")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrStorage)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestStore_ReadFailureDegradesToUnauthenticated(t *testing.T) {
	store, backend := newTestStore(t)
	require.NoError(t, store.Set("abc"))
	backend.FailReads = true

	assert.Equal(t, "", store.Token())
	assert.False(t, store.IsAuthenticated())
}

func TestStore_ClearFailureIsSwallowed(t *testing.T) {
	store, backend := newTestStore(t)
	require.NoError(t, store.Set("abc"))
	backend.FailDeletes = true

	assert.NotPanics(t, store.Clear)
	assert.Equal(t, "abc", store.Token())
}

func TestBackends_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		cfg  config.StorageConfig
	}{
		{"memory", config.StorageConfig{Driver: config.StorageMemory}},
		{"badger", config.StorageConfig{Driver: config.StorageBadger, Path: filepath.Join(dir, "badger")}},
		{"sqlite", config.StorageConfig{Driver: config.StorageSQLite, Path: filepath.Join(dir, "sqlite", "token.db")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, err := Open(tt.cfg)
			require.NoError(t, err)
			t.Cleanup(func() { _ = backend.Close() })

			_, ok, err := backend.Get(TokenKey)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, backend.Set(TokenKey, "first"))
			require.NoError(t, backend.Set(TokenKey, "second"))

			v, ok, err := backend.Get(TokenKey)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "second", v)

			require.NoError(t, backend.Delete(TokenKey))
			_, ok, err = backend.Get(TokenKey)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestBadgerBackend_PersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "token")

	first, err := Open(config.StorageConfig{Driver: config.StorageBadger, Path: dir})
	require.NoError(t, err)
	require.NoError(t, New(first, nil).Set("persisted"))
	require.NoError(t, first.Close())

	second, err := Open(config.StorageConfig{Driver: config.StorageBadger, Path: dir})
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	assert.Equal(t, "persisted", New(second, nil).Token())
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(config.StorageConfig{Driver: "redis"})
	assert.Error(t, err)
}
