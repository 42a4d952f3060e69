package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCredentials(t *testing.T) *FileCredentialStore {
	t.Helper()
	return NewFileCredentialStore(filepath.Join(t.TempDir(), "credentials.json"), 5*time.Second)
}

func TestFileCredentialStore_GetAbsent(t *testing.T) {
	ctx := context.Background()
	creds := newTestCredentials(t)

	_, ok, err := creds.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileCredentialStore_SetIsUpsert(t *testing.T) {
	ctx := context.Background()
	creds := newTestCredentials(t)

	require.NoError(t, creds.Set(ctx, "u1", "hash-one"))

	hash, ok, err := creds.Get(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hash-one", hash)

	require.NoError(t, creds.Set(ctx, "u1", "hash-two"))

	hash, ok, err = creds.Get(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hash-two", hash)
}

func TestFileCredentialStore_RemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	creds := newTestCredentials(t)

	require.NoError(t, creds.Set(ctx, "u1", "hash"))
	require.NoError(t, creds.Remove(ctx, "u1"))

	_, ok, err := creds.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing an absent credential is a no-op, not an error.
	require.NoError(t, creds.Remove(ctx, "u1"))
}

func TestFileCredentialStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credentials.json")

	first := NewFileCredentialStore(path, 5*time.Second)
	require.NoError(t, first.Set(ctx, "u1", "hash"))

	second := NewFileCredentialStore(path, 5*time.Second)
	hash, ok, err := second.Get(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hash", hash)
}
