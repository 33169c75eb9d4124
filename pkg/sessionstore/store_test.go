package sessionstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemory()

	_, ok := store.Get("missing")
	assert.False(t, ok)

	require.NoError(t, store.Set("session-auth-default", []byte(`{"token":"abc"}`)))
	value, ok := store.Get("session-auth-default")
	require.True(t, ok)
	assert.Equal(t, `{"token":"abc"}`, string(value))

	require.NoError(t, store.Delete("session-auth-default"))
	_, ok = store.Get("session-auth-default")
	assert.False(t, ok)
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFile(dir)
	require.NoError(t, err)

	_, ok := store.Get("missing")
	assert.False(t, ok)

	require.NoError(t, store.Set("session-auth-male-tenant", []byte(`{"isAuthenticated":true}`)))
	value, ok := store.Get("session-auth-male-tenant")
	require.True(t, ok)
	assert.Equal(t, `{"isAuthenticated":true}`, string(value))

	require.NoError(t, store.Delete("session-auth-male-tenant"))
	_, ok = store.Get("session-auth-male-tenant")
	assert.False(t, ok)

	// Deleting a missing key is not an error.
	assert.NoError(t, store.Delete("session-auth-male-tenant"))
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("session-auth-default", []byte("snapshot")))

	reopened, err := NewFile(dir)
	require.NoError(t, err)
	value, ok := reopened.Get("session-auth-default")
	require.True(t, ok)
	assert.Equal(t, "snapshot", string(value))
}

func TestFileStoreSanitizesKeys(t *testing.T) {
	store, err := NewFile(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("../escape/attempt", []byte("x")))
	value, ok := store.Get("../escape/attempt")
	require.True(t, ok)
	assert.Equal(t, "x", string(value))
}
