package session

import (
	"testing"

	"github.com/andray-nkhatel/meeting-room-frontend/internal/models"
	"github.com/andray-nkhatel/meeting-room-frontend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveLoad(t *testing.T) {
	kv := storage.NewMemoryStore()
	store := NewStore(kv)

	profile := &models.UserProfile{UserID: 5, Username: "bob", FullName: "Bob B", IsAdmin: false}
	require.NoError(t, store.Save("t1", profile))

	loaded := store.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, *profile, *loaded)
	assert.True(t, store.HasToken())

	token, ok := store.Token()
	assert.True(t, ok)
	assert.Equal(t, "t1", token)
}

func TestStore_LoadAbsent(t *testing.T) {
	store := NewStore(storage.NewMemoryStore())
	assert.Nil(t, store.Load())
	assert.False(t, store.HasToken())
}

func TestStore_LoadSelfHeals(t *testing.T) {
	// Any malformed or literal-absence value must read as nil and leave no
	// entry behind.
	for _, raw := range []string{"undefined", "null", "", "{not json", "[1,2]"} {
		t.Run("value "+raw, func(t *testing.T) {
			kv := storage.NewMemoryStore()
			require.NoError(t, kv.Set("user", raw))

			store := NewStore(kv)
			assert.Nil(t, store.Load())

			_, ok := kv.Get("user")
			assert.False(t, ok, "corrupt entry should be erased")
		})
	}
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	kv := storage.NewMemoryStore()
	store := NewStore(kv)
	require.NoError(t, store.Save("t1", &models.UserProfile{UserID: 1}))

	store.Clear()
	assert.Equal(t, 0, kv.Len())
	assert.False(t, store.HasToken())
	assert.Nil(t, store.Load())

	store.Clear()
	assert.Equal(t, 0, kv.Len())
}

func TestStore_EmptyTokenCountsAsAbsent(t *testing.T) {
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set("token", ""))

	store := NewStore(kv)
	assert.False(t, store.HasToken())
	_, ok := store.Token()
	assert.False(t, ok)
}
