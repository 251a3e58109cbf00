package credential

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liliang-cn/docchat/internal/repository"
)

func newTestSettings(t *testing.T) *repository.SettingsRepository {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "docchat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.NewSettingsRepository(db)
}

func TestStoreStartsEmpty(t *testing.T) {
	store, err := NewStore(newTestSettings(t))
	require.NoError(t, err)

	assert.False(t, store.Present())
	_, ok := store.Value()
	assert.False(t, ok)
}

func TestSaveAndValue(t *testing.T) {
	store, err := NewStore(newTestSettings(t))
	require.NoError(t, err)

	require.NoError(t, store.Save("  tok-abc  "))

	value, ok := store.Value()
	require.True(t, ok)
	assert.Equal(t, "tok-abc", value)

	// Idempotent
	require.NoError(t, store.Save("tok-abc"))
	value, _ = store.Value()
	assert.Equal(t, "tok-abc", value)
}

func TestSavePersistsAcrossStores(t *testing.T) {
	settings := newTestSettings(t)

	store, err := NewStore(settings)
	require.NoError(t, err)
	require.NoError(t, store.Save("tok-persisted"))

	// A fresh store over the same settings sees the saved value, the
	// way a restarted client would.
	reloaded, err := NewStore(settings)
	require.NoError(t, err)

	value, ok := reloaded.Value()
	require.True(t, ok)
	assert.Equal(t, "tok-persisted", value)
}
