package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	_, ok, err := st.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.Set(ctx, "k", "v"))

	value, ok, err := st.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)

	require.NoError(t, st.Delete(ctx, "k"))
	_, ok, err = st.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_DeleteAbsentKey(t *testing.T) {
	st := NewMemoryStore()
	assert.NoError(t, st.Delete(context.Background(), "never-set"))
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	st, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, st.Set(ctx, "uiTheme", "cyberBlue"))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	value, ok, err := reopened.Get(ctx, "uiTheme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "cyberBlue", value)
}

func TestFileStore_MissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.json")

	st, err := NewFileStore(path)
	require.NoError(t, err)

	_, ok, err := st.Get(context.Background(), "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{ not json"), 0600))

	st, err := NewFileStore(path)
	require.NoError(t, err)

	_, ok, err := st.Get(context.Background(), "anything")
	require.NoError(t, err)
	assert.False(t, ok)

	// The store must still accept writes after recovering from corruption.
	require.NoError(t, st.Set(context.Background(), "k", "v"))
}

func TestFileStore_DeletePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	st, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, st.Set(ctx, "k", "v"))
	require.NoError(t, st.Delete(ctx, "k"))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	_, ok, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
