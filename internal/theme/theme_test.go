package theme

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tianya/internal/store"
)

func TestManager_DefaultTheme(t *testing.T) {
	m := NewManager(store.NewMemoryStore())

	assert.Equal(t, "elegantViolet", m.Current().Name)
	assert.Len(t, m.Names(), 8)
}

func TestManager_CyclePersistsAndWraps(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	m := NewManager(st)

	next := m.Cycle(ctx)
	assert.Equal(t, "goldenDawn", next.Name)

	stored, ok, err := st.Get(ctx, store.ThemeKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "goldenDawn", stored)

	// Cycling through every theme returns to the start.
	for i := 0; i < len(m.Names())-1; i++ {
		next = m.Cycle(ctx)
	}
	assert.Equal(t, "elegantViolet", next.Name)
}

func TestManager_LoadRestoresSelection(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.Set(ctx, store.ThemeKey, "stellarNight"))

	m := NewManager(st)
	m.Load(ctx)

	assert.Equal(t, "stellarNight", m.Current().Name)
}

func TestManager_LoadIgnoresUnknownTheme(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.Set(ctx, store.ThemeKey, "neonZebra"))

	m := NewManager(st)
	m.Load(ctx)

	assert.Equal(t, "elegantViolet", m.Current().Name)
}

func TestManager_Select(t *testing.T) {
	ctx := context.Background()
	m := NewManager(store.NewMemoryStore())

	require.NoError(t, m.Select(ctx, "cyberBlue"))
	assert.Equal(t, "cyberBlue", m.Current().Name)

	assert.Error(t, m.Select(ctx, "missing"))
	assert.Equal(t, "cyberBlue", m.Current().Name)
}

func TestManager_CurrentNeverNil(t *testing.T) {
	m := NewManager(store.NewMemoryStore())
	m.current = "corrupted-selection"

	require.NotNil(t, m.Current())
	assert.Equal(t, "elegantViolet", m.Current().Name)
}
