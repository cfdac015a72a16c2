package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/themebot/theme"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	d, err := theme.NewDraft([]string{"#111111", "#222222", "#333333", "#444444", "#555555"}, "file-id")
	require.NoError(t, err)
	require.NoError(t, d.Append("#111111", "1"))

	require.NoError(t, s.Save(ctx, 42, d))

	loaded, err := s.Load(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, d.Colors, loaded.Colors)
	assert.Equal(t, d.Using, loaded.Using)
	assert.Equal(t, "file-id", loaded.Photo)
}

func TestMemoryStoreLoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	d, err := theme.NewDraft([]string{"#111111", "#222222", "#333333", "#444444", "#555555"}, "file-id")
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, 7, d))

	first, err := s.Load(ctx, 7)
	require.NoError(t, err)
	require.NoError(t, first.Append("#222222", "2"))

	second, err := s.Load(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, second.Using, "mutating a loaded draft must not leak into the store")
}

func TestMemoryStoreAbsentAndClear(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	loaded, err := s.Load(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	d, err := theme.NewDraft([]string{"#111111", "#222222", "#333333", "#444444", "#555555"}, "p")
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, 1, d))
	require.NoError(t, s.Save(ctx, 1, nil))

	loaded, err = s.Load(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, loaded, "saving nil clears the draft")

	// clearing an already-absent draft is harmless
	require.NoError(t, s.Save(ctx, 1, nil))
}
