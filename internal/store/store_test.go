package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKV_TTL(t *testing.T) {
	kv := NewMemoryKV()
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	kv.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, kv.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, kv.Set(ctx, "forever", "v", 0))

	v, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	now = now.Add(time.Minute)
	_, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)

	_, err = kv.Get(ctx, "forever")
	assert.NoError(t, err)
}

func TestSelectionStore(t *testing.T) {
	kv := NewMemoryKV()
	s := NewSelectionStore(kv)
	ctx := context.Background()

	got, err := s.Load(ctx, "tablet-1")
	require.NoError(t, err)
	assert.Equal(t, Selection{}, got)

	want := Selection{UnitID: 3, ResidentID: 7, Date: "2024-05-01", StaffName: "Nurse A"}
	require.NoError(t, s.Save(ctx, "tablet-1", want))

	got, err = s.Load(ctx, "tablet-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	other, err := s.Load(ctx, "tablet-2")
	require.NoError(t, err)
	assert.Equal(t, Selection{}, other)

	require.NoError(t, kv.Set(ctx, selectionKey("broken"), "{not json", 0))
	got, err = s.Load(ctx, "broken")
	require.NoError(t, err)
	assert.Equal(t, Selection{}, got)
}

func TestSelectionKey(t *testing.T) {
	assert.Equal(t, "kaigo:selection:client:anonymous", selectionKey("  "))
	assert.Equal(t, "kaigo:selection:client:abc", selectionKey("abc"))
}
