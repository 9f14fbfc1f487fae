package repository

import (
	"context"
	"testing"
	"time"

	"github.com/kaigoApp/kaigo-app/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toggle(t *testing.T, f *fixture, handoverID int64, person, mark string, now time.Time) domain.ToggleResult {
	t.Helper()
	var res domain.ToggleResult
	err := f.store.InTx(context.Background(), func(ctx context.Context, repos *Repositories) error {
		var err error
		res, err = repos.Acknowledgements.Toggle(ctx, handoverID, person, mark, now)
		return err
	})
	require.NoError(t, err)
	return res
}

func TestAcknowledgements_ToggleInvolution(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hid, err := f.store.Handovers.Insert(ctx, f.handover("x", baseTime))
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		want := domain.ToggleAdded
		if i%2 == 1 {
			want = domain.ToggleRemoved
		}
		assert.Equal(t, want, toggle(t, f, hid, "佐藤", domain.MarkLike, baseTime.Add(time.Duration(i)*time.Second)))

		has, err := f.store.Acknowledgements.Has(ctx, hid, "佐藤", domain.MarkLike)
		require.NoError(t, err)
		assert.Equal(t, want == domain.ToggleAdded, has)
	}
}

func TestAcknowledgements_MarkTypesAreIndependent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hid, err := f.store.Handovers.Insert(ctx, f.handover("x", baseTime))
	require.NoError(t, err)

	assert.Equal(t, domain.ToggleAdded, toggle(t, f, hid, "佐藤", domain.MarkLike, baseTime))
	assert.Equal(t, domain.ToggleAdded, toggle(t, f, hid, "佐藤", domain.MarkCheck, baseTime))

	likes, err := f.store.Acknowledgements.List(ctx, hid, domain.MarkLike)
	require.NoError(t, err)
	assert.Len(t, likes, 1)

	all, err := f.store.Acknowledgements.List(ctx, hid, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAcknowledgements_ListOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hid, err := f.store.Handovers.Insert(ctx, f.handover("x", baseTime))
	require.NoError(t, err)

	toggle(t, f, hid, "C", domain.MarkLike, baseTime.Add(2*time.Second))
	toggle(t, f, hid, "A", domain.MarkLike, baseTime)
	toggle(t, f, hid, "B", domain.MarkLike, baseTime)

	got, err := f.store.Acknowledgements.List(ctx, hid, domain.MarkLike)
	require.NoError(t, err)
	names := make([]string, 0, len(got))
	for _, a := range got {
		names = append(names, a.PersonName)
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)
}

func TestAcknowledgements_UnknownHandover(t *testing.T) {
	f := newFixture(t)
	err := f.store.InTx(context.Background(), func(ctx context.Context, repos *Repositories) error {
		_, err := repos.Acknowledgements.Toggle(ctx, 404, "佐藤", domain.MarkLike, baseTime)
		return err
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_InTxRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.store.InTx(ctx, func(ctx context.Context, repos *Repositories) error {
		if _, err := repos.Handovers.Insert(ctx, f.handover("kept?", baseTime)); err != nil {
			return err
		}
		_, err := repos.Handovers.Insert(ctx, f.handover("", baseTime))
		return err
	})
	require.Error(t, err)

	list, err := f.store.Handovers.ListForDate(ctx, f.unit.UnitID, "2026-04-01")
	require.NoError(t, err)
	assert.Empty(t, list)
}
