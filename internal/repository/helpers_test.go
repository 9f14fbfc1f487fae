package repository

import (
	"context"
	"testing"
	"time"

	"github.com/kaigoApp/kaigo-app/internal/common/config"
	"github.com/kaigoApp/kaigo-app/internal/common/database"
	"github.com/kaigoApp/kaigo-app/internal/domain"
	"github.com/kaigoApp/kaigo-app/internal/migrations"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var baseTime = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store    *Store
	unit     *domain.Unit
	resident *domain.Resident
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.NewSQLiteDB(&config.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, migrations.Up(ctx, db, database.DriverSQLite, zap.NewNop()))

	s := NewStore(db, DialectSQLite)
	u := &domain.Unit{Name: "ひまわり", IsActive: true, CreatedAt: baseTime}
	_, err = s.Directory.CreateUnit(ctx, u)
	require.NoError(t, err)
	res := &domain.Resident{UnitID: u.UnitID, Name: "山田 太郎", IsActive: true, CreatedAt: baseTime}
	_, err = s.Directory.CreateResident(ctx, res)
	require.NoError(t, err)

	return &fixture{store: s, unit: u, resident: res}
}

func (f *fixture) record(note string, tod *domain.TimeOfDay, created time.Time) *domain.Record {
	return &domain.Record{
		UnitID:     f.unit.UnitID,
		ResidentID: f.resident.ResidentID,
		RecordDate: "2026-04-01",
		Time:       tod,
		Shift:      domain.ShiftDay,
		AuthorName: "佐藤",
		Note:       note,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

func at(h, m int) *domain.TimeOfDay { return &domain.TimeOfDay{Hour: h, Minute: m} }

func ids[T any](items []T, id func(T) int64) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, id(it))
	}
	return out
}
