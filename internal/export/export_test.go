package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/kaigoApp/kaigo-app/internal/common/config"
	"github.com/kaigoApp/kaigo-app/internal/common/database"
	"github.com/kaigoApp/kaigo-app/internal/domain"
	"github.com/kaigoApp/kaigo-app/internal/migrations"
	"github.com/kaigoApp/kaigo-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func newStore(t *testing.T) *repository.Store {
	t.Helper()
	db, err := database.NewSQLiteDB(&config.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Up(context.Background(), db, database.DriverSQLite, zap.NewNop()))
	return repository.NewStore(db, repository.DialectSQLite)
}

func TestCollectAndBuild(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	u := &domain.Unit{Name: "3F", IsActive: true, CreatedAt: now}
	_, err := s.Directory.CreateUnit(ctx, u)
	require.NoError(t, err)
	res := &domain.Resident{UnitID: u.UnitID, Name: "山田 太郎", IsActive: true, CreatedAt: now}
	_, err = s.Directory.CreateResident(ctx, res)
	require.NoError(t, err)

	temp, sys, dia := 37.8, 128, 80
	rec := &domain.Record{
		UnitID: u.UnitID, ResidentID: res.ResidentID, RecordDate: "2024-05-01",
		Time: &domain.TimeOfDay{Hour: 8, Minute: 5}, Shift: domain.ShiftDay, AuthorName: "Nurse A",
		VitalsAM:   domain.Vitals{Temperature: &temp, Systolic: &sys, Diastolic: &dia},
		Meals:      domain.Meals{Breakfast: domain.Meal{Done: true, Score: 6}},
		Medication: domain.Medication{Morning: true, Bedtime: true},
		Note:       "Fell in hallway", Share: true, CreatedAt: now, UpdatedAt: now,
		Patrols: []domain.Patrol{{PatrolNo: 1, Time: &domain.TimeOfDay{Hour: 2}, Status: "asleep"}},
	}
	_, err = s.Records.Insert(ctx, rec)
	require.NoError(t, err)
	_, err = s.Handovers.Insert(ctx, &domain.HandoverEntry{
		UnitID: u.UnitID, HandoverDate: "2024-05-01", Content: "全体連絡", AuthorName: "Nurse B", CreatedAt: now,
	})
	require.NoError(t, err)

	report, err := NewCollector(s, zap.NewNop()).Collect(ctx, u.UnitID, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, "3F", report.Unit.Name)
	require.Len(t, report.Records, 1)
	require.Len(t, report.Handovers, 1)
	assert.Equal(t, "kaigo_1_2024-05-01.xlsx", FileName(report))

	data, err := BuildWorkbook(report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{recordsSheet, handoversSheet}, f.GetSheetList())

	rows, err := f.GetRows(recordsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, RecordHeader, rows[0])
	assert.Equal(t, "山田 太郎", rows[1][0])
	assert.Equal(t, "08:05", rows[1][1])
	assert.Equal(t, "37.8", rows[1][6])
	assert.Equal(t, "128/80", rows[1][7])
	assert.Equal(t, "6/10", rows[1][14])
	assert.Equal(t, "morning, bedtime", rows[1][17])
	assert.Equal(t, "#1 02:00 asleep", rows[1][18])
	assert.Equal(t, "Fell in hallway", rows[1][19])

	hrows, err := f.GetRows(handoversSheet)
	require.NoError(t, err)
	require.Len(t, hrows, 2)
	assert.Equal(t, "All", hrows[1][1])
	assert.Equal(t, "全体連絡", hrows[1][2])
}

func TestCollect_UnknownUnit(t *testing.T) {
	s := newStore(t)
	_, err := NewCollector(s, zap.NewNop()).Collect(context.Background(), 42, "2024-05-01")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBuildWorkbook_Empty(t *testing.T) {
	report := &DailyReport{Unit: &domain.Unit{UnitID: 1, Name: "3F"}, Date: "2024-05-01"}
	data, err := BuildWorkbook(report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(recordsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
