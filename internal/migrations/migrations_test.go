package migrations

import (
	"context"
	"testing"

	"github.com/kaigoApp/kaigo-app/internal/common/config"
	"github.com/kaigoApp/kaigo-app/internal/common/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUp_SQLiteIsRepeatable(t *testing.T) {
	db, err := database.NewSQLiteDB(&config.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, Up(ctx, db, "sqlite", zap.NewNop()))
	require.NoError(t, Up(ctx, db, "sqlite", zap.NewNop()))

	v, err := Version(ctx, db, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	for _, table := range []string{"units", "residents", "daily_records", "daily_patrols", "handovers", "handover_reactions"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestUp_UnknownDriver(t *testing.T) {
	db, err := database.NewSQLiteDB(&config.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	err = Up(context.Background(), db, "mysql", zap.NewNop())
	assert.Error(t, err)
}

func TestEmbeddedFilesPresent(t *testing.T) {
	for _, dir := range []string{"sqlite", "postgres"} {
		entries, err := files.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 3, dir)
	}
}
