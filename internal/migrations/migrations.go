// Package migrations 内嵌各方言的版本化 schema，进程启动时用 goose 执行一次
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

func provider(db *sql.DB, driver string) (*goose.Provider, error) {
	var (
		dialect goose.Dialect
		dir     string
	)
	switch driver {
	case "sqlite", "":
		dialect, dir = goose.DialectSQLite3, "sqlite"
	case "postgres":
		dialect, dir = goose.DialectPostgres, "postgres"
	default:
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}

	sub, err := fs.Sub(files, dir)
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(dialect, db, sub)
}

// Up 执行全部未应用的迁移
func Up(ctx context.Context, db *sql.DB, driver string, logger *zap.Logger) error {
	p, err := provider(db, driver)
	if err != nil {
		return err
	}
	results, err := p.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, r := range results {
		logger.Info("migration applied",
			zap.Int64("version", r.Source.Version),
			zap.String("file", r.Source.Path),
			zap.Duration("took", r.Duration),
		)
	}
	return nil
}

// Version 返回当前 schema 版本
func Version(ctx context.Context, db *sql.DB, driver string) (int64, error) {
	p, err := provider(db, driver)
	if err != nil {
		return 0, err
	}
	return p.GetDBVersion(ctx)
}
