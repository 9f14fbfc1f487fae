package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kaigoApp/kaigo-app/internal/common/config"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// 支持的驱动名（同时也是 goose 方言选择依据）
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// NewPostgresDB 创建 PostgreSQL 连接
func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(DriverPostgres, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
	}
	if cfg.MaxIdle > 0 {
		db.SetMaxIdleConns(cfg.MaxIdle)
	}

	if err := ping(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// NewSQLiteDB 创建嵌入式 SQLite 连接
// 写入由 SQLite 自身串行化；连接池限制为 1，避免多个连接争抢同一把写锁，
// 同时保证 ":memory:" 库在整个进程内是同一个
func NewSQLiteDB(cfg *config.SQLiteConfig) (*sql.DB, error) {
	if cfg.Path != "" && cfg.Path != ":memory:" {
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create data dir: %w", err)
			}
		}
	}

	db, err := sql.Open(DriverSQLite, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := ping(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}
	return db, nil
}

// Open 按驱动名打开数据库
func Open(driver string, pg *config.DatabaseConfig, lite *config.SQLiteConfig) (*sql.DB, error) {
	switch driver {
	case DriverPostgres:
		return NewPostgresDB(pg)
	case DriverSQLite, "":
		return NewSQLiteDB(lite)
	default:
		return nil, fmt.Errorf("unsupported db driver: %s", driver)
	}
}

// Close 关闭数据库连接
func Close(db *sql.DB) error {
	if db != nil {
		return db.Close()
	}
	return nil
}

func ping(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}
