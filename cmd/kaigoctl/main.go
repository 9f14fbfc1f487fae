// kaigoctl 运维命令：schema 迁移、演示数据、日报导出
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/kaigoApp/kaigo-app/internal/common/database"
	"github.com/kaigoApp/kaigo-app/internal/common/logger"
	"github.com/kaigoApp/kaigo-app/internal/config"
	"github.com/kaigoApp/kaigo-app/internal/repository"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "kaigoctl",
	Short: "Operations CLI for the kaigo records service",
	Long: `kaigoctl works directly against the configured database.

Configuration is read the same way as kaigo-data:
environment variables, CONFIG_FILE (YAML), .env.local / .env.`,
	SilenceUsage: true,
}

// env 子命令共享的运行环境
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *sql.DB
	store  *repository.Store
}

func (e *env) Close() {
	_ = database.Close(e.db)
	_ = e.logger.Sync()
}

// openEnv 加载配置并打开数据库（不自动迁移）
func openEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logger.NewLogger(cfg.Log.Level, "console", "kaigoctl")
	if err != nil {
		return nil, err
	}
	db, err := database.Open(cfg.DBDriver, &cfg.Database, &cfg.SQLite)
	if err != nil {
		return nil, err
	}
	return &env{
		cfg:    cfg,
		logger: log,
		db:     db,
		store:  repository.NewStore(db, repository.ParseDialect(cfg.DBDriver)),
	}, nil
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd, exportCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
