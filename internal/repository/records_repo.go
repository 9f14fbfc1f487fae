package repository

import (
	"context"
	"time"

	"github.com/kaigoApp/kaigo-app/internal/domain"
)

// RecordsRepository 支援记录 Repository
// 只追加：没有 Update，只能 Insert 与 SoftDelete
type RecordsRepository interface {
	// Insert 插入记录及其巡视子记录，回填 RecordID / PatrolID
	Insert(ctx context.Context, rec *domain.Record) (int64, error)
	// Get 按 ID 获取（包含已删除的，供审计）
	Get(ctx context.Context, recordID int64) (*domain.Record, error)
	// ListActive 某入居者某日的有效记录，有时刻的在前，按时、分、ID 排序
	ListActive(ctx context.Context, residentID int64, date string) ([]*domain.Record, error)
	// ListActiveByUnit 某单元某日全部入居者的有效记录（导出用），先按 resident_id 分组
	ListActiveByUnit(ctx context.Context, unitID int64, date string) ([]*domain.Record, error)
	// SoftDelete 置删除标记；返回是否有行被改变（未知 ID / 已删除 返回 false）
	SoftDelete(ctx context.Context, recordID int64, now time.Time) (bool, error)
	// LatestVitals 最近一条带生命体征的有效记录；没有则返回 nil
	LatestVitals(ctx context.Context, residentID int64) (*domain.Record, error)
}
