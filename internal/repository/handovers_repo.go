package repository

import (
	"context"

	"github.com/kaigoApp/kaigo-app/internal/domain"
)

// HandoversRepository 申し送り Repository
type HandoversRepository interface {
	// Insert 手动发布；不去重
	Insert(ctx context.Context, h *domain.HandoverEntry) (int64, error)
	// InsertFromRecord 由记录联动生成；source_record_id 冲突时返回 nil（不是错误）
	InsertFromRecord(ctx context.Context, h *domain.HandoverEntry) (*int64, error)
	// Get 按 ID 获取（包含已删除的）
	Get(ctx context.Context, handoverID int64) (*domain.HandoverEntry, error)
	// ListForDate 某单元某日的有效条目，新的在前
	ListForDate(ctx context.Context, unitID int64, date string) ([]*domain.HandoverEntry, error)
	// SoftDelete 返回是否有行被改变
	SoftDelete(ctx context.Context, handoverID int64) (bool, error)
	// CountBySource 引用某记录的条目数（含已删除）
	CountBySource(ctx context.Context, recordID int64) (int, error)
}
