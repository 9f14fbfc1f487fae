package repository

import (
	"context"

	"github.com/kaigoApp/kaigo-app/internal/domain"
)

// DirectoryRepository 单元 / 入居者目录
// 只读为主；Create 用于初始数据导入（kaigoctl seed）和测试
type DirectoryRepository interface {
	ListUnits(ctx context.Context, activeOnly bool) ([]*domain.Unit, error)
	GetUnit(ctx context.Context, unitID int64) (*domain.Unit, error)
	CreateUnit(ctx context.Context, unit *domain.Unit) (int64, error)

	ListResidents(ctx context.Context, unitID int64, activeOnly bool) ([]*domain.Resident, error)
	GetResident(ctx context.Context, residentID int64) (*domain.Resident, error)
	CreateResident(ctx context.Context, resident *domain.Resident) (int64, error)
}
