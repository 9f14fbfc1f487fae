package repository

import (
	"context"
	"time"

	"github.com/kaigoApp/kaigo-app/internal/domain"
)

// AcknowledgementsRepository 确认标记 Repository
// Toggle 由多条语句组成，调用方需在事务内调用
type AcknowledgementsRepository interface {
	Toggle(ctx context.Context, handoverID int64, person, markType string, now time.Time) (domain.ToggleResult, error)
	// List markType 为空时返回全部类型；按 created_at, id 升序
	List(ctx context.Context, handoverID int64, markType string) ([]domain.Acknowledgement, error)
	Has(ctx context.Context, handoverID int64, person, markType string) (bool, error)
}
