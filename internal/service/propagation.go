package service

import (
	"context"
	"strings"
	"time"

	"github.com/kaigoApp/kaigo-app/internal/domain"
	"github.com/kaigoApp/kaigo-app/internal/repository"
)

// PropagationSource 记录联动到申し送り时需要的字段
type PropagationSource struct {
	RecordID   int64
	UnitID     int64
	ResidentID int64
	Date       string
	Author     string
	Note       string
	CreatedAt  time.Time
}

// Propagate 将共享记录的特记事项复制为一条申し送り。
// 单向、一次性：note 为空或该记录已经联动过时返回 nil（不是错误）。
// 必须和记录写入在同一事务内调用。
func Propagate(ctx context.Context, handovers repository.HandoversRepository, src PropagationSource) (*int64, error) {
	entry, err := propagateEntry(ctx, handovers, src)
	if err != nil || entry == nil {
		return nil, err
	}
	return &entry.HandoverID, nil
}

func propagateEntry(ctx context.Context, handovers repository.HandoversRepository, src PropagationSource) (*domain.HandoverEntry, error) {
	content := strings.TrimSpace(src.Note)
	if content == "" {
		return nil, nil
	}

	residentID := src.ResidentID
	recordID := src.RecordID
	entry := &domain.HandoverEntry{
		UnitID:         src.UnitID,
		ResidentID:     &residentID,
		HandoverDate:   src.Date,
		Content:        content,
		AuthorName:     strings.TrimSpace(src.Author),
		SourceRecordID: &recordID,
		CreatedAt:      src.CreatedAt,
	}
	id, err := handovers.InsertFromRecord(ctx, entry)
	if err != nil || id == nil {
		return nil, err
	}
	return entry, nil
}
