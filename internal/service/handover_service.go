package service

import (
	"context"
	"strings"

	"github.com/kaigoApp/kaigo-app/internal/domain"
	"github.com/kaigoApp/kaigo-app/internal/repository"

	"go.uber.org/zap"
)

// HandoverService 申し送り服务
type HandoverService struct {
	store  *repository.Store
	logger *zap.Logger
	opts   Options
}

// NewHandoverService 创建申し送り服务
func NewHandoverService(store *repository.Store, logger *zap.Logger, opts Options) *HandoverService {
	return &HandoverService{
		store:  store,
		logger: logger,
		opts:   opts.withDefaults(),
	}
}

// PostHandoverRequest 手动发布请求；ResidentID 为空表示全体
type PostHandoverRequest struct {
	UnitID     int64  `json:"unit_id"`
	ResidentID *int64 `json:"resident_id"`
	Date       string `json:"date"`
	Content    string `json:"content"`
	AuthorName string `json:"author_name"`
}

// Post 发布一条申し送り（不去重）
func (s *HandoverService) Post(ctx context.Context, req PostHandoverRequest) (int64, error) {
	if err := requireID("unit_id", req.UnitID); err != nil {
		return 0, err
	}
	if req.ResidentID != nil {
		if err := requireID("resident_id", *req.ResidentID); err != nil {
			return 0, err
		}
	}
	date, err := validateDate("date", req.Date)
	if err != nil {
		return 0, err
	}
	content, err := requireName("content", req.Content)
	if err != nil {
		return 0, err
	}
	author, err := requireName("author_name", req.AuthorName)
	if err != nil {
		return 0, err
	}

	ctx, cancel := s.opts.opContext(ctx)
	defer cancel()

	entry := &domain.HandoverEntry{
		UnitID:       req.UnitID,
		ResidentID:   req.ResidentID,
		HandoverDate: date,
		Content:      content,
		AuthorName:   author,
		CreatedAt:    s.opts.Now(),
	}
	id, err := s.store.Handovers.Insert(ctx, entry)
	if err != nil {
		s.logger.Error("Failed to post handover", zap.Int64("unit_id", req.UnitID), zap.Error(err))
		return 0, err
	}

	s.logger.Info("Handover posted", zap.Int64("handover_id", id), zap.Int64("unit_id", req.UnitID), zap.String("date", date))
	s.opts.Notifier.HandoverCreated(context.WithoutCancel(ctx), entry)
	return id, nil
}

// ListForDate 某单元某日的有效申し送り，新的在前
func (s *HandoverService) ListForDate(ctx context.Context, unitID int64, date string) ([]*domain.HandoverEntry, error) {
	if err := requireID("unit_id", unitID); err != nil {
		return nil, err
	}
	date, err := validateDate("date", date)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.opts.opContext(ctx)
	defer cancel()

	return s.store.Handovers.ListForDate(ctx, unitID, date)
}

// SoftDelete 删除申し送り（幂等）。二次确认由调用方负责。
func (s *HandoverService) SoftDelete(ctx context.Context, handoverID int64) error {
	if err := requireID("handover_id", handoverID); err != nil {
		return err
	}
	ctx, cancel := s.opts.opContext(ctx)
	defer cancel()

	changed, err := s.store.Handovers.SoftDelete(ctx, handoverID)
	if err != nil {
		s.logger.Error("Failed to delete handover", zap.Int64("handover_id", handoverID), zap.Error(err))
		return err
	}
	if changed {
		s.logger.Info("Handover deleted", zap.Int64("handover_id", handoverID))
	}
	return nil
}

// BoardItem 看板项：条目 + 标记列表 + 当前查看者是否已标记
type BoardItem struct {
	*domain.HandoverEntry
	MarkType  string                   `json:"mark_type"`
	MarkCount int                      `json:"mark_count"`
	Marks     []domain.Acknowledgement `json:"marks"`
	Marked    bool                     `json:"marked"`
}

// Board 某单元某日的申し送り看板；viewer 可为空（此时 Marked 恒为 false）
func (s *HandoverService) Board(ctx context.Context, unitID int64, date, viewer, markType string) ([]BoardItem, error) {
	markType, err := normalizeMarkType(markType)
	if err != nil {
		return nil, err
	}
	entries, err := s.ListForDate(ctx, unitID, date)
	if err != nil {
		return nil, err
	}
	viewer = strings.TrimSpace(viewer)

	ctx, cancel := s.opts.opContext(ctx)
	defer cancel()

	items := make([]BoardItem, 0, len(entries))
	for _, e := range entries {
		marks, err := s.store.Acknowledgements.List(ctx, e.HandoverID, markType)
		if err != nil {
			return nil, err
		}
		item := BoardItem{HandoverEntry: e, MarkType: markType, MarkCount: len(marks), Marks: marks}
		for _, m := range marks {
			if viewer != "" && m.PersonName == viewer {
				item.Marked = true
				break
			}
		}
		items = append(items, item)
	}
	return items, nil
}
