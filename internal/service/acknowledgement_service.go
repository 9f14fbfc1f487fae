package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/kaigoApp/kaigo-app/internal/domain"
	"github.com/kaigoApp/kaigo-app/internal/repository"

	"go.uber.org/zap"
)

// AcknowledgementService 确认标记服务
type AcknowledgementService struct {
	store  *repository.Store
	logger *zap.Logger
	opts   Options
}

// NewAcknowledgementService 创建确认标记服务
func NewAcknowledgementService(store *repository.Store, logger *zap.Logger, opts Options) *AcknowledgementService {
	return &AcknowledgementService{
		store:  store,
		logger: logger,
		opts:   opts.withDefaults(),
	}
}

// normalizeMarkType 空值默认为 like
func normalizeMarkType(markType string) (string, error) {
	markType = strings.TrimSpace(markType)
	if markType == "" {
		return domain.MarkLike, nil
	}
	if utf8.RuneCountInString(markType) > domain.MaxMarkTypeLen {
		return "", invalid("mark_type", "must be at most %d characters", domain.MaxMarkTypeLen)
	}
	return markType, nil
}

// Toggle 有则删、无则加；整个过程在一个事务内完成
func (s *AcknowledgementService) Toggle(ctx context.Context, handoverID int64, person, markType string) (domain.ToggleResult, error) {
	if err := requireID("handover_id", handoverID); err != nil {
		return "", err
	}
	person, err := requireName("person_name", person)
	if err != nil {
		return "", err
	}
	markType, err = normalizeMarkType(markType)
	if err != nil {
		return "", err
	}

	ctx, cancel := s.opts.opContext(ctx)
	defer cancel()

	var result domain.ToggleResult
	err = s.store.InTx(ctx, func(ctx context.Context, repos *repository.Repositories) error {
		var err error
		result, err = repos.Acknowledgements.Toggle(ctx, handoverID, person, markType, s.opts.Now())
		return err
	})
	if err != nil {
		s.logger.Error("Failed to toggle mark",
			zap.Int64("handover_id", handoverID),
			zap.String("mark_type", markType),
			zap.Error(err),
		)
		return "", err
	}

	s.logger.Debug("Mark toggled",
		zap.Int64("handover_id", handoverID),
		zap.String("person_name", person),
		zap.String("mark_type", markType),
		zap.String("result", string(result)),
	)
	return result, nil
}

// ListMarks 某条申し送り的标记，按时间先后；markType 为空时取 like
func (s *AcknowledgementService) ListMarks(ctx context.Context, handoverID int64, markType string) ([]domain.Acknowledgement, error) {
	if err := requireID("handover_id", handoverID); err != nil {
		return nil, err
	}
	markType, err := normalizeMarkType(markType)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.opts.opContext(ctx)
	defer cancel()

	return s.store.Acknowledgements.List(ctx, handoverID, markType)
}

// HasMark 某人是否已标记
func (s *AcknowledgementService) HasMark(ctx context.Context, handoverID int64, person, markType string) (bool, error) {
	if err := requireID("handover_id", handoverID); err != nil {
		return false, err
	}
	person, err := requireName("person_name", person)
	if err != nil {
		return false, err
	}
	markType, err = normalizeMarkType(markType)
	if err != nil {
		return false, err
	}
	ctx, cancel := s.opts.opContext(ctx)
	defer cancel()

	return s.store.Acknowledgements.Has(ctx, handoverID, person, markType)
}
