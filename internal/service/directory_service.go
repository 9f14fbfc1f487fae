package service

import (
	"context"

	"github.com/kaigoApp/kaigo-app/internal/domain"
	"github.com/kaigoApp/kaigo-app/internal/repository"

	"go.uber.org/zap"
)

// DirectoryService 单元 / 入居者目录服务
type DirectoryService struct {
	store  *repository.Store
	logger *zap.Logger
	opts   Options
}

// NewDirectoryService 创建目录服务
func NewDirectoryService(store *repository.Store, logger *zap.Logger, opts Options) *DirectoryService {
	return &DirectoryService{
		store:  store,
		logger: logger,
		opts:   opts.withDefaults(),
	}
}

func (s *DirectoryService) ListUnits(ctx context.Context, includeInactive bool) ([]*domain.Unit, error) {
	ctx, cancel := s.opts.opContext(ctx)
	defer cancel()
	return s.store.Directory.ListUnits(ctx, !includeInactive)
}

// CreateUnitRequest 新增单元
type CreateUnitRequest struct {
	Name string `json:"name"`
}

func (s *DirectoryService) CreateUnit(ctx context.Context, req CreateUnitRequest) (*domain.Unit, error) {
	name, err := requireName("name", req.Name)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.opts.opContext(ctx)
	defer cancel()

	u := &domain.Unit{Name: name, IsActive: true, CreatedAt: s.opts.Now()}
	if _, err := s.store.Directory.CreateUnit(ctx, u); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, invalid("name", "unit %q already exists", name)
		}
		return nil, err
	}
	s.logger.Info("Unit created", zap.Int64("unit_id", u.UnitID), zap.String("name", name))
	return u, nil
}

func (s *DirectoryService) ListResidents(ctx context.Context, unitID int64, includeInactive bool) ([]*domain.Resident, error) {
	if err := requireID("unit_id", unitID); err != nil {
		return nil, err
	}
	ctx, cancel := s.opts.opContext(ctx)
	defer cancel()
	return s.store.Directory.ListResidents(ctx, unitID, !includeInactive)
}

// CreateResidentRequest 新增入居者
type CreateResidentRequest struct {
	UnitID    int64  `json:"unit_id"`
	Name      string `json:"name"`
	CareLevel string `json:"care_level"`
	Disease   string `json:"disease"`
}

func (s *DirectoryService) CreateResident(ctx context.Context, req CreateResidentRequest) (*domain.Resident, error) {
	if err := requireID("unit_id", req.UnitID); err != nil {
		return nil, err
	}
	name, err := requireName("name", req.Name)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.opts.opContext(ctx)
	defer cancel()

	r := &domain.Resident{
		UnitID:    req.UnitID,
		Name:      name,
		CareLevel: req.CareLevel,
		Disease:   req.Disease,
		IsActive:  true,
		CreatedAt: s.opts.Now(),
	}
	if _, err := s.store.Directory.CreateResident(ctx, r); err != nil {
		return nil, err
	}
	s.logger.Info("Resident created", zap.Int64("resident_id", r.ResidentID), zap.Int64("unit_id", r.UnitID))
	return r, nil
}
