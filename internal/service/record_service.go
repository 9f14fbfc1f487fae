package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/kaigoApp/kaigo-app/internal/domain"
	"github.com/kaigoApp/kaigo-app/internal/repository"

	"go.uber.org/zap"
)

// RecordService 支援记录服务
type RecordService struct {
	store  *repository.Store
	logger *zap.Logger
	opts   Options
}

// NewRecordService 创建支援记录服务
func NewRecordService(store *repository.Store, logger *zap.Logger, opts Options) *RecordService {
	return &RecordService{
		store:  store,
		logger: logger,
		opts:   opts.withDefaults(),
	}
}

// PatrolInput 巡视输入
type PatrolInput struct {
	Hour         *int     `json:"hour"`
	Minute       *int     `json:"minute"`
	Status       string   `json:"status"`
	Memo         string   `json:"memo"`
	Intervened   bool     `json:"intervened"`
	DoorOpened   bool     `json:"door_opened"`
	SafetyChecks []string `json:"safety_checks"`
}

// SaveRecordRequest 新增记录请求
type SaveRecordRequest struct {
	UnitID     int64  `json:"unit_id"`
	ResidentID int64  `json:"resident_id"`
	Date       string `json:"date"`
	Hour       *int   `json:"hour"`
	Minute     *int   `json:"minute"`

	Shift      string `json:"shift"`
	AuthorName string `json:"author_name"`
	Scene      string `json:"scene"`
	SceneNote  string `json:"scene_note"`

	VitalsAM   domain.Vitals     `json:"vitals_am"`
	VitalsPM   domain.Vitals     `json:"vitals_pm"`
	Meals      domain.Meals      `json:"meals"`
	Medication domain.Medication `json:"medication"`

	Note  string   `json:"note"`
	Tags  []string `json:"tags"`
	Share bool     `json:"share"`

	Patrols []PatrolInput `json:"patrols"`
}

// SaveRecordResponse 新增记录响应；HandoverID 仅在本次联动生成申し送り时非空
type SaveRecordResponse struct {
	RecordID   int64  `json:"record_id"`
	HandoverID *int64 `json:"handover_id,omitempty"`
}

// RecordItem 列表项：记录本体 + 派生标记
type RecordItem struct {
	*domain.Record
	Flags domain.Flags `json:"flags"`
}

func toItem(rec *domain.Record) RecordItem {
	return RecordItem{Record: rec, Flags: rec.Flags()}
}

// Save 校验并追加一条记录；共享且 note 非空时在同一事务内联动申し送り
func (s *RecordService) Save(ctx context.Context, req SaveRecordRequest) (*SaveRecordResponse, error) {
	rec, err := s.buildRecord(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.opts.opContext(ctx)
	defer cancel()

	var entry *domain.HandoverEntry
	err = s.store.InTx(ctx, func(ctx context.Context, repos *repository.Repositories) error {
		resident, err := repos.Directory.GetResident(ctx, rec.ResidentID)
		if errors.Is(err, repository.ErrNotFound) {
			return invalid("resident_id", "unknown resident %d", rec.ResidentID)
		}
		if err != nil {
			return err
		}
		if resident.UnitID != rec.UnitID {
			return invalid("resident_id", "resident %d does not belong to unit %d", rec.ResidentID, rec.UnitID)
		}

		if _, err := repos.Records.Insert(ctx, rec); err != nil {
			return err
		}
		if !rec.Share {
			return nil
		}
		entry, err = propagateEntry(ctx, repos.Handovers, PropagationSource{
			RecordID:   rec.RecordID,
			UnitID:     rec.UnitID,
			ResidentID: rec.ResidentID,
			Date:       rec.RecordDate,
			Author:     rec.AuthorName,
			Note:       rec.Note,
			CreatedAt:  rec.CreatedAt,
		})
		return err
	})
	if err != nil {
		if !IsValidation(err) {
			s.logger.Error("Failed to save record",
				zap.Int64("resident_id", req.ResidentID),
				zap.String("date", req.Date),
				zap.Error(err),
			)
		}
		return nil, err
	}

	resp := &SaveRecordResponse{RecordID: rec.RecordID}
	fields := []zap.Field{
		zap.Int64("record_id", rec.RecordID),
		zap.Int64("resident_id", rec.ResidentID),
		zap.String("date", rec.RecordDate),
		zap.Int("patrols", len(rec.Patrols)),
	}
	if entry != nil {
		resp.HandoverID = &entry.HandoverID
		fields = append(fields, zap.Int64("handover_id", entry.HandoverID))
		s.opts.Notifier.HandoverCreated(context.WithoutCancel(ctx), entry)
	}
	s.logger.Info("Record saved", fields...)
	return resp, nil
}

// buildRecord 校验输入并构造记录（不访问存储）
func (s *RecordService) buildRecord(req SaveRecordRequest) (*domain.Record, error) {
	if err := requireID("unit_id", req.UnitID); err != nil {
		return nil, err
	}
	if err := requireID("resident_id", req.ResidentID); err != nil {
		return nil, err
	}
	author, err := requireName("author_name", req.AuthorName)
	if err != nil {
		return nil, err
	}
	date, err := validateDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	tod, err := timePair("time", req.Hour, req.Minute)
	if err != nil {
		return nil, err
	}

	shift := strings.TrimSpace(req.Shift)
	if shift == "" {
		shift = domain.ShiftDay
	}
	if err := oneOf("shift", shift, []string{domain.ShiftDay, domain.ShiftNight}); err != nil {
		return nil, err
	}
	scene := strings.TrimSpace(req.Scene)
	if err := oneOf("scene", scene, domain.Scenes); err != nil {
		return nil, err
	}
	sceneNote := strings.TrimSpace(req.SceneNote)
	if scene == "" {
		sceneNote = ""
	}

	if err := validateVitals("vitals_am", req.VitalsAM); err != nil {
		return nil, err
	}
	if err := validateVitals("vitals_pm", req.VitalsPM); err != nil {
		return nil, err
	}
	meals := req.Meals
	for _, m := range []struct {
		field string
		meal  *domain.Meal
	}{
		{"meals.breakfast", &meals.Breakfast},
		{"meals.lunch", &meals.Lunch},
		{"meals.dinner", &meals.Dinner},
	} {
		if err := normalizeMeal(m.field, m.meal); err != nil {
			return nil, err
		}
	}

	patrols, err := buildPatrols(req.Patrols)
	if err != nil {
		return nil, err
	}
	if tod == nil {
		tod = earliestPatrolTime(patrols)
	}

	now := s.opts.Now()
	return &domain.Record{
		UnitID:     req.UnitID,
		ResidentID: req.ResidentID,
		RecordDate: date,
		Time:       tod,
		Shift:      shift,
		AuthorName: author,
		Scene:      scene,
		SceneNote:  sceneNote,
		WakeupFlag: scene == domain.SceneWakeup,
		VitalsAM:   req.VitalsAM,
		VitalsPM:   req.VitalsPM,
		Meals:      meals,
		Medication: req.Medication,
		Note:       noteWithTags(req.Note, req.Tags),
		Share:      req.Share,
		CreatedAt:  now,
		UpdatedAt:  now,
		Patrols:    patrols,
	}, nil
}

func validateVitals(field string, v domain.Vitals) error {
	if v.Temperature != nil {
		t := *v.Temperature
		if math.IsNaN(t) || t < 30 || t > 45 {
			return invalid(field+".temperature", "out of range: %.1f", t)
		}
	}
	for _, c := range []struct {
		name     string
		val      *int
		min, max int
	}{
		{"systolic", v.Systolic, 0, 300},
		{"diastolic", v.Diastolic, 0, 300},
		{"pulse", v.Pulse, 0, 250},
		{"spo2", v.SpO2, 0, 100},
	} {
		if c.val != nil && (*c.val < c.min || *c.val > c.max) {
			return invalid(field+"."+c.name, "out of range: %d", *c.val)
		}
	}
	return nil
}

// normalizeMeal 未进食时分数置 0；进食时分数必须在 1..10
func normalizeMeal(field string, m *domain.Meal) error {
	if !m.Done {
		m.Score = 0
		return nil
	}
	if m.Score < 1 || m.Score > 10 {
		return invalid(field+".score", "must be 1..10, got %d", m.Score)
	}
	return nil
}

// noteWithTags 有标签时在 note 前加 "[tags: a, b]" 一行
func noteWithTags(note string, tags []string) string {
	note = strings.TrimSpace(note)
	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" && !slices.Contains(clean, t) {
			clean = append(clean, t)
		}
	}
	if len(clean) == 0 {
		return note
	}
	prefix := "[tags: " + strings.Join(clean, ", ") + "]"
	if note == "" {
		return prefix
	}
	return prefix + "\n" + note
}

// buildPatrols 丢弃全空的巡视，按输入顺序编号
func buildPatrols(in []PatrolInput) ([]domain.Patrol, error) {
	out := make([]domain.Patrol, 0, len(in))
	for i, p := range in {
		field := fmt.Sprintf("patrols[%d]", i)
		tod, err := timePair(field+".time", p.Hour, p.Minute)
		if err != nil {
			return nil, err
		}
		status := strings.TrimSpace(p.Status)
		if err := oneOf(field+".status", status, domain.PatrolStatuses); err != nil {
			return nil, err
		}
		patrol := domain.Patrol{
			Time:         tod,
			Status:       status,
			Memo:         strings.TrimSpace(p.Memo),
			Intervened:   p.Intervened,
			DoorOpened:   p.DoorOpened,
			SafetyChecks: normalizeChecks(p.SafetyChecks),
		}
		if !patrol.HasContent() {
			continue
		}
		if len(out) == domain.MaxPatrols {
			return nil, invalid("patrols", "at most %d patrols per record", domain.MaxPatrols)
		}
		patrol.PatrolNo = len(out) + 1
		out = append(out, patrol)
	}
	return out, nil
}

// normalizeChecks 固定选项按目录顺序在前，自由输入在后；去重，去掉逗号（存储分隔符）
func normalizeChecks(in []string) []string {
	var fixed, free []string
	for _, c := range in {
		c = strings.TrimSpace(strings.ReplaceAll(c, ",", " "))
		if c == "" || slices.Contains(fixed, c) || slices.Contains(free, c) {
			continue
		}
		if slices.Contains(domain.SafetyChecks, c) {
			fixed = append(fixed, c)
		} else {
			free = append(free, c)
		}
	}
	slices.SortFunc(fixed, func(a, b string) int {
		return slices.Index(domain.SafetyChecks, a) - slices.Index(domain.SafetyChecks, b)
	})
	if len(fixed)+len(free) == 0 {
		return nil
	}
	return append(fixed, free...)
}

func earliestPatrolTime(patrols []domain.Patrol) *domain.TimeOfDay {
	var best *domain.TimeOfDay
	for _, p := range patrols {
		if p.Time == nil {
			continue
		}
		if best == nil || p.Time.Hour*60+p.Time.Minute < best.Hour*60+best.Minute {
			t := *p.Time
			best = &t
		}
	}
	return best
}

// SoftDelete 删除记录（幂等；未知 ID 不报错）。已联动的申し送り不受影响。
func (s *RecordService) SoftDelete(ctx context.Context, recordID int64) error {
	if err := requireID("record_id", recordID); err != nil {
		return err
	}
	ctx, cancel := s.opts.opContext(ctx)
	defer cancel()

	changed, err := s.store.Records.SoftDelete(ctx, recordID, s.opts.Now())
	if err != nil {
		s.logger.Error("Failed to delete record", zap.Int64("record_id", recordID), zap.Error(err))
		return err
	}
	if changed {
		s.logger.Info("Record deleted", zap.Int64("record_id", recordID))
	}
	return nil
}

// Get 按 ID 获取记录（包含已删除的）
func (s *RecordService) Get(ctx context.Context, recordID int64) (*RecordItem, error) {
	if err := requireID("record_id", recordID); err != nil {
		return nil, err
	}
	ctx, cancel := s.opts.opContext(ctx)
	defer cancel()

	rec, err := s.store.Records.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}
	item := toItem(rec)
	return &item, nil
}

// ListActive 某入居者某日的有效记录
func (s *RecordService) ListActive(ctx context.Context, residentID int64, date string) ([]RecordItem, error) {
	if err := requireID("resident_id", residentID); err != nil {
		return nil, err
	}
	date, err := validateDate("date", date)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.opts.opContext(ctx)
	defer cancel()

	recs, err := s.store.Records.ListActive(ctx, residentID, date)
	if err != nil {
		return nil, err
	}
	items := make([]RecordItem, 0, len(recs))
	for _, rec := range recs {
		items = append(items, toItem(rec))
	}
	return items, nil
}

// LatestVitalsResponse 最近一次生命体征（表单默认值用）
type LatestVitalsResponse struct {
	RecordID   *int64        `json:"record_id"`
	RecordDate string        `json:"record_date,omitempty"`
	VitalsAM   domain.Vitals `json:"vitals_am"`
	VitalsPM   domain.Vitals `json:"vitals_pm"`
}

// LatestVitals 最近一条带生命体征的有效记录；没有时返回空值
func (s *RecordService) LatestVitals(ctx context.Context, residentID int64) (*LatestVitalsResponse, error) {
	if err := requireID("resident_id", residentID); err != nil {
		return nil, err
	}
	ctx, cancel := s.opts.opContext(ctx)
	defer cancel()

	rec, err := s.store.Records.LatestVitals(ctx, residentID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return &LatestVitalsResponse{}, nil
	}
	return &LatestVitalsResponse{
		RecordID:   &rec.RecordID,
		RecordDate: rec.RecordDate,
		VitalsAM:   rec.VitalsAM,
		VitalsPM:   rec.VitalsPM,
	}, nil
}
