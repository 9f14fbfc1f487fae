// Package export 把某单元某日的记录和申し送り导出为 xlsx（只读）
package export

import (
	"context"
	"fmt"

	"github.com/kaigoApp/kaigo-app/internal/domain"
	"github.com/kaigoApp/kaigo-app/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DailyReport 导出所需的全部数据
type DailyReport struct {
	Unit      *domain.Unit
	Date      string
	Residents map[int64]*domain.Resident
	Records   []*domain.Record
	Handovers []*domain.HandoverEntry
}

// ResidentName 找不到时显示 ID
func (r *DailyReport) ResidentName(id int64) string {
	if res, ok := r.Residents[id]; ok {
		return res.Name
	}
	return fmt.Sprintf("#%d", id)
}

// Collector 并发读取导出数据
type Collector struct {
	store  *repository.Store
	logger *zap.Logger
}

func NewCollector(store *repository.Store, logger *zap.Logger) *Collector {
	return &Collector{store: store, logger: logger}
}

func (c *Collector) Collect(ctx context.Context, unitID int64, date string) (*DailyReport, error) {
	report := &DailyReport{Date: date, Residents: map[int64]*domain.Resident{}}
	var residents []*domain.Resident

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := c.store.Directory.GetUnit(gctx, unitID)
		report.Unit = u
		return err
	})
	g.Go(func() error {
		var err error
		// 包含停用的入居者：历史记录仍然要显示姓名
		residents, err = c.store.Directory.ListResidents(gctx, unitID, false)
		return err
	})
	g.Go(func() error {
		var err error
		report.Records, err = c.store.Records.ListActiveByUnit(gctx, unitID, date)
		return err
	})
	g.Go(func() error {
		var err error
		report.Handovers, err = c.store.Handovers.ListForDate(gctx, unitID, date)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, r := range residents {
		report.Residents[r.ResidentID] = r
	}
	c.logger.Debug("Export data collected",
		zap.Int64("unit_id", unitID),
		zap.String("date", date),
		zap.Int("records", len(report.Records)),
		zap.Int("handovers", len(report.Handovers)),
	)
	return report, nil
}
