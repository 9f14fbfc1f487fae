package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/kaigoApp/kaigo-app/internal/common/config"
	"github.com/kaigoApp/kaigo-app/internal/common/database"
	"github.com/kaigoApp/kaigo-app/internal/domain"
	"github.com/kaigoApp/kaigo-app/internal/migrations"
	"github.com/kaigoApp/kaigo-app/internal/repository"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingNotifier 记录收到的申し送り通知
type recordingNotifier struct {
	mu      sync.Mutex
	entries []*domain.HandoverEntry
}

func (n *recordingNotifier) HandoverCreated(_ context.Context, h *domain.HandoverEntry) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.entries = append(n.entries, h)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.entries)
}

// fakeClock 每次调用前进一秒，保证 created_at 严格递增
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type env struct {
	store     *repository.Store
	notifier  *recordingNotifier
	records   *RecordService
	handovers *HandoverService
	acks      *AcknowledgementService
	directory *DirectoryService
	unit      *domain.Unit
	resident  *domain.Resident
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := database.NewSQLiteDB(&config.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, migrations.Up(ctx, db, database.DriverSQLite, zap.NewNop()))

	store := repository.NewStore(db, repository.DialectSQLite)
	clock := &fakeClock{t: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
	n := &recordingNotifier{}
	opts := Options{OpTimeout: 5 * time.Second, Notifier: n, Now: clock.Now}
	logger := zap.NewNop()

	e := &env{
		store:     store,
		notifier:  n,
		records:   NewRecordService(store, logger, opts),
		handovers: NewHandoverService(store, logger, opts),
		acks:      NewAcknowledgementService(store, logger, opts),
		directory: NewDirectoryService(store, logger, opts),
	}
	e.unit, err = e.directory.CreateUnit(ctx, CreateUnitRequest{Name: "3F"})
	require.NoError(t, err)
	e.resident, err = e.directory.CreateResident(ctx, CreateResidentRequest{UnitID: e.unit.UnitID, Name: "Resident 7"})
	require.NoError(t, err)
	return e
}

func (e *env) saveReq(note string, share bool) SaveRecordRequest {
	return SaveRecordRequest{
		UnitID:     e.unit.UnitID,
		ResidentID: e.resident.ResidentID,
		Date:       "2024-05-01",
		AuthorName: "Nurse A",
		Note:       note,
		Share:      share,
	}
}

func ptr[T any](v T) *T { return &v }
