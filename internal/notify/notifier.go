// Package notify 把申し送り事件推送到外部（MQTT / Redis Stream / Webhook）。
// 推送失败只记日志，不影响已经提交的数据。
package notify

import (
	"context"
	"time"

	"github.com/kaigoApp/kaigo-app/internal/domain"

	"go.uber.org/zap"
)

// EventHandoverCreated 申し送り新增事件
const EventHandoverCreated = "handover.created"

// Event 推送给各 sink 的事件
type Event struct {
	Type       string                `json:"type"`
	Handover   *domain.HandoverEntry `json:"handover"`
	OccurredAt time.Time             `json:"occurred_at"`
}

// Sink 一个推送目标
type Sink interface {
	Name() string
	Send(ctx context.Context, ev Event) error
}

// Notifier 依次推送到所有 sink，每个 sink 单独计时
type Notifier struct {
	sinks   []Sink
	timeout time.Duration
	logger  *zap.Logger
}

func NewNotifier(logger *zap.Logger, timeout time.Duration, sinks ...Sink) *Notifier {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Notifier{sinks: sinks, timeout: timeout, logger: logger}
}

// Sinks 已配置的 sink 名称
func (n *Notifier) Sinks() []string {
	out := make([]string, 0, len(n.sinks))
	for _, s := range n.sinks {
		out = append(out, s.Name())
	}
	return out
}

// HandoverCreated 实现 service.HandoverNotifier
func (n *Notifier) HandoverCreated(ctx context.Context, h *domain.HandoverEntry) {
	if h == nil || len(n.sinks) == 0 {
		return
	}
	ev := Event{Type: EventHandoverCreated, Handover: h, OccurredAt: time.Now().UTC()}
	for _, s := range n.sinks {
		sctx, cancel := context.WithTimeout(ctx, n.timeout)
		err := s.Send(sctx, ev)
		cancel()
		if err != nil {
			n.logger.Warn("Failed to push handover event",
				zap.String("sink", s.Name()),
				zap.Int64("handover_id", h.HandoverID),
				zap.Error(err),
			)
			continue
		}
		n.logger.Debug("Handover event pushed", zap.String("sink", s.Name()), zap.Int64("handover_id", h.HandoverID))
	}
}
