package service

import (
	"context"
	"time"

	"github.com/kaigoApp/kaigo-app/internal/domain"
)

// DefaultOpTimeout 单次存储操作的默认期限
const DefaultOpTimeout = 10 * time.Second

// HandoverNotifier 申し送り创建并提交后调用；实现方自行处理失败（不回传给调用方）
type HandoverNotifier interface {
	HandoverCreated(ctx context.Context, h *domain.HandoverEntry)
}

type nopNotifier struct{}

func (nopNotifier) HandoverCreated(context.Context, *domain.HandoverEntry) {}

// Options 各服务共用的可选项
type Options struct {
	OpTimeout time.Duration
	Notifier  HandoverNotifier
	Now       func() time.Time
}

func (o Options) withDefaults() Options {
	if o.OpTimeout <= 0 {
		o.OpTimeout = DefaultOpTimeout
	}
	if o.Notifier == nil {
		o.Notifier = nopNotifier{}
	}
	if o.Now == nil {
		o.Now = func() time.Time { return time.Now().UTC() }
	}
	return o
}

func (o Options) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, o.OpTimeout)
}
