package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// WebhookSink POST 事件 JSON 到外部 URL（例如聊天工具的 incoming webhook）
type WebhookSink struct {
	client *resty.Client
	url    string
}

func NewWebhookSink(url string) *WebhookSink {
	client := resty.New().
		SetTimeout(5*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(200*time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		SetHeader("Content-Type", "application/json")
	return &WebhookSink{client: client, url: url}
}

func (s *WebhookSink) Name() string { return "webhook" }

func (s *WebhookSink) Send(ctx context.Context, ev Event) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(ev).
		Post(s.url)
	if err != nil {
		return fmt.Errorf("failed to call webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook returned %d", resp.StatusCode())
	}
	return nil
}
