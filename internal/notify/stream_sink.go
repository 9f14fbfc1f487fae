package notify

import (
	"context"

	commonredis "github.com/kaigoApp/kaigo-app/internal/common/redis"

	"github.com/go-redis/redis/v8"
)

type streamPublishFunc func(ctx context.Context, stream, eventType string, data any) (string, error)

// StreamSink XADD 到 Redis Stream，供其他服务消费
type StreamSink struct {
	stream  string
	publish streamPublishFunc
}

func NewStreamSink(client *redis.Client, stream string) *StreamSink {
	return &StreamSink{
		stream: stream,
		publish: func(ctx context.Context, stream, eventType string, data any) (string, error) {
			return commonredis.PublishJSONToStream(ctx, client, stream, eventType, data)
		},
	}
}

func (s *StreamSink) Name() string { return "redis_stream" }

func (s *StreamSink) Send(ctx context.Context, ev Event) error {
	_, err := s.publish(ctx, s.stream, ev.Type, ev.Handover)
	return err
}
