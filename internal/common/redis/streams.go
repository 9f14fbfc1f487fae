package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// StreamMaxLen 流的近似最大长度，超出部分由 Redis 裁剪
const StreamMaxLen = 10000

// streamValue 将任意值转换为 Redis Streams 字段值（字符串）
func streamValue(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case []byte:
		return string(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case bool:
		return strconv.FormatBool(val), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

// PublishToStream 发布消息到 Redis Streams（XADD，近似裁剪）
func PublishToStream(ctx context.Context, client *redis.Client, stream string, values map[string]any) (string, error) {
	fields := make(map[string]any, len(values))
	for k, v := range values {
		s, err := streamValue(v)
		if err != nil {
			return "", fmt.Errorf("failed to encode stream field %s: %w", k, err)
		}
		fields[k] = s
	}

	return client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		MaxLen: StreamMaxLen,
		Approx: true,
		Values: fields,
	}).Result()
}

// PublishJSONToStream 以 {type, data, timestamp} 形式发布 JSON 消息
func PublishJSONToStream(ctx context.Context, client *redis.Client, stream, eventType string, data any) (string, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return PublishToStream(ctx, client, stream, map[string]any{
		"type":      eventType,
		"data":      string(b),
		"timestamp": time.Now().Unix(),
	})
}
