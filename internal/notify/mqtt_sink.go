package notify

import (
	"context"
	"encoding/json"
	"fmt"
)

// Publisher 由 internal/common/mqtt.Client 实现
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload []byte) error
}

// MQTTSink 发布到 <topic>/<unit_id>
type MQTTSink struct {
	pub   Publisher
	topic string
	qos   byte
}

func NewMQTTSink(pub Publisher, topic string, qos byte) *MQTTSink {
	return &MQTTSink{pub: pub, topic: topic, qos: qos}
}

func (s *MQTTSink) Name() string { return "mqtt" }

func (s *MQTTSink) Send(ctx context.Context, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	topic := fmt.Sprintf("%s/%d", s.topic, ev.Handover.UnitID)
	return s.pub.Publish(topic, s.qos, false, payload)
}
