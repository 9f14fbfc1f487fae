package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/kaigoApp/kaigo-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePublisher struct {
	mu       sync.Mutex
	topics   []string
	payloads [][]byte
	err      error
}

func (p *fakePublisher) Publish(topic string, _ byte, _ bool, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
	return p.err
}

type countingSink struct {
	name string
	err  error
	n    int
}

func (s *countingSink) Name() string { return s.name }
func (s *countingSink) Send(context.Context, Event) error {
	s.n++
	return s.err
}

func entry() *domain.HandoverEntry {
	return &domain.HandoverEntry{HandoverID: 55, UnitID: 3, HandoverDate: "2024-05-01", Content: "Fell in hallway", AuthorName: "Nurse A"}
}

func TestNotifier_FailingSinkDoesNotStopOthers(t *testing.T) {
	bad := &countingSink{name: "bad", err: errors.New("down")}
	good := &countingSink{name: "good"}
	n := NewNotifier(zap.NewNop(), time.Second, bad, good)

	n.HandoverCreated(context.Background(), entry())
	assert.Equal(t, 1, bad.n)
	assert.Equal(t, 1, good.n)
	assert.Equal(t, []string{"bad", "good"}, n.Sinks())

	n.HandoverCreated(context.Background(), nil)
	assert.Equal(t, 1, good.n)
}

func TestMQTTSink(t *testing.T) {
	pub := &fakePublisher{}
	s := NewMQTTSink(pub, "kaigo/handovers", 1)

	require.NoError(t, s.Send(context.Background(), Event{Type: EventHandoverCreated, Handover: entry()}))
	require.Len(t, pub.topics, 1)
	assert.Equal(t, "kaigo/handovers/3", pub.topics[0])

	var got Event
	require.NoError(t, json.Unmarshal(pub.payloads[0], &got))
	assert.Equal(t, EventHandoverCreated, got.Type)
	assert.Equal(t, int64(55), got.Handover.HandoverID)
}

func TestStreamSink(t *testing.T) {
	var gotStream, gotType string
	s := &StreamSink{
		stream: "kaigo:handovers",
		publish: func(_ context.Context, stream, eventType string, data any) (string, error) {
			gotStream, gotType = stream, eventType
			assert.IsType(t, &domain.HandoverEntry{}, data)
			return "1-0", nil
		},
	}
	require.NoError(t, s.Send(context.Background(), Event{Type: EventHandoverCreated, Handover: entry()}))
	assert.Equal(t, "kaigo:handovers", gotStream)
	assert.Equal(t, EventHandoverCreated, gotType)
}

func TestWebhookSink(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s := NewWebhookSink(srv.URL)
	require.NoError(t, s.Send(context.Background(), Event{Type: EventHandoverCreated, Handover: entry()}))

	var got Event
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "Fell in hallway", got.Handover.Content)
}

func TestWebhookSink_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	err := NewWebhookSink(srv.URL).Send(context.Background(), Event{Type: EventHandoverCreated, Handover: entry()})
	assert.Error(t, err)
}
