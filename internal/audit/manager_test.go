package audit

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/skaterent/rentbot/internal/kafka"
)

type recordingProducer struct {
	mu      sync.Mutex
	batches [][]kafka.Message
	topics  []string
	err     error
}

func (p *recordingProducer) SendMessages(_ context.Context, topic string, msgs ...kafka.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.batches = append(p.batches, msgs)
	p.topics = append(p.topics, topic)
	return nil
}

func (p *recordingProducer) Close() error { return nil }

func (p *recordingProducer) messages() []kafka.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	var all []kafka.Message
	for _, b := range p.batches {
		all = append(all, b...)
	}
	return all
}

func TestManager_FlushesFullBatches(t *testing.T) {
	producer := &recordingProducer{}
	m := NewManager(Config{Workers: 1, BatchSize: 2, FlushTimeout: time.Hour, Topic: "rental_events"}, producer, zap.NewNop())
	m.Start(context.Background())

	ctx := context.Background()
	m.Record(ctx, Event{Action: "rent_start", TelegramID: 42})
	m.Record(ctx, Event{Action: "rent_end", TelegramID: 42})

	require.Eventually(t, func() bool { return len(producer.messages()) == 2 }, time.Second, 10*time.Millisecond)

	m.Shutdown(context.Background())
	assert.Equal(t, 0, m.Pending())
	assert.Equal(t, []string{"rental_events"}, producer.topics)

	var ev Event
	msg := producer.messages()[0]
	require.NoError(t, json.Unmarshal(msg.Value, &ev))
	assert.Equal(t, "rent_start", ev.Action)
	assert.Equal(t, ev.ID.String(), string(msg.Key))
	assert.False(t, ev.OccurredAt.IsZero())
}

func TestManager_FlushesOnTimeout(t *testing.T) {
	producer := &recordingProducer{}
	m := NewManager(Config{Workers: 2, BatchSize: 100, FlushTimeout: 20 * time.Millisecond}, producer, zap.NewNop())
	m.Start(context.Background())
	defer m.Shutdown(context.Background())

	m.Record(context.Background(), Event{Action: "register"})

	require.Eventually(t, func() bool { return len(producer.messages()) == 1 }, time.Second, 10*time.Millisecond)
}

func TestManager_ShutdownPublishesQueuedEvents(t *testing.T) {
	producer := &recordingProducer{}
	m := NewManager(Config{Workers: 1, BatchSize: 100, FlushTimeout: time.Hour}, producer, zap.NewNop())
	m.Start(context.Background())

	for i := 0; i < 5; i++ {
		m.Record(context.Background(), Event{Action: "rent_start"})
	}
	m.Shutdown(context.Background())

	assert.Len(t, producer.messages(), 5)
	assert.Equal(t, 0, m.Pending())
}

func TestManager_ProducerFailureFallsBackToLog(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	producer := &recordingProducer{err: errors.New("broker down")}
	m := NewManager(Config{Workers: 1, BatchSize: 1, FlushTimeout: time.Hour}, producer, zap.New(core))
	m.Start(context.Background())

	m.Record(context.Background(), Event{Action: "rent_end", Details: "Rental #99"})
	m.Shutdown(context.Background())

	entries := logs.FilterMessage("Unpublished audit event").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Rental #99", entries[0].ContextMap()["details"])
	assert.Equal(t, 0, m.Pending())
}

func TestManager_RecordAfterShutdownIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	m := NewManager(Config{Workers: 1, BatchSize: 1}, &recordingProducer{}, zap.New(core))
	m.Start(context.Background())
	m.Shutdown(context.Background())

	m.Record(context.Background(), Event{Action: "register"})

	assert.Equal(t, 1, logs.FilterMessage("Audit event dropped from queue").Len())
	assert.Equal(t, 0, m.Pending())
}
