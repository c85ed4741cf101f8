package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/skaterent/rentbot/internal/repository"
)

type taskUpdate struct {
	status   repository.TaskStatus
	attempts int
	lastErr  string
}

type fakeOutbox struct {
	mu      sync.Mutex
	pending []*repository.OutboxTask
	updates map[uuid.UUID]taskUpdate
}

func newFakeOutbox(tasks ...*repository.OutboxTask) *fakeOutbox {
	return &fakeOutbox{pending: tasks, updates: make(map[uuid.UUID]taskUpdate)}
}

func (f *fakeOutbox) Claim(_ context.Context, limit, _ int, _ time.Duration) ([]*repository.OutboxTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit > len(f.pending) {
		limit = len(f.pending)
	}
	claimed := f.pending[:limit]
	f.pending = f.pending[limit:]
	return claimed, nil
}

func (f *fakeOutbox) MarkDone(_ context.Context, id uuid.UUID, attempts int, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates[id] = taskUpdate{status: repository.TaskStatusDone, attempts: attempts}
	return nil
}

func (f *fakeOutbox) MarkFailed(_ context.Context, id uuid.UUID, attempts int, lastErr string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates[id] = taskUpdate{status: repository.TaskStatusFailed, attempts: attempts, lastErr: lastErr}
	return nil
}

func (f *fakeOutbox) update(id uuid.UUID) (taskUpdate, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.updates[id]
	return u, ok
}

type stubProducer struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (p *stubProducer) SendMessages(_ context.Context, _ string, msgs ...Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, msgs...)
	return nil
}

func (p *stubProducer) Close() error { return nil }

func newTask(attempts int) *repository.OutboxTask {
	return &repository.OutboxTask{
		ID:       uuid.New(),
		Topic:    "rental_events",
		Payload:  []byte(`{"action":"rent_start"}`),
		Attempts: attempts,
	}
}

func TestPublisher_DeliversClaimedTasks(t *testing.T) {
	first, second := newTask(0), newTask(2)
	outbox := newFakeOutbox(first, second)
	producer := &stubProducer{}
	p := NewPublisher(outbox, producer, PublisherConfig{PollInterval: 10 * time.Millisecond}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	require.Eventually(t, func() bool {
		_, ok := outbox.update(second.ID)
		return ok
	}, time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	u, _ := outbox.update(first.ID)
	assert.Equal(t, taskUpdate{status: repository.TaskStatusDone, attempts: 1}, u)
	u, _ = outbox.update(second.ID)
	assert.Equal(t, taskUpdate{status: repository.TaskStatusDone, attempts: 3}, u)

	require.Len(t, producer.sent, 2)
	assert.Equal(t, []byte(first.ID.String()), producer.sent[0].Key)
	assert.Equal(t, []byte(first.Payload), producer.sent[0].Value)
}

func TestPublisher_FailedSendIsRetriedLater(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	task := newTask(0)
	outbox := newFakeOutbox(task)
	p := NewPublisher(outbox, &stubProducer{err: errors.New("broker down")}, PublisherConfig{MaxAttempts: 3}, zap.New(core))

	require.NoError(t, p.processBatch(context.Background()))

	u, ok := outbox.update(task.ID)
	require.True(t, ok)
	assert.Equal(t, repository.TaskStatusFailed, u.status)
	assert.Equal(t, 1, u.attempts)
	assert.Equal(t, "broker down", u.lastErr)
	assert.Equal(t, 1, logs.FilterMessage("Failed to publish outbox task").Len())
}

func TestPublisher_LastAttemptIsReported(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	task := newTask(2)
	outbox := newFakeOutbox(task)
	p := NewPublisher(outbox, &stubProducer{err: errors.New("broker down")}, PublisherConfig{MaxAttempts: 3}, zap.New(core))

	require.NoError(t, p.processBatch(context.Background()))

	u, _ := outbox.update(task.ID)
	assert.Equal(t, 3, u.attempts)
	assert.Equal(t, 1, logs.FilterMessage("Outbox task reached max attempts, giving up").Len())
}

func TestPublisher_Shutdown(t *testing.T) {
	p := NewPublisher(newFakeOutbox(), &stubProducer{}, PublisherConfig{PollInterval: time.Hour}, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- p.Run(context.Background()) }()

	p.Shutdown(context.Background())
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("publisher did not stop")
	}
}
