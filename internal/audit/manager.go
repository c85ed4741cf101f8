package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skaterent/rentbot/internal/kafka"
)

const publishTimeout = 10 * time.Second

type Event struct {
	ID         uuid.UUID `json:"id"`
	Action     string    `json:"action"`
	ClientID   *int64    `json:"client_id,omitempty"`
	TelegramID int64     `json:"telegram_id,omitempty"`
	Details    string    `json:"details,omitempty"`
	Outcome    string    `json:"outcome,omitempty"`
	DurationMs int64     `json:"duration_ms,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Config struct {
	Workers      int
	BatchSize    int
	FlushTimeout time.Duration
	Topic        string
}

// Manager batches events and hands the batches to a pool of workers that
// publish them through a kafka.Producer. Events that cannot be queued or
// published are written to the log.
type Manager struct {
	workerCount int
	batchSize   int
	timeout     time.Duration
	topic       string

	producer kafka.Producer
	logger   *zap.Logger

	inputChan  chan Event
	batchChan  chan []Event
	shutdownCh chan struct{}
	once       sync.Once

	wg           sync.WaitGroup
	pendingMu    sync.Mutex
	pendingCount int
}

func NewManager(cfg Config, producer kafka.Producer, logger *zap.Logger) *Manager {
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 20
	}
	if cfg.FlushTimeout <= 0 {
		cfg.FlushTimeout = time.Second
	}
	return &Manager{
		workerCount: cfg.Workers,
		batchSize:   cfg.BatchSize,
		timeout:     cfg.FlushTimeout,
		topic:       cfg.Topic,
		producer:    producer,
		logger:      logger,
		inputChan:   make(chan Event, cfg.Workers*cfg.BatchSize*2),
		batchChan:   make(chan []Event, cfg.Workers*2),
		shutdownCh:  make(chan struct{}),
	}
}

func (m *Manager) Start(ctx context.Context) {
	m.logger.Info("Starting audit manager", zap.Int("workers", m.workerCount), zap.String("topic", m.topic))
	m.wg.Add(1)
	go m.runAggregator(ctx)

	for i := 0; i < m.workerCount; i++ {
		m.wg.Add(1)
		go m.runWorker(i)
	}
}

// Shutdown stops accepting events and waits for queued ones to be published.
func (m *Manager) Shutdown(ctx context.Context) {
	m.once.Do(func() {
		m.logger.Info("Initiating audit manager shutdown")
		close(m.shutdownCh)

		done := make(chan struct{})
		go func() {
			m.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			m.logger.Info("Audit manager shutdown completed")
		case <-ctx.Done():
			m.logger.Warn("Audit manager shutdown interrupted", zap.Int("pending", m.Pending()))
		}
	})
}

// Record queues an event without waiting for it to be published.
func (m *Manager) Record(ctx context.Context, ev Event) {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	m.updatePendingCount(1)

	select {
	case <-m.shutdownCh:
		m.emergencyLog(ev)
		return
	default:
	}

	select {
	case m.inputChan <- ev:
	case <-m.shutdownCh:
		m.emergencyLog(ev)
	case <-ctx.Done():
		m.emergencyLog(ev)
	}
}

func (m *Manager) Pending() int {
	m.pendingMu.Lock()
	defer m.pendingMu.Unlock()
	return m.pendingCount
}

func (m *Manager) runAggregator(ctx context.Context) {
	defer m.wg.Done()

	var (
		batch    []Event
		timer    *time.Timer
		timeoutC <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
		batch = m.drainInput(batch)
		if len(batch) > 0 {
			m.dispatchBatch(batch)
		}
		close(m.batchChan)
	}()

	for {
		select {
		case ev := <-m.inputChan:
			batch = append(batch, ev)
			if len(batch) >= m.batchSize {
				m.dispatchBatch(batch)
				batch = nil
				timeoutC = nil
			} else if len(batch) == 1 {
				if timer != nil {
					timer.Stop()
				}
				timer = time.NewTimer(m.timeout)
				timeoutC = timer.C
			}

		case <-timeoutC:
			m.dispatchBatch(batch)
			batch = nil
			timeoutC = nil

		case <-ctx.Done():
			return

		case <-m.shutdownCh:
			return
		}
	}
}

func (m *Manager) drainInput(batch []Event) []Event {
	for {
		select {
		case ev := <-m.inputChan:
			batch = append(batch, ev)
		default:
			return batch
		}
	}
}

func (m *Manager) dispatchBatch(batch []Event) {
	batchCopy := make([]Event, len(batch))
	copy(batchCopy, batch)

	select {
	case m.batchChan <- batchCopy:
	default:
		m.publish(-1, batchCopy)
	}
}

func (m *Manager) runWorker(id int) {
	defer m.wg.Done()

	for batch := range m.batchChan {
		m.publish(id, batch)
	}
	m.logger.Debug("Audit worker exiting", zap.Int("worker", id))
}

func (m *Manager) publish(workerID int, batch []Event) {
	defer m.updatePendingCount(-len(batch))

	msgs := make([]kafka.Message, 0, len(batch))
	for _, ev := range batch {
		value, err := json.Marshal(ev)
		if err != nil {
			m.logger.Error("Failed to marshal audit event", zap.String("id", ev.ID.String()), zap.Error(err))
			continue
		}
		msgs = append(msgs, kafka.Message{Key: []byte(ev.ID.String()), Value: value})
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := m.producer.SendMessages(ctx, m.topic, msgs...); err != nil {
		m.logger.Error("Failed to publish audit batch",
			zap.Int("worker", workerID),
			zap.Int("size", len(batch)),
			zap.Error(err))
		for _, ev := range batch {
			m.logEvent("Unpublished audit event", ev)
		}
	}
}

func (m *Manager) emergencyLog(ev Event) {
	m.logEvent("Audit event dropped from queue", ev)
	m.updatePendingCount(-1)
}

func (m *Manager) logEvent(msg string, ev Event) {
	m.logger.Warn(msg,
		zap.String("id", ev.ID.String()),
		zap.String("action", ev.Action),
		zap.Int64("telegram_id", ev.TelegramID),
		zap.String("details", ev.Details),
		zap.String("outcome", ev.Outcome),
		zap.Time("occurred_at", ev.OccurredAt))
}

func (m *Manager) updatePendingCount(delta int) {
	m.pendingMu.Lock()
	defer m.pendingMu.Unlock()
	m.pendingCount += delta
}
