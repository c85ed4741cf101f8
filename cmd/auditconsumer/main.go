// Command auditconsumer tails the rental event and bot update topics and logs
// every event.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/skaterent/rentbot/internal/audit"
	"github.com/skaterent/rentbot/internal/config"
	"github.com/skaterent/rentbot/internal/logger"
)

const groupID = "rentbot-audit-consumer"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	config.LoadEnvFile()
	cfg, err := config.LoadConsumer()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Configuration error:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	defer log.Sync()

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Kafka.Brokers,
		GroupID:        groupID,
		GroupTopics:    []string{cfg.Kafka.Topic, cfg.Kafka.UpdatesTopic},
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
	})
	defer func() {
		log.Info("Closing Kafka reader")
		if err := r.Close(); err != nil {
			log.Error("Error closing Kafka reader", zap.Error(err))
		}
	}()

	log.Info("Consumer connected",
		zap.Strings("topics", []string{cfg.Kafka.Topic, cfg.Kafka.UpdatesTopic}),
		zap.String("brokers", strings.Join(cfg.Kafka.Brokers, ",")))

	for {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("Shutdown signal received, stopping consumer")
				return
			}
			log.Error("Error reading message", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
			continue
		}

		var ev audit.Event
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			log.Warn("Malformed audit event",
				zap.Int("partition", m.Partition),
				zap.Int64("offset", m.Offset),
				zap.ByteString("value", m.Value))
			continue
		}

		fields := []zap.Field{
			zap.String("id", ev.ID.String()),
			zap.String("action", ev.Action),
			zap.Int64("telegram_id", ev.TelegramID),
			zap.String("details", ev.Details),
			zap.String("outcome", ev.Outcome),
			zap.Time("occurred_at", ev.OccurredAt),
			zap.String("topic", m.Topic),
			zap.Int("partition", m.Partition),
			zap.Int64("offset", m.Offset),
		}
		if ev.ClientID != nil {
			fields = append(fields, zap.Int64("client_id", *ev.ClientID))
		}
		log.Info("Audit event", fields...)
	}
}
