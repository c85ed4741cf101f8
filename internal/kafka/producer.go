package kafka

import (
	"context"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Message struct {
	Key   []byte
	Value []byte
}

type Producer interface {
	SendMessages(ctx context.Context, topic string, msgs ...Message) error
	Close() error
}

type WriterProducer struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

// NewWriterProducer returns a producer writing to brokers. Messages with the
// same key land on the same partition.
func NewWriterProducer(brokers []string, logger *zap.Logger) *WriterProducer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
	}
	logger.Info("Initialized Kafka producer", zap.Strings("brokers", brokers))
	return &WriterProducer{writer: w, logger: logger}
}

func (p *WriterProducer) SendMessages(ctx context.Context, topic string, msgs ...Message) error {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]kafkago.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, kafkago.Message{Topic: topic, Key: m.Key, Value: m.Value})
	}
	if err := p.writer.WriteMessages(ctx, out...); err != nil {
		return fmt.Errorf("failed to write %d messages to %s: %w", len(out), topic, err)
	}
	return nil
}

func (p *WriterProducer) Close() error {
	p.logger.Info("Closing Kafka producer")
	return p.writer.Close()
}

// LogProducer writes messages to the log instead of a broker. It is used when
// no brokers are configured.
type LogProducer struct {
	logger *zap.Logger
}

func NewLogProducer(logger *zap.Logger) *LogProducer {
	logger.Info("Initialized log producer, audit events will not leave the process")
	return &LogProducer{logger: logger}
}

func (p *LogProducer) SendMessages(ctx context.Context, topic string, msgs ...Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, m := range msgs {
		p.logger.Info("Audit event",
			zap.String("topic", topic),
			zap.ByteString("key", m.Key),
			zap.ByteString("value", m.Value))
	}
	return nil
}

func (p *LogProducer) Close() error {
	return nil
}
