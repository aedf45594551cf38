package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"course-enrollment/internal/pkg/config"
	"course-enrollment/internal/pkg/errs"
	"course-enrollment/internal/usecase/shared"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes settlement events keyed by transaction id so every
// event of one transaction lands on the same partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.SettledTopic,
			Balancer:               &kafka.Hash{},
			BatchTimeout:           50 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *KafkaPublisher) PublishEnrollmentSettled(ctx context.Context, evt shared.EnrollmentSettledEvent) error {
	evt.Type = shared.EventEnrollmentSettled
	data, err := json.Marshal(evt)
	if err != nil {
		return errs.Wrap(err, "failed to marshal settlement event")
	}
	msg := kafka.Message{
		Key:   []byte(evt.TransactionID),
		Value: data,
		Time:  evt.SettledAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errs.Wrap(err, "failed to write settlement event")
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// NoopPublisher drops events; used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishEnrollmentSettled(context.Context, shared.EnrollmentSettledEvent) error {
	return nil
}

type SettledHandler func(ctx context.Context, evt shared.EnrollmentSettledEvent) error

type Consumer struct {
	reader *kafka.Reader
	logger *slog.Logger
}

func NewConsumer(cfg config.KafkaConfig, logger *slog.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           cfg.Brokers,
			GroupID:           cfg.ConsumerGroup,
			Topic:             cfg.SettledTopic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		logger: logger,
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume blocks until ctx is done or the reader fails. Offsets are committed
// after the handler returns, whatever it returned: a failed email is logged,
// not retried forever.
func (c *Consumer) Consume(ctx context.Context, handle SettledHandler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errs.Wrap(err, "failed to fetch settlement event")
		}

		evt, err := DecodeSettled(msg.Value)
		if err != nil {
			c.logger.WarnContext(ctx, "skipping undecodable settlement event",
				"partition", msg.Partition, "offset", msg.Offset, "error", err)
		} else if err := handle(ctx, evt); err != nil {
			c.logger.ErrorContext(ctx, "settlement event handler failed",
				"transaction_id", evt.TransactionID, "offset", msg.Offset, "error", err)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errs.Wrap(err, "failed to commit settlement event")
		}
	}
}

func DecodeSettled(data []byte) (shared.EnrollmentSettledEvent, error) {
	var evt shared.EnrollmentSettledEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		return shared.EnrollmentSettledEvent{}, errs.Wrap(err, "invalid settlement event payload")
	}
	if evt.Type != shared.EventEnrollmentSettled {
		return shared.EnrollmentSettledEvent{}, errs.Newf("unexpected event type %q", evt.Type)
	}
	if evt.TransactionID == "" || evt.StudentEmail == "" {
		return shared.EnrollmentSettledEvent{}, errs.New("settlement event is missing required fields")
	}
	return evt, nil
}
