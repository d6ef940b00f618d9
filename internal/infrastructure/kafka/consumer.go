package kafka

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/mmvolkov/shop/internal/domain"
)

// MovementHandler processes one stock movement.
type MovementHandler func(ctx context.Context, m domain.StockMovement) error

// Consumer reads stock movements from a Kafka topic within a consumer group.
type Consumer struct {
	reader *kafka.Reader
}

// NewConsumer creates a consumer for the given brokers, topic and group.
func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &Consumer{reader: reader}
}

// Consume reads movements until the context is cancelled. Malformed or
// failed messages are logged and skipped; consumption never stops on a
// single bad record.
func (c *Consumer) Consume(ctx context.Context, handler MovementHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("[Kafka] Error reading message: %v", err)
			continue
		}

		var movement domain.StockMovement
		if err := json.Unmarshal(msg.Value, &movement); err != nil {
			log.Printf("[Kafka] Skipping malformed movement: %v", err)
			continue
		}

		if err := handler(ctx, movement); err != nil {
			log.Printf("[Kafka] Error handling movement for item %s: %v", movement.ItemID, err)
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
