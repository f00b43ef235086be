package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// Publisher sends messages to the configured topic. *Producer implements it.
type Publisher interface {
	// Publish serializes data and writes it under key. Header values are
	// converted to strings.
	Publish(ctx context.Context, key string, data interface{}, headers ...map[string]interface{}) error
}

// messageWriter is the part of *kafka.Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
