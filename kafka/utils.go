package kafka

import (
	"context"
	"fmt"
	"sort"

	"github.com/segmentio/kafka-go"
)

// Publish implements Publisher. []byte data is written as is; anything else
// goes through the producer's Serializer.
//
//	err := producer.Publish(ctx, callID, event, map[string]interface{}{
//		"outcome": "success",
//	})
func (p *Producer) Publish(ctx context.Context, key string, data interface{}, headers ...map[string]interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.RLock()
	w := p.writer
	p.mu.RUnlock()
	if w == nil {
		return ErrProducerClosed
	}

	value, ok := data.([]byte)
	if !ok {
		if p.serializer == nil {
			return fmt.Errorf("cannot publish %T without a serializer", data)
		}
		var err error
		value, err = p.serializer.Serialize(data)
		if err != nil {
			return fmt.Errorf("failed to serialize message: %w", err)
		}
	}

	msg := kafka.Message{
		Key:     []byte(key),
		Value:   value,
		Headers: toHeaders(headers...),
	}
	if err := w.WriteMessages(ctx, msg); err != nil {
		return TranslateError(err)
	}
	return nil
}

// toHeaders flattens header maps in key order; later maps repeat keys.
func toHeaders(maps ...map[string]interface{}) []kafka.Header {
	var headers []kafka.Header
	for _, m := range maps {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			var value []byte
			switch v := m[k].(type) {
			case string:
				value = []byte(v)
			case []byte:
				value = v
			default:
				value = []byte(fmt.Sprint(v))
			}
			headers = append(headers, kafka.Header{Key: k, Value: value})
		}
	}
	return headers
}
