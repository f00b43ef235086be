package kafka

import (
	"context"
	"errors"
	"strings"

	"github.com/segmentio/kafka-go"
)

var (
	// ErrNoBrokers is returned by NewProducer without brokers.
	ErrNoBrokers = errors.New("kafka: no brokers configured")

	// ErrNoTopic is returned by NewProducer without a topic.
	ErrNoTopic = errors.New("kafka: no topic configured")

	// ErrUnsupportedMechanism is returned for an unknown SASL mechanism.
	ErrUnsupportedMechanism = errors.New("kafka: unsupported SASL mechanism")

	// ErrProducerClosed is returned by Publish after Close.
	ErrProducerClosed = errors.New("kafka: producer closed")

	ErrConnectionFailed     = errors.New("kafka: connection failed")
	ErrTopicNotFound        = errors.New("kafka: topic not found")
	ErrAuthenticationFailed = errors.New("kafka: authentication failed")
	ErrMessageTooLarge      = errors.New("kafka: message too large")
	ErrTimeout              = errors.New("kafka: request timed out")
)

// TranslateError maps kafka-go and network errors onto the package
// sentinels, keeping the original error in the chain. Unknown errors are
// returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	// A single-message write reports its failure inside WriteErrors.
	var writeErrs kafka.WriteErrors
	if errors.As(err, &writeErrs) {
		for _, e := range writeErrs {
			if e != nil {
				return TranslateError(e)
			}
		}
	}

	var sentinel error
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, kafka.RequestTimedOut):
		sentinel = ErrTimeout
	case errors.Is(err, kafka.UnknownTopicOrPartition):
		sentinel = ErrTopicNotFound
	case errors.Is(err, kafka.SASLAuthenticationFailed), errors.Is(err, kafka.TopicAuthorizationFailed):
		sentinel = ErrAuthenticationFailed
	case errors.Is(err, kafka.MessageSizeTooLarge):
		sentinel = ErrMessageTooLarge
	default:
		msg := strings.ToLower(err.Error())
		switch {
		case strings.Contains(msg, "connection refused"), strings.Contains(msg, "no such host"):
			sentinel = ErrConnectionFailed
		case strings.Contains(msg, "i/o timeout"):
			sentinel = ErrTimeout
		default:
			return err
		}
	}
	return errors.Join(sentinel, err)
}

// IsRetryableError reports whether a later Publish of the same message may
// succeed.
func IsRetryableError(err error) bool {
	return errors.Is(err, ErrConnectionFailed) || errors.Is(err, ErrTimeout)
}
