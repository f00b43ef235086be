package kafka

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"sync"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"

	"github.com/aalemi-dev/logproxy/logger"
)

// Producer publishes messages to a single topic. It implements Publisher.
type Producer struct {
	cfg        Config
	log        logger.Logger
	serializer Serializer

	mu     sync.RWMutex
	writer messageWriter
}

// NewProducer validates cfg and builds a kafka-go writer. No connection is
// made until the first Publish. log may be nil.
//
//	producer, err := kafka.NewProducer(kafka.Config{
//		Brokers: []string{"localhost:9092"},
//		Topic:   "library.invocations",
//	}, log)
func NewProducer(cfg Config, log logger.Logger) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}
	if cfg.Topic == "" {
		return nil, ErrNoTopic
	}
	cfg = cfg.withDefaults()

	var (
		tlsConfig *tls.Config
		mechanism sasl.Mechanism
		err       error
	)
	if cfg.TLS.Enabled {
		tlsConfig, err = createTLSConfig(cfg.TLS)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}
	if cfg.SASL.Enabled {
		mechanism, err = createSASLMechanism(cfg.SASL)
		if err != nil {
			return nil, fmt.Errorf("failed to create SASL mechanism: %w", err)
		}
	}

	p := &Producer{
		cfg:        cfg,
		log:        log,
		serializer: &JSONSerializer{},
	}
	p.writer = createWriter(cfg, tlsConfig, mechanism, p.errorLogger())
	return p, nil
}

// WithSerializer replaces the default JSONSerializer.
func (p *Producer) WithSerializer(s Serializer) *Producer {
	p.serializer = s
	return p
}

// Close flushes pending async writes and closes the writer. Further
// Publish calls fail with ErrProducerClosed.
func (p *Producer) Close() error {
	p.mu.Lock()
	w := p.writer
	p.writer = nil
	p.mu.Unlock()

	if w == nil {
		return nil
	}
	return w.Close()
}

// errorLogger routes kafka-go's internal errors to log, or drops them.
func (p *Producer) errorLogger() kafka.LoggerFunc {
	return func(msg string, args ...interface{}) {
		if p.log == nil {
			return
		}
		p.log.ErrorWithContext(context.Background(), "Kafka internal error", nil, map[string]interface{}{
			"error": fmt.Sprintf(msg, args...),
			"topic": p.cfg.Topic,
		})
	}
}

func createWriter(cfg Config, tlsConfig *tls.Config, mechanism sasl.Mechanism, errorLogger kafka.Logger) *kafka.Writer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		MaxAttempts:            cfg.MaxAttempts,
		WriteTimeout:           cfg.WriteTimeout,
		RequiredAcks:           kafka.RequiredAcks(cfg.RequiredAcks),
		AllowAutoTopicCreation: cfg.AllowAutoTopicCreation,
		ErrorLogger:            errorLogger,
		Transport: &kafka.Transport{
			TLS:  tlsConfig,
			SASL: mechanism,
		},
	}

	if cfg.Async {
		w.Async = true
		w.BatchSize = cfg.BatchSize
		w.BatchTimeout = cfg.BatchTimeout
	}

	switch cfg.CompressionCodec {
	case "gzip":
		w.Compression = kafka.Compression(compress.Gzip)
	case "snappy":
		w.Compression = kafka.Compression(compress.Snappy)
	case "lz4":
		w.Compression = kafka.Compression(compress.Lz4)
	case "zstd":
		w.Compression = kafka.Compression(compress.Zstd)
	}

	return w
}

func createTLSConfig(cfg TLSConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec
	}

	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA cert")
		}
		tlsConfig.RootCAs = pool
	}

	if cfg.ClientCertPath != "" && cfg.ClientKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

func createSASLMechanism(cfg SASLConfig) (sasl.Mechanism, error) {
	switch cfg.Mechanism {
	case "PLAIN":
		return plain.Mechanism{
			Username: cfg.Username,
			Password: cfg.Password,
		}, nil
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, cfg.Username, cfg.Password)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, cfg.Username, cfg.Password)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMechanism, cfg.Mechanism)
	}
}
