package kafka

import "time"

// Config configures the audit producer.
type Config struct {
	// Brokers is the list of bootstrap broker addresses.
	Brokers []string `yaml:"brokers" envconfig:"KAFKA_BROKERS"`

	// Topic receives one message per instrumented call.
	Topic string `yaml:"topic" envconfig:"KAFKA_TOPIC"`

	// RequiredAcks is RequireOne or RequireAll. 0 selects the default,
	// RequireAll, so RequireNone cannot be configured.
	RequiredAcks int `yaml:"required_acks" envconfig:"KAFKA_REQUIRED_ACKS"`

	// WriteTimeout bounds a single write, acknowledgment included.
	// Default: 10s
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"KAFKA_WRITE_TIMEOUT"`

	// Async batches writes in the background; Publish then never blocks on
	// the broker and delivery errors only reach the error logger.
	Async bool `yaml:"async" envconfig:"KAFKA_ASYNC"`

	// BatchSize and BatchTimeout apply when Async is set.
	// Defaults: 100 and 1s
	BatchSize    int           `yaml:"batch_size" envconfig:"KAFKA_BATCH_SIZE"`
	BatchTimeout time.Duration `yaml:"batch_timeout" envconfig:"KAFKA_BATCH_TIMEOUT"`

	// CompressionCodec is "", "gzip", "snappy", "lz4" or "zstd".
	CompressionCodec string `yaml:"compression_codec" envconfig:"KAFKA_COMPRESSION_CODEC"`

	// MaxAttempts is how many times delivery of a message is attempted.
	// Default: 10
	MaxAttempts int `yaml:"max_attempts" envconfig:"KAFKA_MAX_ATTEMPTS"`

	// AllowAutoTopicCreation lets the writer create Topic on first use.
	AllowAutoTopicCreation bool `yaml:"allow_auto_topic_creation" envconfig:"KAFKA_ALLOW_AUTO_TOPIC_CREATION"`

	// AuditQueueSize bounds the events waiting for the audit publisher.
	// Default: 1024
	AuditQueueSize int `yaml:"audit_queue_size" envconfig:"KAFKA_AUDIT_QUEUE_SIZE"`

	TLS  TLSConfig  `yaml:"tls"`
	SASL SASLConfig `yaml:"sasl"`
}

// TLSConfig contains TLS parameters for the broker connection.
type TLSConfig struct {
	Enabled        bool   `yaml:"enabled" envconfig:"KAFKA_TLS_ENABLED"`
	CACertPath     string `yaml:"ca_cert_path" envconfig:"KAFKA_TLS_CA_CERT_PATH"`
	ClientCertPath string `yaml:"client_cert_path" envconfig:"KAFKA_TLS_CLIENT_CERT_PATH"`
	ClientKeyPath  string `yaml:"client_key_path" envconfig:"KAFKA_TLS_CLIENT_KEY_PATH"`

	// InsecureSkipVerify disables broker certificate verification. Tests only.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify" envconfig:"KAFKA_TLS_INSECURE_SKIP_VERIFY"`
}

// SASLConfig contains SASL authentication parameters.
type SASLConfig struct {
	Enabled bool `yaml:"enabled" envconfig:"KAFKA_SASL_ENABLED"`

	// Mechanism is "PLAIN", "SCRAM-SHA-256" or "SCRAM-SHA-512".
	Mechanism string `yaml:"mechanism" envconfig:"KAFKA_SASL_MECHANISM"`
	Username  string `yaml:"username" envconfig:"KAFKA_SASL_USERNAME"`
	Password  string `yaml:"password" envconfig:"KAFKA_SASL_PASSWORD"` //nolint:gosec
}

// Defaults applied by NewProducer to zero fields.
const (
	DefaultRequiredAcks = RequireAll
	DefaultWriteTimeout = 10 * time.Second
	DefaultBatchSize    = 100
	DefaultBatchTimeout = 1 * time.Second
	DefaultMaxAttempts  = 10

	DefaultAuditQueueSize = 1024

	RequireNone = 0
	RequireOne  = 1
	RequireAll  = -1
)

func (c Config) withDefaults() Config {
	if c.RequiredAcks == 0 {
		c.RequiredAcks = DefaultRequiredAcks
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.BatchTimeout == 0 {
		c.BatchTimeout = DefaultBatchTimeout
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	return c
}
