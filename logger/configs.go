package logger

// Log level names accepted by Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config controls how the zap-backed logger is built.
type Config struct {
	// Level is the minimum level written: "debug", "info", "warning" or
	// "error". Unknown values fall back to "info".
	//
	// YAML key "level", environment variable LOGGER_LEVEL.
	Level string `yaml:"level" envconfig:"LOGGER_LEVEL"`

	// EnableTracing makes the *WithContext methods attach trace_id and
	// span_id from the active OpenTelemetry span.
	//
	// YAML key "enable_tracing", environment variable LOGGER_ENABLE_TRACING.
	EnableTracing bool `yaml:"enable_tracing" envconfig:"LOGGER_ENABLE_TRACING"`

	// ServiceName populates the "service" field of every entry.
	ServiceName string `yaml:"service_name" envconfig:"LOGGER_SERVICE_NAME"`

	// CallerSkip is the number of frames skipped when reporting the caller.
	// Values <= 0 mean 1, which is right when calling the logger directly.
	// Proxies generated by interceptgen log from inside the intercept
	// package, so 1 reports the interceptor itself.
	CallerSkip int `yaml:"caller_skip" envconfig:"LOGGER_CALLER_SKIP"`
}
