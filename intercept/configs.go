package intercept

// Config tunes how instrumented calls are rendered in log entries. The zero
// value renders everything in full.
type Config struct {
	// RedactArguments replaces every rendered argument with "<redacted>".
	//
	// YAML key "redact_arguments", environment variable
	// INTERCEPT_REDACT_ARGUMENTS.
	RedactArguments bool `yaml:"redact_arguments" envconfig:"INTERCEPT_REDACT_ARGUMENTS"`

	// RedactResults replaces the rendered result with "<redacted>". The
	// "void" placeholder is kept.
	RedactResults bool `yaml:"redact_results" envconfig:"INTERCEPT_REDACT_RESULTS"`

	// MaxValueLength truncates each rendered argument and result to this
	// many bytes, appending "...". 0 disables truncation.
	MaxValueLength int `yaml:"max_value_length" envconfig:"INTERCEPT_MAX_VALUE_LENGTH"`
}

// Placeholders used when rendering arguments and results.
const (
	NullPlaceholder     = "null"
	VoidPlaceholder     = "void"
	NoArgsPlaceholder   = "none"
	RedactedPlaceholder = "<redacted>"
)

// Log messages of the three instrumented entries.
const (
	MessageStarted   = "invocation started"
	MessageCompleted = "invocation completed"
	MessageFailed    = "invocation failed"
)
