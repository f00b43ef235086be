package metrics

// DefaultAddress is where the /metrics endpoint listens when Config.Address
// is nil.
const DefaultAddress = ":9091"

// Config controls the Prometheus registry and its HTTP endpoint.
type Config struct {
	// Address of the /metrics HTTP server. nil means DefaultAddress; a
	// pointer to "" disables the server while keeping the registry, which
	// is what tests and embedded uses want.
	//
	// YAML key "address", environment variable METRICS_ADDRESS.
	Address *string `yaml:"address" envconfig:"METRICS_ADDRESS"`

	// ServiceName is added as a constant "service" label to every metric.
	ServiceName string `yaml:"service_name" envconfig:"METRICS_SERVICE_NAME"`

	// RuntimeMetrics registers the Go runtime, process and build info
	// collectors next to the application metrics.
	RuntimeMetrics bool `yaml:"runtime_metrics" envconfig:"METRICS_RUNTIME"`
}

// Ptr returns a pointer to s, for Config.Address.
//
//	cfg := metrics.Config{Address: metrics.Ptr(""), ServiceName: "library"}
func Ptr(s string) *string {
	return &s
}
