package metrics

// MetricsCollector creates metrics registered on the application registry.
// *Metrics implements it; nothing here exposes Prometheus types.
type MetricsCollector interface {
	// CreateCounter registers a counter vector.
	//
	//	calls := m.CreateCounter("lend_requests_total", "Lend requests", []string{"outcome"})
	//	calls.WithLabelValues("success").Inc()
	CreateCounter(name, help string, labels []string) Counter

	// CreateHistogram registers a histogram vector with the given buckets;
	// nil buckets mean prometheus.DefBuckets.
	CreateHistogram(name, help string, labels []string, buckets []float64) Histogram
}
