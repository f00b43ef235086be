package metrics_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalemi-dev/logproxy/metrics"
	"github.com/aalemi-dev/logproxy/observability"
)

func newTestMetrics(t *testing.T) *metrics.Metrics {
	t.Helper()
	return metrics.NewMetrics(metrics.Config{
		Address:     metrics.Ptr(""),
		ServiceName: "test",
	})
}

func TestNewMetrics_DefaultAddress(t *testing.T) {
	t.Parallel()
	m := metrics.NewMetrics(metrics.Config{ServiceName: "test"})
	require.NotNil(t, m.Server)
	assert.Equal(t, metrics.DefaultAddress, m.Server.Addr)
	assert.NotNil(t, m.Registry)
}

func TestNewMetrics_DisabledServer(t *testing.T) {
	t.Parallel()
	m := newTestMetrics(t)
	assert.Nil(t, m.Server)
	assert.NotNil(t, m.Registry)
}

func TestNewMetrics_RuntimeCollectors(t *testing.T) {
	t.Parallel()
	m := metrics.NewMetrics(metrics.Config{Address: metrics.Ptr(""), ServiceName: "test", RuntimeMetrics: true})

	families, err := m.Registry.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "go_goroutines" {
			found = true
		}
	}
	assert.True(t, found, "go runtime collector registered")
}

func TestCounterAndHistogram(t *testing.T) {
	t.Parallel()
	m := newTestMetrics(t)

	c := m.CreateCounter("lend_requests_total", "Lend requests", []string{"outcome"})
	c.WithLabelValues("success").Inc()
	c.WithLabelValues("success").Add(2)
	c.WithLabelValues("success").WithLabelValues("ignored").Inc()

	h := m.CreateHistogram("lend_duration_seconds", "Lend latency", []string{"branch"}, nil)
	h.WithLabelValues("main").Observe(0.2)

	expected := `
# HELP lend_requests_total Lend requests
# TYPE lend_requests_total counter
lend_requests_total{outcome="success",service="test"} 4
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry, strings.NewReader(expected), "lend_requests_total"))

	count, err := testutil.GatherAndCount(m.Registry, "lend_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateCounter_DuplicatePanics(t *testing.T) {
	t.Parallel()
	m := newTestMetrics(t)
	m.CreateCounter("dup_total", "dup", nil)
	assert.Panics(t, func() { m.CreateCounter("dup_total", "dup", nil) })
}

func TestInvocationObserver(t *testing.T) {
	t.Parallel()
	m := newTestMetrics(t)
	obs := metrics.NewInvocationObserver(m)

	base := observability.InvocationRecord{
		Interface: "library.UserService",
		ClassName: "DefaultUserService",
		Operation: "ListUsers",
		Duration:  4 * time.Millisecond,
	}
	obs.ObserveInvocation(base)
	obs.ObserveInvocation(base)

	failed := base
	failed.Err = errors.New("boom")
	obs.ObserveInvocation(failed)

	panicked := failed
	panicked.Panicked = true
	obs.ObserveInvocation(panicked)

	expected := `
# HELP intercepted_calls_total Instrumented calls that went through a logging proxy, by outcome.
# TYPE intercepted_calls_total counter
intercepted_calls_total{class="DefaultUserService",interface="library.UserService",operation="ListUsers",outcome="error",service="test"} 1
intercepted_calls_total{class="DefaultUserService",interface="library.UserService",operation="ListUsers",outcome="panic",service="test"} 1
intercepted_calls_total{class="DefaultUserService",interface="library.UserService",operation="ListUsers",outcome="success",service="test"} 2
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry, strings.NewReader(expected), metrics.InvocationsTotalName))

	count, err := testutil.GatherAndCount(m.Registry, metrics.InvocationDurationName)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "one histogram series per interface/class/operation")
}
