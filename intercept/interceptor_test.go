package intercept_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aalemi-dev/logproxy/intercept"
	"github.com/aalemi-dev/logproxy/logger"
	"github.com/aalemi-dev/logproxy/observability"
	"github.com/aalemi-dev/logproxy/tracer"
)

func newObservedLogger(tracingEnabled bool) (logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.NewFromZap(zap.New(core), tracingEnabled), logs
}

func newFetcherProxy(t *testing.T, opts ...intercept.Option) (Fetcher, *fakeFetcher, *observer.ObservedLogs) {
	t.Helper()
	log, logs := newObservedLogger(false)
	target := newFakeFetcher()
	proxy, err := intercept.Create[Fetcher](target, log, opts...)
	require.NoError(t, err)
	return proxy, target, logs
}

type recordingObserver struct {
	mu      sync.Mutex
	records []observability.InvocationRecord
}

func (r *recordingObserver) ObserveInvocation(rec observability.InvocationRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
}

func (r *recordingObserver) all() []observability.InvocationRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]observability.InvocationRecord(nil), r.records...)
}

func TestFetchAndPing(t *testing.T) {
	t.Parallel()
	proxy, _, logs := newFetcherProxy(t)

	got, err := proxy.Fetch(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "ok", got)

	assert.Equal(t, "pong", proxy.Ping())

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	before := entries[0]
	assert.Equal(t, zapcore.InfoLevel, before.Level)
	assert.Equal(t, intercept.MessageStarted, before.Message)
	fields := before.ContextMap()
	assert.Equal(t, "fakeFetcher", fields["class"])
	assert.Equal(t, "Fetch", fields["method"])
	assert.Equal(t, "fetching a record", fields["message"])
	assert.Equal(t, "context.Background, 7", fields["args"])

	after := entries[1]
	assert.Equal(t, zapcore.InfoLevel, after.Level)
	assert.Equal(t, intercept.MessageCompleted, after.Message)
	afterFields := after.ContextMap()
	assert.Equal(t, "fakeFetcher", afterFields["class"])
	assert.Equal(t, "Fetch", afterFields["method"])
	assert.Equal(t, "ok", afterFields["result"])
	assert.GreaterOrEqual(t, afterFields["duration_ms"], int64(7))
	assert.Equal(t, fields["call_id"], afterFields["call_id"])
}

func TestTransparency(t *testing.T) {
	t.Parallel()
	proxy, target, _ := newFetcherProxy(t)

	rec, ok := proxy.Lookup(3)
	assert.True(t, ok)
	assert.Equal(t, &Record{ID: 3, Name: "alpha"}, rec)

	rec, ok = proxy.Lookup(0)
	assert.False(t, ok)
	assert.Nil(t, rec)

	require.NoError(t, proxy.Store("k", 1, 2, 3))
	proxy.Reset()
	proxy.Reset()
	assert.Equal(t, int32(2), target.resets.Load())
}

func TestUndescribedOperationIsSilent(t *testing.T) {
	t.Parallel()
	proxy, target, logs := newFetcherProxy(t)

	for i := 0; i < 5; i++ {
		assert.Equal(t, "pong", proxy.Ping())
	}
	assert.Equal(t, int32(5), target.calls.Load())
	assert.Zero(t, logs.Len())

	_, ok := intercept.LookupFor[Fetcher]("Ping")
	assert.False(t, ok)
}

func TestErrorPassesThroughUnchanged(t *testing.T) {
	t.Parallel()
	proxy, _, logs := newFetcherProxy(t)

	_, err := proxy.Fetch(context.Background(), -1)
	require.Error(t, err)

	var wrapped *wrappedError
	require.ErrorAs(t, err, &wrapped)
	assert.ErrorIs(t, err, errNotFound)
	assert.Equal(t, "fetch: record not found", err.Error())

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, intercept.MessageStarted, entries[0].Message)

	failed := entries[1]
	assert.Equal(t, zapcore.ErrorLevel, failed.Level)
	assert.Equal(t, intercept.MessageFailed, failed.Message)
	fields := failed.ContextMap()
	assert.Equal(t, "fetch: record not found", fields["error"])
	assert.Equal(t, "Fetch", fields["method"])
	assert.Equal(t, entries[0].ContextMap()["call_id"], fields["call_id"])
	assert.NotContains(t, fields, "result")
	assert.NotContains(t, fields, "panic")
}

func TestSameErrorValueIsReturned(t *testing.T) {
	t.Parallel()
	log, _ := newObservedLogger(false)
	sentinel := errors.New("backend down")
	target := &fakeFetcher{fail: sentinel}

	proxy, err := intercept.Create[Fetcher](target, log)
	require.NoError(t, err)

	_, err = proxy.Fetch(context.Background(), 1)
	assert.True(t, err == sentinel, "proxy must return the target's error value itself")
}

func TestPanicIsLoggedAndReraised(t *testing.T) {
	t.Parallel()
	obs := &recordingObserver{}
	proxy, _, logs := newFetcherProxy(t, intercept.WithObserver(obs))

	assert.PanicsWithValue(t, "boom", func() {
		_ = proxy.Explode("boom")
	})

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "boom", entries[0].ContextMap()["args"])

	failed := entries[1]
	assert.Equal(t, zapcore.ErrorLevel, failed.Level)
	fields := failed.ContextMap()
	assert.Equal(t, true, fields["panic"])
	assert.Equal(t, "panic: boom", fields["error"])

	records := obs.all()
	require.Len(t, records, 1)
	assert.Equal(t, observability.OutcomePanic, records[0].Outcome())
	var perr *intercept.PanicError
	require.ErrorAs(t, records[0].Err, &perr)
	assert.Equal(t, "boom", perr.Value)
}

func TestVoidAndNullRendering(t *testing.T) {
	t.Parallel()
	proxy, _, logs := newFetcherProxy(t)

	proxy.Reset()
	_, _ = proxy.Lookup(0)
	require.NoError(t, proxy.Store("k", 4))

	entries := logs.AllUntimed()
	require.Len(t, entries, 6)

	assert.Equal(t, "none", entries[0].ContextMap()["args"])
	assert.Equal(t, "Reset", entries[0].ContextMap()["message"])
	assert.Equal(t, "void", entries[1].ContextMap()["result"])

	assert.Equal(t, "looking up", entries[2].ContextMap()["message"])
	assert.Equal(t, "(null, false)", entries[3].ContextMap()["result"])

	assert.Equal(t, "k, [4]", entries[4].ContextMap()["args"])
	assert.Equal(t, "void", entries[5].ContextMap()["result"])
}

func TestNilSliceRendersAsNull(t *testing.T) {
	t.Parallel()
	proxy, _, logs := newFetcherProxy(t)

	require.Error(t, proxy.Store("k"))
	require.Error(t, proxy.Store("k", []int{}...))

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)
	assert.Equal(t, "k, null", entries[0].ContextMap()["args"])
	assert.Equal(t, "k, []", entries[2].ContextMap()["args"])
}

func TestCallIDsAreUniquePerCall(t *testing.T) {
	t.Parallel()
	proxy, _, logs := newFetcherProxy(t)

	proxy.Reset()
	proxy.Reset()

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)
	first := entries[0].ContextMap()["call_id"]
	second := entries[2].ContextMap()["call_id"]
	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
	assert.Equal(t, first, entries[1].ContextMap()["call_id"])
	assert.Equal(t, second, entries[3].ContextMap()["call_id"])
}

func TestConcurrentCallsAreIndependent(t *testing.T) {
	t.Parallel()
	proxy, _, logs := newFetcherProxy(t)

	delays := []int{1, 100, 2, 3, 4}
	var wg sync.WaitGroup
	for _, d := range delays {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			got, err := proxy.Fetch(context.Background(), id)
			assert.NoError(t, err)
			assert.Equal(t, "ok", got)
		}(d)
	}
	wg.Wait()

	started := make(map[interface{}]string)
	durations := make(map[string]int64)
	for _, e := range logs.AllUntimed() {
		fields := e.ContextMap()
		switch e.Message {
		case intercept.MessageStarted:
			started[fields["call_id"]] = fields["args"].(string)
		case intercept.MessageCompleted:
			args, ok := started[fields["call_id"]]
			require.True(t, ok, "completion logged before its start")
			durations[args] = fields["duration_ms"].(int64)
		}
	}
	require.Len(t, durations, len(delays))

	assert.GreaterOrEqual(t, durations["context.Background, 100"], int64(100))
	assert.Less(t, durations["context.Background, 1"], int64(100))
}

func TestMaxValueLengthAndRedaction(t *testing.T) {
	t.Parallel()

	t.Run("truncate", func(t *testing.T) {
		proxy, _, logs := newFetcherProxy(t, intercept.WithConfig(intercept.Config{MaxValueLength: 4}))
		require.NoError(t, proxy.Store("abcdefgh", 1))

		entries := logs.AllUntimed()
		require.Len(t, entries, 2)
		assert.Equal(t, "abcd..., [1]", entries[0].ContextMap()["args"])
	})

	t.Run("redact", func(t *testing.T) {
		proxy, _, logs := newFetcherProxy(t, intercept.WithConfig(intercept.Config{
			RedactArguments: true,
			RedactResults:   true,
		}))
		_, ok := proxy.Lookup(9)
		require.True(t, ok)
		proxy.Reset()

		entries := logs.AllUntimed()
		require.Len(t, entries, 4)
		assert.Equal(t, "<redacted>", entries[0].ContextMap()["args"])
		assert.Equal(t, "<redacted>", entries[1].ContextMap()["result"])
		assert.Equal(t, "none", entries[2].ContextMap()["args"])
		assert.Equal(t, "void", entries[3].ContextMap()["result"])
	})
}

func TestWithClassName(t *testing.T) {
	t.Parallel()
	proxy, _, logs := newFetcherProxy(t, intercept.WithClassName("RemoteFetcher"))
	proxy.Reset()

	for _, e := range logs.AllUntimed() {
		assert.Equal(t, "RemoteFetcher", e.ContextMap()["class"])
	}
}

func TestObserverReceivesRecords(t *testing.T) {
	t.Parallel()
	obs := &recordingObserver{}
	proxy, _, _ := newFetcherProxy(t, intercept.WithObserver(obs))

	_, _ = proxy.Fetch(context.Background(), 0)
	_, _ = proxy.Fetch(context.Background(), -1)
	_ = proxy.Ping()

	records := obs.all()
	require.Len(t, records, 2)

	assert.Equal(t, "intercept_test.Fetcher", records[0].Interface)
	assert.Equal(t, "fakeFetcher", records[0].ClassName)
	assert.Equal(t, "Fetch", records[0].Operation)
	assert.Equal(t, "fetching a record", records[0].Message)
	assert.Equal(t, []string{"context.Background", "0"}, records[0].Arguments)
	assert.Equal(t, "ok", records[0].Result)
	assert.Equal(t, observability.OutcomeSuccess, records[0].Outcome())
	assert.False(t, records[0].StartTime.IsZero())

	assert.Equal(t, observability.OutcomeError, records[1].Outcome())
	assert.ErrorIs(t, records[1].Err, errNotFound)
	assert.Empty(t, records[1].Result)
	assert.NotEqual(t, records[0].ID, records[1].ID)
}

func TestTracerSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tc, err := tracer.NewClient(tracer.Config{ServiceName: "intercept-test"}, sdktrace.WithSyncer(exporter))
	require.NoError(t, err)
	t.Cleanup(func() { _ = tc.Shutdown(context.Background()) })

	log, logs := newObservedLogger(true)
	proxy, err := intercept.Create[Fetcher](newFakeFetcher(), log, intercept.WithTracer(tc))
	require.NoError(t, err)

	_, err = proxy.Fetch(context.Background(), 0)
	require.NoError(t, err)
	_, err = proxy.Fetch(context.Background(), -1)
	require.Error(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "fakeFetcher.Fetch", spans[0].Name)
	assert.Equal(t, codes.Unset, spans[0].Status.Code)
	assert.Equal(t, codes.Error, spans[1].Status.Code)

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)
	// The started entry precedes the span; completion entries carry it.
	assert.NotContains(t, entries[0].ContextMap(), "trace_id")
	assert.Equal(t, spans[0].SpanContext.TraceID().String(), entries[1].ContextMap()["trace_id"])
	assert.Equal(t, spans[1].SpanContext.TraceID().String(), entries[3].ContextMap()["trace_id"])
}

func TestContextCancellationIsTheTargetsError(t *testing.T) {
	t.Parallel()
	proxy, _, logs := newFetcherProxy(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err := proxy.Fetch(ctx, 10_000)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.True(t, strings.Contains(entries[1].ContextMap()["error"].(string), "deadline exceeded"))
}
