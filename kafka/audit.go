package kafka

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aalemi-dev/logproxy/logger"
	"github.com/aalemi-dev/logproxy/observability"
)

// InvocationEvent is the message value published for each instrumented
// call. Arguments and Result are the strings the log entries carry, so
// redaction and truncation apply here too.
type InvocationEvent struct {
	CallID     string    `json:"call_id"`
	Interface  string    `json:"interface"`
	Class      string    `json:"class"`
	Method     string    `json:"method"`
	Message    string    `json:"message"`
	Arguments  []string  `json:"args"`
	StartedAt  time.Time `json:"started_at"`
	DurationMs int64     `json:"duration_ms"`
	Outcome    string    `json:"outcome"`
	Result     string    `json:"result,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// NewInvocationEvent converts an observed record.
func NewInvocationEvent(rec observability.InvocationRecord) InvocationEvent {
	ev := InvocationEvent{
		CallID:     rec.ID,
		Interface:  rec.Interface,
		Class:      rec.ClassName,
		Method:     rec.Operation,
		Message:    rec.Message,
		Arguments:  rec.Arguments,
		StartedAt:  rec.StartTime.UTC(),
		DurationMs: rec.Duration.Milliseconds(),
		Outcome:    string(rec.Outcome()),
		Result:     rec.Result,
	}
	if rec.Err != nil {
		ev.Error = rec.Err.Error()
	}
	return ev
}

// AuditObserver publishes every observed invocation to Kafka, keyed by
// call_id. ObserveInvocation only enqueues: a single goroutine drains a
// bounded queue into the Publisher, so the proxied call never waits on the
// broker. When the queue is full the event is dropped and logged at Warn.
// Publish failures are logged at Warn and never reach the caller.
type AuditObserver struct {
	publisher Publisher
	log       logger.Logger
	timeout   time.Duration

	queue  chan InvocationEvent
	done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool

	dropped atomic.Uint64
}

// NewAuditObserver returns an observer publishing through p and starts its
// publisher goroutine. timeout bounds each publish; 0 means
// DefaultWriteTimeout. queueSize bounds the pending events; 0 means
// DefaultAuditQueueSize. Close stops the goroutine.
func NewAuditObserver(p Publisher, log logger.Logger, timeout time.Duration, queueSize int) *AuditObserver {
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	if queueSize <= 0 {
		queueSize = DefaultAuditQueueSize
	}
	ctx, cancel := context.WithCancel(context.Background())
	a := &AuditObserver{
		publisher: p,
		log:       log,
		timeout:   timeout,
		queue:     make(chan InvocationEvent, queueSize),
		done:      make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
	}
	go a.run()
	return a
}

// ObserveInvocation implements observability.Observer. It never blocks.
func (a *AuditObserver) ObserveInvocation(rec observability.InvocationRecord) {
	ev := NewInvocationEvent(rec)

	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		a.drop(ev, "observer closed")
		return
	}
	select {
	case a.queue <- ev:
	default:
		a.drop(ev, "queue full")
	}
}

// Dropped reports how many events were discarded without being published.
func (a *AuditObserver) Dropped() uint64 {
	return a.dropped.Load()
}

// Close stops accepting events and waits until the queued ones are
// published or ctx is done. In the latter case in-flight publishes are
// cancelled and ctx.Err() is returned. Close is idempotent.
func (a *AuditObserver) Close(ctx context.Context) error {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.queue)
	}
	a.mu.Unlock()

	select {
	case <-a.done:
		a.cancel()
		return nil
	case <-ctx.Done():
		a.cancel()
		<-a.done
		return ctx.Err()
	}
}

func (a *AuditObserver) run() {
	defer close(a.done)
	for ev := range a.queue {
		a.publish(ev)
	}
}

func (a *AuditObserver) publish(ev InvocationEvent) {
	ctx, cancel := context.WithTimeout(a.ctx, a.timeout)
	defer cancel()

	err := a.publisher.Publish(ctx, ev.CallID, ev, map[string]interface{}{
		"interface": ev.Interface,
		"method":    ev.Method,
		"outcome":   ev.Outcome,
	})
	if err != nil && a.log != nil {
		a.log.Warn("Failed to publish invocation event", err, map[string]interface{}{
			"call_id": ev.CallID,
			"method":  ev.Method,
		})
	}
}

func (a *AuditObserver) drop(ev InvocationEvent, reason string) {
	a.dropped.Add(1)
	if a.log != nil {
		a.log.Warn("Dropped invocation event", nil, map[string]interface{}{
			"call_id": ev.CallID,
			"method":  ev.Method,
			"reason":  reason,
		})
	}
}

var _ observability.Observer = (*AuditObserver)(nil)
