package observability_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/aalemi-dev/logproxy/observability"
)

type recordingObserver struct {
	mu      sync.Mutex
	records []observability.InvocationRecord
}

func (r *recordingObserver) ObserveInvocation(rec observability.InvocationRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
}

func TestInvocationRecord_Outcome(t *testing.T) {
	cases := []struct {
		name string
		rec  observability.InvocationRecord
		want observability.Outcome
	}{
		{"success", observability.InvocationRecord{Result: "ok"}, observability.OutcomeSuccess},
		{"error", observability.InvocationRecord{Err: errors.New("x")}, observability.OutcomeError},
		{"panic", observability.InvocationRecord{Err: errors.New("x"), Panicked: true}, observability.OutcomePanic},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.rec.Outcome())
		})
	}
}

func TestNoOpObserver(t *testing.T) {
	observer := observability.NewNoOpObserver()

	assert.NotPanics(t, func() {
		observer.ObserveInvocation(observability.InvocationRecord{
			Operation: "ListUsers",
			Duration:  3 * time.Millisecond,
		})
	})
}

func TestMulti_FansOutAndSkipsNil(t *testing.T) {
	a, b := &recordingObserver{}, &recordingObserver{}
	multi := observability.Multi{a, nil, b}

	multi.ObserveInvocation(observability.InvocationRecord{ClassName: "DefaultUserService", Operation: "ListUsers"})

	require.Len(t, a.records, 1)
	require.Len(t, b.records, 1)
	assert.Equal(t, "ListUsers", b.records[0].Operation)
}

func TestNewObserver_Group(t *testing.T) {
	t.Parallel()

	assert.IsType(t, &observability.NoOpObserver{}, observability.NewObserver(observability.ObserverParams{}))

	single := &recordingObserver{}
	assert.Same(t, single, observability.NewObserver(observability.ObserverParams{
		Observers: []observability.Observer{single},
	}))

	a, b := &recordingObserver{}, &recordingObserver{}
	combined := observability.NewObserver(observability.ObserverParams{
		Observers: []observability.Observer{a, b},
	})
	combined.ObserveInvocation(observability.InvocationRecord{ID: "1"})
	assert.Len(t, a.records, 1)
	assert.Len(t, b.records, 1)
}

func TestFXModule_CollectsGroup(t *testing.T) {
	t.Parallel()
	first, second := &recordingObserver{}, &recordingObserver{}

	var obs observability.Observer
	app := fxtest.New(t,
		observability.FXModule,
		fx.Provide(
			fx.Annotate(func() observability.Observer { return first }, fx.ResultTags(observability.ObserverGroup)),
			fx.Annotate(func() observability.Observer { return second }, fx.ResultTags(observability.ObserverGroup)),
		),
		fx.Populate(&obs),
	)
	app.RequireStart()
	defer app.RequireStop()

	obs.ObserveInvocation(observability.InvocationRecord{ID: "call"})
	require.Len(t, first.records, 1)
	require.Len(t, second.records, 1)
	assert.Equal(t, "call", second.records[0].ID)
}
