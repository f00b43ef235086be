package observability

import "go.uber.org/fx"

// ObserverGroup is the fx value-group tag collecting invocation observers.
// Modules contributing an Observer annotate their provider with
// fx.ResultTags(ObserverGroup).
const ObserverGroup = `group:"invocation_observers"`

// FXModule provides the single Observer that intercept bindings consume,
// fanning out to every member of ObserverGroup.
var FXModule = fx.Module("observability",
	fx.Provide(NewObserver),
)

// ObserverParams collects the group members.
type ObserverParams struct {
	fx.In

	Observers []Observer `group:"invocation_observers"`
}

// NewObserver combines the group into one Observer. An empty group yields a
// NoOpObserver.
func NewObserver(p ObserverParams) Observer {
	switch len(p.Observers) {
	case 0:
		return NewNoOpObserver()
	case 1:
		return p.Observers[0]
	default:
		return Multi(p.Observers)
	}
}
