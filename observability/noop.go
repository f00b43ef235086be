package observability

// NoOpObserver discards every record.
type NoOpObserver struct{}

// ObserveInvocation does nothing.
func (n *NoOpObserver) ObserveInvocation(rec InvocationRecord) {}

// NewNoOpObserver returns an Observer that discards every record.
func NewNoOpObserver() Observer {
	return &NoOpObserver{}
}

// Multi fans a record out to several observers in order. Nil entries are
// skipped.
type Multi []Observer

// ObserveInvocation forwards rec to every observer.
func (m Multi) ObserveInvocation(rec InvocationRecord) {
	for _, o := range m {
		if o != nil {
			o.ObserveInvocation(rec)
		}
	}
}
