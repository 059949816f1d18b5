package ports

// Ticker is a periodic source driving the session clock.
// This is a driven port (implemented by adapters).
type Ticker interface {
	// Start calls fn once per period until the returned stop function is
	// called. Stop is idempotent and never blocks on an in-progress fn.
	Start(fn func()) (stop func())
}
