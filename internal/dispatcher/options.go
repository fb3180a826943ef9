package dispatcher

// Option configures a [Dispatcher].
type Option func(*Dispatcher)

// WithNotImplemented makes registered endpoints without a handler answer
// 501 Not Implemented instead of 404 Not Found.
func WithNotImplemented() Option {
	return func(d *Dispatcher) {
		d.notImplemented = true
	}
}

// WithObserver registers an observer notified after every dispatch.
func WithObserver(o Observer) Option {
	return func(d *Dispatcher) {
		d.observer = o
	}
}
