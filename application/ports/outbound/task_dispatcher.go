package outbound

// TaskDispatcher abstracts the worker pool. *ants.Pool satisfies it.
type TaskDispatcher interface {
	Submit(task func()) error
}
