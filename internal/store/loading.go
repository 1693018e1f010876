package store

// LoadingStore tracks the set of in-flight task identifiers driving the
// global loading indicator. It is independent of domain state: concurrent
// requests add and remove distinct ids instead of toggling a boolean, so
// the indicator never dismisses while any request is still outstanding.
type LoadingStore interface {
	// StartLoading adds the task id to the in-flight set.
	StartLoading(taskID string)

	// StopLoading removes the task id. Stopping an id that was never
	// started is a no-op; the set cannot go negative.
	StopLoading(taskID string)

	// StopAllLoading resets the set unconditionally. Used for error
	// recovery.
	StopAllLoading()

	// IsLoading is true iff at least one task id is outstanding.
	IsLoading() bool

	// IsTaskLoading reports whether the specific task id is outstanding.
	IsTaskLoading(taskID string) bool
}
