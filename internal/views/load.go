package views

// Status is the tag of a Load
type Status int

// Load states
const (
	StatusLoading Status = iota
	StatusLoaded
	StatusFailed
)

// String returns the lowercase state name
func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "loading"
	}
}

// Load is the state of an asynchronous fetch: exactly one of
// Loading, Loaded(value) or Failed(err).
type Load[T any] struct {
	status Status
	value  T
	err    error
}

// Loading returns a pending Load
func Loading[T any]() Load[T] {
	return Load[T]{status: StatusLoading}
}

// Loaded returns a successful Load holding v
func Loaded[T any](v T) Load[T] {
	return Load[T]{status: StatusLoaded, value: v}
}

// Failed returns a failed Load holding err
func Failed[T any](err error) Load[T] {
	return Load[T]{status: StatusFailed, err: err}
}

// Status reports which variant l is
func (l Load[T]) Status() Status { return l.status }

// IsLoading reports the Loading variant
func (l Load[T]) IsLoading() bool { return l.status == StatusLoading }

// IsLoaded reports the Loaded variant
func (l Load[T]) IsLoaded() bool { return l.status == StatusLoaded }

// IsFailed reports the Failed variant
func (l Load[T]) IsFailed() bool { return l.status == StatusFailed }

// Value returns the loaded value; ok is false for the other variants
func (l Load[T]) Value() (v T, ok bool) {
	return l.value, l.status == StatusLoaded
}

// Err returns the failure, or nil
func (l Load[T]) Err() error { return l.err }
