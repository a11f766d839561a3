// Package request models the lifecycle of a single asynchronous operation.
package request

import "fmt"

// Status is the tag of a State.
type Status int

// Lifecycle tags.
const (
	StatusIdle Status = iota
	StatusPending
	StatusSuccess
	StatusFailed
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusPending:
		return "Pending"
	case StatusSuccess:
		return "Success"
	case StatusFailed:
		return "Failed"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// State is a tagged variant over {Idle, Pending, Success(T), Failed(error)}.
// The zero value is Idle. Values are only reachable through the constructors,
// so a State can never be pending and failed at once.
type State[T any] struct {
	value  T
	err    error
	status Status
}

// Idle returns a state with no operation issued yet.
func Idle[T any]() State[T] {
	return State[T]{status: StatusIdle}
}

// Pending returns a state with an operation in flight.
func Pending[T any]() State[T] {
	return State[T]{status: StatusPending}
}

// Succeeded returns a completed state carrying v.
func Succeeded[T any](v T) State[T] {
	return State[T]{status: StatusSuccess, value: v}
}

// Failed returns a state carrying the failure of the last operation. A nil err
// is recorded as a generic failure so the Failed tag always has a cause.
func Failed[T any](err error) State[T] {
	if err == nil {
		err = fmt.Errorf("operation failed")
	}
	return State[T]{status: StatusFailed, err: err}
}

// Status returns the tag.
func (s State[T]) Status() Status { return s.status }

// Value returns the success value and whether the state is Success.
func (s State[T]) Value() (T, bool) {
	if s.status != StatusSuccess {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Err returns the failure cause, or nil unless the state is Failed.
func (s State[T]) Err() error {
	if s.status != StatusFailed {
		return nil
	}
	return s.err
}

// IsIdle reports whether no operation has been issued.
func (s State[T]) IsIdle() bool { return s.status == StatusIdle }

// IsPending reports whether an operation is in flight.
func (s State[T]) IsPending() bool { return s.status == StatusPending }

// IsSuccess reports whether the last operation succeeded.
func (s State[T]) IsSuccess() bool { return s.status == StatusSuccess }

// IsFailed reports whether the last operation failed.
func (s State[T]) IsFailed() bool { return s.status == StatusFailed }

// Begin moves the state to Pending. It reports false, leaving the state
// untouched, when an operation is already in flight.
func (s *State[T]) Begin() bool {
	if s.status == StatusPending {
		return false
	}
	*s = Pending[T]()
	return true
}

// Resolve settles a pending operation with either v or err.
func (s *State[T]) Resolve(v T, err error) {
	if err != nil {
		*s = Failed[T](err)
		return
	}
	*s = Succeeded(v)
}
