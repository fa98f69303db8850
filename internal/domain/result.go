package domain

import "strings"

// Result is the outcome of a service operation: either a value or one or
// more error messages. A Result never carries both.
type Result[T any] struct {
	value  T
	errors []string
}

// Ok wraps a successful value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Fail builds a failed Result. Empty messages are dropped; a failure without
// any message gets a generic one so IsFailed stays true.
func Fail[T any](messages ...string) Result[T] {
	errs := make([]string, 0, len(messages))
	for _, m := range messages {
		if m != "" {
			errs = append(errs, m)
		}
	}
	if len(errs) == 0 {
		errs = append(errs, "operation failed")
	}
	return Result[T]{errors: errs}
}

// FailWith converts the messages of another failed Result into a Result of a different type.
func FailWith[T, U any](other Result[U]) Result[T] {
	return Fail[T](other.errors...)
}

func (r Result[T]) IsFailed() bool {
	return len(r.errors) > 0
}

func (r Result[T]) IsSuccess() bool {
	return !r.IsFailed()
}

// Value returns the wrapped value. It is the zero value for failed results.
func (r Result[T]) Value() T {
	return r.value
}

// Errors returns a copy of the failure messages.
func (r Result[T]) Errors() []string {
	if len(r.errors) == 0 {
		return nil
	}
	out := make([]string, len(r.errors))
	copy(out, r.errors)
	return out
}

// Message joins the failure messages for display.
func (r Result[T]) Message() string {
	return strings.Join(r.errors, "\n")
}
