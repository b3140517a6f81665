// Package resource implements the tri-state result wrapper used by the
// address subsystem: a value is exactly one of Loading, Success or Error.
package resource

import "fmt"

// Unit is the payload of operations that succeed without producing a value.
type Unit struct{}

// Kind discriminates the three states of a Resource.
type Kind int

const (
	KindLoading Kind = iota
	KindSuccess
	KindError
)

// Resource is a tri-state result: Loading, Success carrying a value, or
// Error carrying a user-facing message and an optional cause.
type Resource[T any] struct {
	kind    Kind
	value   T
	message string
	cause   error
}

// Loading returns the in-flight marker.
func Loading[T any]() Resource[T] {
	return Resource[T]{kind: KindLoading}
}

// Success returns a terminal success carrying value.
func Success[T any](value T) Resource[T] {
	return Resource[T]{kind: KindSuccess, value: value}
}

// Error returns a terminal failure. message is the user-facing phrasing;
// cause preserves the underlying error for classification.
func Error[T any](message string, cause error) Resource[T] {
	return Resource[T]{kind: KindError, message: message, cause: cause}
}

// Kind returns the state discriminator.
func (r Resource[T]) Kind() Kind { return r.kind }

// IsLoading reports whether the resource is the in-flight marker.
func (r Resource[T]) IsLoading() bool { return r.kind == KindLoading }

// IsSuccess reports whether the resource carries a value.
func (r Resource[T]) IsSuccess() bool { return r.kind == KindSuccess }

// IsError reports whether the resource carries a failure.
func (r Resource[T]) IsError() bool { return r.kind == KindError }

// Value returns the success payload; the zero value otherwise.
func (r Resource[T]) Value() T { return r.value }

// ValueOr returns the success payload, or fallback for the other states.
func (r Resource[T]) ValueOr(fallback T) T {
	if r.kind == KindSuccess {
		return r.value
	}

	return fallback
}

// Message returns the user-facing error message; empty otherwise.
func (r Resource[T]) Message() string { return r.message }

// Cause returns the underlying error of a failure; nil otherwise.
func (r Resource[T]) Cause() error { return r.cause }

func (r Resource[T]) String() string {
	switch r.kind {
	case KindSuccess:
		return fmt.Sprintf("Success[%v]", r.value)
	case KindError:
		return fmt.Sprintf("Error[%s]", r.message)
	default:
		return "Loading"
	}
}

// Map converts the payload of a success; Loading and Error pass through
// with the payload type rebound.
func Map[T, U any](r Resource[T], transform func(T) U) Resource[U] {
	switch r.kind {
	case KindSuccess:
		return Success(transform(r.value))
	case KindError:
		return Error[U](r.message, r.cause)
	default:
		return Loading[U]()
	}
}
