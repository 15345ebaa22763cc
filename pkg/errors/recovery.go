// Package errors provides structured error handling utilities for valgap.
//
// This file contains panic recovery helpers that convert unexpected panics
// into structured errors. The bootstrap estimator runs model fits on worker
// goroutines, where an unrecovered panic would take down the whole process.
package errors

import (
	"fmt"
	"runtime/debug"
)

// PanicError is an error created from a recovered panic. It keeps the
// original panic value and the stack trace at the time of panic.
type PanicError struct {
	PanicValue interface{}
	StackTrace string
	Operation  string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Operation, e.PanicValue)
}

// String includes the captured stack trace.
func (e *PanicError) String() string {
	return fmt.Sprintf("panic in %s: %v\nStack trace:\n%s",
		e.Operation, e.PanicValue, e.StackTrace)
}

// NewPanicError creates a PanicError for the given operation and panic value.
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Operation:  operation,
	}
}

// Recover converts a panic into an error. Use with defer and a pointer to
// the function's error return:
//
//	func fitOnce() (err error) {
//	    defer errors.Recover(&err, "fitOnce")
//	    ...
//	}
//
// An error already set by the function body is not overwritten unless a
// panic occurred.
func Recover(errPtr *error, operation string) {
	if r := recover(); r != nil {
		*errPtr = WithStack(NewPanicError(operation, r))
	}
}
