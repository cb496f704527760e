// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gl

import "fmt"

// ErrorKinds classifies driver contract violations.
type ErrorKinds int32

const (
	// KindUnknown is an error code outside the documented set.
	KindUnknown ErrorKinds = iota

	// KindInvalidEnum is an enumeration argument out of range.
	KindInvalidEnum

	// KindInvalidValue is a numeric argument out of range.
	KindInvalidValue

	// KindInvalidOperation is a call that is not allowed in the current state.
	KindInvalidOperation

	// KindStackOverflow is a push that would overflow a stack.
	KindStackOverflow

	// KindStackUnderflow is a pop from a stack at its lowest point.
	KindStackUnderflow

	// KindOutOfMemory is a failure to allocate driver memory.
	KindOutOfMemory

	// KindInvalidFramebufferOperation is a read or write on an incomplete framebuffer.
	KindInvalidFramebufferOperation

	// KindIncompleteFramebuffer is a framebuffer that failed its completeness check.
	KindIncompleteFramebuffer
)

var kindNames = [...]string{
	KindUnknown:                     "unknown driver error",
	KindInvalidEnum:                 "invalid enum",
	KindInvalidValue:                "invalid value",
	KindInvalidOperation:            "invalid operation",
	KindStackOverflow:               "stack overflow",
	KindStackUnderflow:              "stack underflow",
	KindOutOfMemory:                 "out of memory",
	KindInvalidFramebufferOperation: "invalid framebuffer operation",
	KindIncompleteFramebuffer:       "incomplete framebuffer",
}

func (k ErrorKinds) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// Classify returns the kind of the given error register value.
func Classify(code uint32) ErrorKinds {
	switch code {
	case InvalidEnum:
		return KindInvalidEnum
	case InvalidValue:
		return KindInvalidValue
	case InvalidOperation:
		return KindInvalidOperation
	case StackOverflow:
		return KindStackOverflow
	case StackUnderflow:
		return KindStackUnderflow
	case OutOfMemory:
		return KindOutOfMemory
	case InvalidFramebufferOperation:
		return KindInvalidFramebufferOperation
	}
	return KindUnknown
}

// DriverError is a violation of the driver contract: a programming
// error, not a recoverable condition. It is raised as a panic value.
type DriverError struct {
	// Op is the operation that was being checked.
	Op string

	// Kind is the classification of Code.
	Kind ErrorKinds

	// Code is the raw error register value, or the framebuffer
	// status for [KindIncompleteFramebuffer].
	Code uint32
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("gl: %s: %s (0x%04X)", e.Op, e.Kind, e.Code)
}

// Check reads the driver error register and panics with a
// [*DriverError] if an error is pending. Additional pending
// codes are drained so that they are not blamed on a later
// operation.
func Check(d Driver, op string) {
	code := d.GetError()
	if code == NoError {
		return
	}
	for range 16 {
		if d.GetError() == NoError {
			break
		}
	}
	panic(&DriverError{Op: op, Kind: Classify(code), Code: code})
}
