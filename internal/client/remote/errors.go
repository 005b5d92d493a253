package remote

import (
	"errors"
	"fmt"
)

// Class partitions remote failures into the two cases the coordinator
// acts on. The classification is decided once, here at the adapter
// boundary, and travels as data; call sites never re-derive it from
// error strings.
type Class int

const (
	// ClassTransient marks a retryable fault: network error, timeout,
	// server 5xx, rate limit
	ClassTransient Class = iota

	// ClassPermanent marks a fault that will never succeed without
	// caller intervention: validation failure, conflict, other 4xx
	ClassPermanent
)

// String returns the class name
func (c Class) String() string {
	if c == ClassTransient {
		return "transient"
	}
	return "permanent"
}

// Error is a classified remote failure
type Error struct {
	err   error
	Code  string
	Class Class
}

func (e *Error) Error() string {
	return fmt.Sprintf("remote %s error: %v", e.Class, e.err)
}

func (e *Error) Unwrap() error {
	return e.err
}

// Transient wraps err as a retryable remote failure
func Transient(err error) *Error {
	return &Error{Class: ClassTransient, err: err}
}

// Permanent wraps err as a terminal remote failure
func Permanent(code string, err error) *Error {
	return &Error{Class: ClassPermanent, Code: code, err: err}
}

// IsTransient reports whether err is a classified transient failure
func IsTransient(err error) bool {
	var re *Error
	return errors.As(err, &re) && re.Class == ClassTransient
}

// IsPermanent reports whether err is a classified permanent failure
func IsPermanent(err error) bool {
	var re *Error
	return errors.As(err, &re) && re.Class == ClassPermanent
}
