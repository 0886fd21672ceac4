package reflectdiff

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrUnknownMode is returned when a leniency mode token is not recognised.
	ErrUnknownMode = errors.New("unknown leniency mode")

	// ErrInvalidOptions is returned by New for an unusable configuration.
	ErrInvalidOptions = errors.New("invalid comparator options")

	errUnreadable = errors.New("value is neither exported nor addressable")
)

// InternalError reports that the comparator could not inspect a value.
//
// It is raised with panic, never returned: it means the comparator cannot
// fulfil its contract in this environment, not that the operands differ.
type InternalError struct {
	Type reflect.Type
	Op   string
	Err  error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("reflectdiff: cannot %s value of type %s: %v", e.Op, e.Type, e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}
