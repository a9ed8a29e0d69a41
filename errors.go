package hepgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/hepgo/event"
	"github.com/hupe1980/hepgo/hepio"
	"github.com/hupe1980/hepgo/internal/arena"
)

var (
	// ErrNullHandle is returned when the zero handle is passed where a value is required.
	ErrNullHandle = arena.ErrNullHandle

	// ErrStaleHandle is returned for a handle that was released.
	ErrStaleHandle = arena.ErrStaleHandle

	// ErrTypeMismatch is returned when a handle refers to another kind of entity.
	ErrTypeMismatch = arena.ErrTypeMismatch

	// ErrIndexOutOfRange is returned by indexed access outside [0, size).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrClosed is returned when closing a reader or writer twice.
	ErrClosed = hepio.ErrClosed

	// ErrAttributeKind is returned when a reserved attribute name is given a
	// value of the wrong kind.
	ErrAttributeKind = event.ErrAttributeKind

	// ErrNotInEvent is returned when removing an entity from an event that does
	// not own it.
	ErrNotInEvent = event.ErrNotInEvent

	// ErrForeignEvent is returned when linking entities owned by different events.
	ErrForeignEvent = event.ErrForeignEvent
)

// HandleError records the operation and handle that caused a failure.
//
// The original underlying error can be accessed via errors.Unwrap.
type HandleError struct {
	Op     string
	Handle Handle
	cause  error
}

func (e *HandleError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Handle, e.cause)
}

func (e *HandleError) Unwrap() error { return e.cause }

// IndexError reports an out-of-range indexed access.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0,%d)", e.Index, e.Size)
}

// Is lets errors.Is(err, ErrIndexOutOfRange) match any IndexError.
func (e *IndexError) Is(target error) bool { return target == ErrIndexOutOfRange }

// isContractViolation reports whether err stems from misuse of the API rather
// than from I/O or data.
func isContractViolation(err error) bool {
	return errors.Is(err, ErrNullHandle) ||
		errors.Is(err, ErrStaleHandle) ||
		errors.Is(err, ErrTypeMismatch) ||
		errors.Is(err, ErrIndexOutOfRange) ||
		errors.Is(err, ErrClosed)
}
