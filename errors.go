package binser

import (
	"errors"
	"fmt"

	"github.com/unkn0wn-root/binser/internal/wire"
)

var (
	// ErrOverflow is returned when a Fixed backend has no room for an append.
	ErrOverflow = errors.New("binser: fixed capacity exceeded")
	// ErrOutOfData is returned when a read asks for more bytes than remain unread.
	ErrOutOfData = errors.New("binser: no more data")
	// ErrNotTrivial rejects types whose in-memory layout holds indirection.
	ErrNotTrivial = errors.New("binser: type is not fixed-layout")
	// ErrNilDestination rejects C-string reads into a nil buffer.
	ErrNilDestination = errors.New("binser: nil destination")
	// ErrShortDestination rejects C-string reads into a buffer smaller than the encoded text.
	ErrShortDestination = errors.New("binser: destination too small")
	// ErrLengthMismatch rejects fixed-size arrays whose length differs from the declared one.
	ErrLengthMismatch = errors.New("binser: length mismatch")
	// ErrNotRegistered is returned by Registry dispatch for unknown types.
	ErrNotRegistered = errors.New("binser: type not registered")
	// ErrRejected is returned when a provider refuses to store a snapshot.
	ErrRejected = errors.New("binser: provider rejected snapshot")
	// ErrAllocation is the panic value when a region cannot be sized.
	// Allocation failure is fatal by policy and never returned as an error.
	ErrAllocation = errors.New("binser: allocation failed")

	// ErrCorrupt marks a persisted frame that does not match its size field.
	ErrCorrupt = wire.ErrCorrupt
)

// RangeError reports a cursor bound violation on a backend.
type RangeError struct {
	Op        string // "append", "consume" or "load"
	Available int
	Requested int
	Err       error // ErrOverflow or ErrOutOfData
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%v: %s of %d bytes, %d available", e.Err, e.Op, e.Requested, e.Available)
}

func (e *RangeError) Unwrap() error { return e.Err }
