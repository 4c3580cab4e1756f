package pebble

import "errors"

var (
	// ErrNotFound is returned by Get when the key is not present.
	ErrNotFound = errors.New("pebble: key not found")

	// ErrClosed is returned by any operation on a store that has been closed.
	ErrClosed = errors.New("pebble: store is closed")

	// ErrBatchDone is returned when writing to a batch that was already
	// committed or closed.
	ErrBatchDone = errors.New("pebble: batch already committed or closed")

	// ErrIteratorInvalid is returned when reading the value of an
	// un-positioned or exhausted iterator.
	ErrIteratorInvalid = errors.New("pebble: iterator is not positioned")
)
