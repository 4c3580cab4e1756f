package db

// KVStore is the durable key-value storage the governance state lives in.
// Governance records are append-only (proposals are created once and later
// flipped to executed, tallies only grow), so the interface deliberately
// exposes no delete operation.
type KVStore interface {
	Writer
	// Get returns the value stored under key, or ErrNotFound from the
	// backing implementation if the key is absent.
	Get(key []byte) ([]byte, error)
	// Has reports whether key is present.
	Has(key []byte) (bool, error)
	NewBatch() Batch
	NewIterator(start, end []byte) (Iterator, error)
	Close() error
}

type Writer interface {
	Put(key []byte, value []byte) error
}

// Batch stages a group of writes that commit atomically: after Commit
// either all staged writes are durable or none are. A batch that is closed
// without committing discards its writes.
type Batch interface {
	Writer
	Commit() error
	Close() error
}

// Iterator provides ordered access over a key range.
// Iterators must be closed after use.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() ([]byte, error)
	Valid() bool
	Close() error
}
