// Package kv defines the abstraction for a key/value database.
//
// The package also implements a default database implementation that is using
// bbolt as the engine (https://github.com/etcd-io/bbolt).
//
// Documentation Last Review: 02.02.2026
package kv

import "github.com/duet-dlt/duet/core/store"

// Bucket is the interface to operate on one bucket of the database.
type Bucket interface {
	// Get returns the value of the key, or nil if the key does not exist.
	Get(key []byte) []byte

	// Set writes the value under the key.
	Set(key, value []byte) error

	// Delete removes the key from the bucket.
	Delete(key []byte) error

	// ForEach iterates over all the items in the bucket in a unspecified
	// order. The iteration stops when the callback returns an error.
	ForEach(func(k, v []byte) error) error

	// Scan iterates over every key that matches the prefix in the bytewise
	// order of the keys. The iteration stops when the callback returns an
	// error.
	Scan(prefix []byte, fn func(k, v []byte) error) error
}

// ReadableTx allows one to perform read-only atomic operations on the
// database.
type ReadableTx interface {
	// GetBucket returns the bucket of the given name, or nil if it does not
	// exist.
	GetBucket(name []byte) Bucket
}

// WritableTx allows one to perform atomic operations on the database.
type WritableTx interface {
	store.Transaction

	ReadableTx

	// GetBucketOrCreate returns the bucket of the given name, creating it if
	// necessary.
	GetBucketOrCreate(name []byte) (Bucket, error)
}

// DB is a general interface to operate over a key/value database.
type DB interface {
	// View executes the read-only transaction in the context of the database.
	View(fn func(ReadableTx) error) error

	// Update executes the writable transaction in the context of the
	// database.
	Update(fn func(WritableTx) error) error

	// Close closes the database and frees the resources.
	Close() error
}
