// Package prefixed provides read and write accesses to a store under a name
// prefix, so that multiple modules can share one snapshot without stepping on
// each other's keys.
package prefixed

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/duet-dlt/duet/core/store"
)

// readable wraps a readable store with a key prefix.
//
// - implements store.Readable
type readable struct {
	inner  store.Readable
	prefix []byte
}

// NewReadable creates a readable store where every access is made under the
// prefix.
func NewReadable(prefix string, r store.Readable) store.Readable {
	return readable{inner: r, prefix: []byte(prefix)}
}

// Get implements store.Readable. It reads the value under the prefixed key.
func (r readable) Get(key []byte) ([]byte, error) {
	return r.inner.Get(NewPrefixedKey(r.prefix, key))
}

// snapshot wraps a snapshot with a key prefix.
//
// - implements store.Snapshot
type snapshot struct {
	readable
	inner store.Snapshot
}

// NewSnapshot creates a snapshot where every access is made under the prefix.
func NewSnapshot(prefix string, snap store.Snapshot) store.Snapshot {
	return snapshot{
		readable: readable{inner: snap, prefix: []byte(prefix)},
		inner:    snap,
	}
}

// Set implements store.Writable. It writes the value under the prefixed key.
func (s snapshot) Set(key []byte, value []byte) error {
	return s.inner.Set(NewPrefixedKey(s.prefix, key), value)
}

// Delete implements store.Writable. It deletes the value under the prefixed
// key.
func (s snapshot) Delete(key []byte) error {
	return s.inner.Delete(NewPrefixedKey(s.prefix, key))
}

// NewPrefixedKey returns the storage key of the base key under the prefix. It
// is exported because it is used in integration tests.
//
// The digest keeps the stored keys at a fixed size, and the two parts are
// framed by their lengths so that different pairs can never produce the same
// key.
func NewPrefixedKey(prefix, key []byte) []byte {
	h := sha256.New()

	size := make([]byte, 2)

	binary.LittleEndian.PutUint16(size, uint16(len(prefix)))
	h.Write(size)
	h.Write(prefix)

	binary.LittleEndian.PutUint16(size, uint16(len(key)))
	h.Write(size)
	h.Write(key)

	return h.Sum(nil)
}
