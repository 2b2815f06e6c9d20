package asset

import (
	"github.com/duet-dlt/duet/core/store"
	"github.com/duet-dlt/duet/core/store/kv"
	"github.com/duet-dlt/duet/core/store/prefixed"
	"golang.org/x/xerrors"
)

// Map is a named storage map from an asset kind to an arbitrary value. The
// entries are keyed by the canonical key of the info.
//
// Point accesses go through a store.Snapshot, where the map name isolates the
// entries from the rest of the storage. Range accesses go through a
// kv.Bucket named after the map, where the raw keys keep the entries of one
// kind contiguous.
type Map struct {
	name string
}

// NewMap creates a map with the given name.
func NewMap(name string) Map {
	return Map{name: name}
}

// GetName returns the name of the map. An ordered store uses it as the
// bucket name.
func (m Map) GetName() string {
	return m.name
}

// Save writes the value of the info into the snapshot.
func (m Map) Save(snap store.Snapshot, info Info, value []byte) error {
	err := prefixed.NewSnapshot(m.name, snap).Set(info.Key(), value)
	if err != nil {
		return xerrors.Errorf("failed to write value: %v", err)
	}

	return nil
}

// Load reads the value of the info from the snapshot. It returns nil when
// the map holds no entry for the info.
func (m Map) Load(r store.Readable, info Info) ([]byte, error) {
	value, err := prefixed.NewReadable(m.name, r).Get(info.Key())
	if err != nil {
		return nil, xerrors.Errorf("failed to read value: %v", err)
	}

	return value, nil
}

// Contains returns true when the map holds an entry for the info.
func (m Map) Contains(r store.Readable, info Info) (bool, error) {
	value, err := prefixed.NewReadable(m.name, r).Get(info.Key())
	if err != nil {
		return false, xerrors.Errorf("failed to read value: %v", err)
	}

	return value != nil, nil
}

// Delete removes the entry of the info from the snapshot.
func (m Map) Delete(snap store.Snapshot, info Info) error {
	err := prefixed.NewSnapshot(m.name, snap).Delete(info.Key())
	if err != nil {
		return xerrors.Errorf("failed to delete value: %v", err)
	}

	return nil
}

// Scan iterates over every entry of the bucket in key order, which puts the
// contract tokens first and the native denominations second. The iteration
// stops when the callback returns an error.
func (m Map) Scan(bucket kv.Bucket, fn func(info Info, value []byte) error) error {
	return m.scan(bucket, nil, fn)
}

// ScanKind iterates over the entries of a single kind in key order.
func (m Map) ScanKind(bucket kv.Bucket, kind Kind, fn func(info Info, value []byte) error) error {
	return m.scan(bucket, []byte{byte(kind)}, fn)
}

func (m Map) scan(bucket kv.Bucket, prefix []byte, fn func(Info, []byte) error) error {
	return bucket.Scan(prefix, func(k, v []byte) error {
		info, err := DecodeKey(k)
		if err != nil {
			return xerrors.Errorf("failed to decode key: %v", err)
		}

		return fn(info, v)
	})
}
