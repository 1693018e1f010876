package service

import "errors"

// SnapshotStorage is the durable client-side keyed storage used to persist
// store snapshots between application sessions. Values are JSON-encoded.
// Each key is owned by a single writer.
type SnapshotStorage interface {
	// Save encodes value and stores it under key, replacing any prior value.
	Save(key string, value any) error

	// Load decodes the value stored under key into out. It returns
	// ErrKeyNotFound when the key is absent.
	Load(key string, out any) error

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key string) error
}

// ErrKeyNotFound is returned by Load when no value exists under the key.
var ErrKeyNotFound = errors.New("snapshot storage: key not found")
