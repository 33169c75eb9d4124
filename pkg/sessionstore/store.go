// Package sessionstore provides the durable key-value store session
// snapshots are persisted in: local, single-writer, no external service,
// much like the browser localStorage the embedding page keeps its own copy
// in.
package sessionstore

// Store is a durable key-value store.
type Store interface {
	Get(key string) (value []byte, ok bool)
	Set(key string, value []byte) error
	Delete(key string) error
}
