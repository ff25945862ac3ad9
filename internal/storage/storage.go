package storage

// KeyValue is a durable string-keyed store with localStorage-like semantics:
// all operations are synchronous and local, a missing key is not an error,
// and values survive process restarts (for durable implementations).
type KeyValue interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool)

	// Set writes the value under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes the key. Deleting an absent key is a no-op.
	Delete(key string)
}
