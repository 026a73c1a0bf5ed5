package store

// IStore is the durable key/value collaborator behind the price cache.
// Values are opaque JSON strings owned by the caller of each key.
//
// Subscribe returns a stream of changed-key batches, emitted after each
// committed Set. Slow subscribers may miss batches; consumers are expected
// to re-read current state on every signal rather than replay the stream.
type IStore interface {
	// Get returns the stored values for the requested keys. Absent keys are
	// simply missing from the result map, not an error.
	Get(keys ...string) (map[string]string, error)

	// Set persists all entries of the map as one batch and then notifies
	// subscribers with the list of changed keys.
	Set(values map[string]string) error

	Subscribe() <-chan []string
}
