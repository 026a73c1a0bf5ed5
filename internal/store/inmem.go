package store

import "sync"

// InMemStore implements IStore without external storage. It backs local
// development runs without a database and the test suites.
type InMemStore struct {
	notifier

	mu     sync.RWMutex
	values map[string]string
}

func NewInMemStore() *InMemStore {
	return &InMemStore{
		values: make(map[string]string),
	}
}

func (s *InMemStore) Get(keys ...string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := make(map[string]string, len(keys))
	for _, key := range keys {
		if value, ok := s.values[key]; ok {
			values[key] = value
		}
	}
	return values, nil
}

func (s *InMemStore) Set(values map[string]string) error {
	s.mu.Lock()
	changed := make([]string, 0, len(values))
	for key, value := range values {
		s.values[key] = value
		changed = append(changed, key)
	}
	s.mu.Unlock()

	s.publish(changed)
	return nil
}
