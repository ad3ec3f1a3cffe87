package history

// MemoryStore is an in-memory Store used in tests.
type MemoryStore struct {
	entries map[string]Entry
	saves   int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]Entry{}}
}

func (s *MemoryStore) Load() (map[string]Entry, error) {
	copied := make(map[string]Entry, len(s.entries))
	for hash, entry := range s.entries {
		copied[hash] = entry
	}
	return copied, nil
}

func (s *MemoryStore) Save(entries map[string]Entry) error {
	copied := make(map[string]Entry, len(entries))
	for hash, entry := range entries {
		copied[hash] = entry
	}
	s.entries = copied
	s.saves++
	return nil
}

// SaveCount reports how many times Save was called.
func (s *MemoryStore) SaveCount() int {
	return s.saves
}
