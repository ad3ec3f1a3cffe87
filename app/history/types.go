package history

import "time"

// Entry records one seen item, keyed externally by its hash.
type Entry struct {
	Title  string    `json:"title"`
	URL    string    `json:"url,omitempty"`
	SeenAt time.Time `json:"seen_at"`
}

// Store persists the hash-to-entry map between pipeline runs.
type Store interface {
	Load() (map[string]Entry, error)
	Save(entries map[string]Entry) error
}
