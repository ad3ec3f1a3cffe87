package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// DigestStore writes rendered digests under <dataDir>/digests, one Markdown
// file per date (YYYY-MM-DD).
type DigestStore struct {
	dir string
}

func NewDigestStore(dataDir string) *DigestStore {
	return &DigestStore{dir: filepath.Join(dataDir, "digests")}
}

func (s *DigestStore) Save(date, markdown string) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create digests directory: %w", err)
	}

	path := filepath.Join(s.dir, date+".md")
	if err := os.WriteFile(path, []byte(markdown), 0644); err != nil {
		return "", fmt.Errorf("failed to write digest: %w", err)
	}

	return path, nil
}

func (s *DigestStore) Load(date string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, date+".md"))
	if err != nil {
		return "", fmt.Errorf("failed to read digest for %s: %w", date, err)
	}
	return string(data), nil
}
