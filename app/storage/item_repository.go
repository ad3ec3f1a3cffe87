package storage

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/feedsift/feedsift/app/content"
)

var _ ItemRepository = (*ItemRepo)(nil)

// ItemRepo is the SQLite-backed ItemRepository.
type ItemRepo struct {
	db *DB
}

func NewItemRepository(db *DB) *ItemRepo {
	return &ItemRepo{db: db}
}

func (r *ItemRepo) SaveItems(runID string, items []content.Item) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO items (id, run_id, title, content, url, source, author,
			published_at, score, tier, topic, summary, tags, content_hash, actionable)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		tags, err := json.Marshal(item.Tags)
		if err != nil {
			return fmt.Errorf("failed to marshal tags: %w", err)
		}

		_, err = stmt.Exec(uuid.NewString(), runID, item.Title, item.Content, item.URL,
			item.Source, item.Author, item.PublishedAt, item.Score, string(item.Tier),
			item.Topic, item.Summary, string(tags), item.ContentHash, item.Actionable)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit items: %w", err)
	}

	return nil
}

func (r *ItemRepo) GetItemsByRun(runID string) ([]content.Item, error) {
	return r.queryItems(`
		SELECT id, title, content, url, source, author, published_at,
			score, tier, topic, summary, tags, content_hash, actionable
		FROM items
		WHERE run_id = ?
		ORDER BY score DESC
	`, runID)
}

func (r *ItemRepo) GetRecentItems(limit int) ([]content.Item, error) {
	return r.queryItems(`
		SELECT id, title, content, url, source, author, published_at,
			score, tier, topic, summary, tags, content_hash, actionable
		FROM items
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
}

func (r *ItemRepo) queryItems(query string, args ...any) ([]content.Item, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []content.Item
	for rows.Next() {
		var item content.Item
		var tier, tags string

		err := rows.Scan(&item.ID, &item.Title, &item.Content, &item.URL, &item.Source,
			&item.Author, &item.PublishedAt, &item.Score, &tier, &item.Topic,
			&item.Summary, &tags, &item.ContentHash, &item.Actionable)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}

		item.Tier = content.Tier(tier)
		if err := json.Unmarshal([]byte(tags), &item.Tags); err != nil {
			item.Tags = nil
		}

		items = append(items, item)
	}

	return items, rows.Err()
}
